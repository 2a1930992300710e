package fs

import (
	"sort"
	"strings"
)

// SortMode selects the listing comparator.
type SortMode int

const (
	SortByName SortMode = iota
	SortBySize
	SortByModified
	SortByType
)

var sortModeNames = []string{"name", "size", "modified", "type"}

func (m SortMode) String() string {
	if m < 0 || int(m) >= len(sortModeNames) {
		return "name"
	}
	return sortModeNames[m]
}

// Next cycles to the following mode, wrapping around.
func (m SortMode) Next() SortMode {
	return SortMode((int(m) + 1) % len(sortModeNames))
}

// ParseSortMode resolves a mode name; unknown names fall back to by-name.
func ParseSortMode(s string) (SortMode, bool) {
	for i, name := range sortModeNames {
		if strings.EqualFold(s, name) {
			return SortMode(i), true
		}
	}
	return SortByName, false
}

// sortEntries orders entries in place. Directories always come before files
// as the primary key; the mode only decides the order within each group.
// The sort is stable so ties keep the enumeration (name) order.
func sortEntries(entries []Entry, mode SortMode) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		switch mode {
		case SortBySize:
			return a.Size < b.Size
		case SortByModified:
			return a.ModTime.After(b.ModTime)
		case SortByType:
			ea, eb := a.Extension(), b.Extension()
			if ea != eb {
				return ea < eb
			}
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	})
}

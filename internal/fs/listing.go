package fs

import (
	"os"
	"path/filepath"
	"strings"
)

// List enumerates the direct children of dir and produces the ordered
// sequence the view renders. Sort is applied first, then the hidden-file
// policy, then the substring filter, so sort stability never depends on
// which entries survive filtering. Enumeration denial surfaces as
// ErrPermission; the caller keeps its previous listing in that case.
func List(dir string, hidden bool, mode SortMode, filter string) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, Classify(err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		path := filepath.Join(dir, d.Name())
		info, err := d.Info()
		if err != nil {
			// Vanished or unreadable mid-enumeration: keep a bare entry so
			// the name still shows up rather than silently disappearing.
			entries = append(entries, Entry{Path: path, Name: d.Name(), IsDir: d.IsDir()})
			continue
		}
		entries = append(entries, NewEntry(path, info))
	}

	sortEntries(entries, mode)

	if !hidden {
		entries = exclude(entries, func(e Entry) bool {
			return strings.HasPrefix(e.Name, ".")
		})
	}

	if filter != "" {
		needle := strings.ToLower(filter)
		entries = exclude(entries, func(e Entry) bool {
			return !strings.Contains(strings.ToLower(e.Name), needle)
		})
	}

	return entries, nil
}

func exclude(entries []Entry, drop func(Entry) bool) []Entry {
	kept := entries[:0]
	for _, e := range entries {
		if !drop(e) {
			kept = append(kept, e)
		}
	}
	return kept
}

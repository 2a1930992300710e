// Package session is the controller the external shell talks to. It owns the
// per-directory listing state (current directory, hidden flag, sort mode,
// filter, selection, version-status map), the clipboard, the trash store,
// the archive engine, and the operation log, and exposes every
// collaborator-facing operation of the core. Operations return a result and
// a human-readable status string; nothing here renders anything.
//
// A single logical thread drives all mutation; the session performs no
// locking of its own.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/shellman/shellman/internal/archive"
	"github.com/shellman/shellman/internal/clipboard"
	"github.com/shellman/shellman/internal/config"
	"github.com/shellman/shellman/internal/fs"
	"github.com/shellman/shellman/internal/gitstatus"
	"github.com/shellman/shellman/internal/logging"
	"github.com/shellman/shellman/internal/trash"
	"github.com/shellman/shellman/internal/undo"
)

const trashDirName = ".shellman_trash"

// Session holds the process-lifetime browsing state.
type Session struct {
	log *logging.Logger

	dir      string
	hidden   bool
	sortMode fs.SortMode
	filter   string
	selected map[string]struct{}
	status   map[string]string

	clip     *clipboard.Transfer
	trash    *trash.Store
	archives *archive.Engine
	probe    *gitstatus.Probe
	undoLog  *undo.Log
}

// New builds a session rooted at the configured start directory (the user's
// home by default) and probes its version status once.
func New(cfg *config.Config, log *logging.Logger) (*Session, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fs.Classify(err)
	}

	dir := cfg.Browser.StartDir
	if dir == "" {
		dir = home
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fs.Classify(err)
	}
	if info, err := os.Stat(dir); err != nil {
		return nil, fs.Classify(err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", fs.ErrIO, dir)
	}

	trashDir := cfg.Browser.TrashDir
	if trashDir == "" {
		trashDir = filepath.Join(home, trashDirName)
	}

	s := &Session{
		log:      log,
		dir:      dir,
		hidden:   cfg.Browser.ShowHidden,
		sortMode: fs.SortByName,
		selected: make(map[string]struct{}),
		clip:     clipboard.New(log),
		trash:    trash.NewStore(trashDir, log),
		archives: archive.New(log),
		probe:    gitstatus.New(cfg.Browser.ProbeTimeout, log),
		undoLog:  undo.NewLog(),
	}
	s.status = s.probe.Run(dir)
	return s, nil
}

// CurrentDir returns the directory being browsed.
func (s *Session) CurrentDir() string { return s.dir }

// Hidden reports whether dotfiles are listed.
func (s *Session) Hidden() bool { return s.hidden }

// SortMode returns the active sort mode.
func (s *Session) SortMode() fs.SortMode { return s.sortMode }

// Filter returns the active filter substring.
func (s *Session) Filter() string { return s.filter }

// Status returns the version-status map (top-level name to code).
func (s *Session) Status() map[string]string { return s.status }

// Listing derives a fresh ordered listing from the current state. On error
// the previous listing stays on screen; the caller discards this result.
func (s *Session) Listing() ([]fs.Entry, error) {
	return fs.List(s.dir, s.hidden, s.sortMode, s.filter)
}

// GoTo changes the current directory. The selection is always cleared on a
// directory change and the version status is re-probed.
func (s *Session) GoTo(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fs.Classify(err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fs.Classify(err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: not a directory: %s", fs.ErrIO, abs)
	}
	s.dir = abs
	s.selected = make(map[string]struct{})
	s.status = s.probe.Run(abs)
	s.log.Debug("changed directory", zap.String("dir", abs))
	return fmt.Sprintf("Now browsing: %s", abs), nil
}

// Up moves to the parent directory; at the root it stays put.
func (s *Session) Up() (string, error) {
	parent := filepath.Dir(s.dir)
	if parent == s.dir {
		return "Already at filesystem root", nil
	}
	return s.GoTo(parent)
}

// ToggleHidden flips the dotfile policy and reports the new state.
func (s *Session) ToggleHidden() (bool, string) {
	s.hidden = !s.hidden
	if s.hidden {
		return true, "Hidden files shown"
	}
	return false, "Hidden files excluded"
}

// SetSortMode selects the listing order.
func (s *Session) SetSortMode(mode fs.SortMode) string {
	s.sortMode = mode
	return fmt.Sprintf("Sort: %s", mode)
}

// CycleSortMode advances name -> size -> modified -> type -> name.
func (s *Session) CycleSortMode() (fs.SortMode, string) {
	s.sortMode = s.sortMode.Next()
	return s.sortMode, fmt.Sprintf("Sort: %s", s.sortMode)
}

// SetFilter installs a case-insensitive substring filter; empty clears it.
func (s *Session) SetFilter(filter string) string {
	s.filter = filter
	if filter == "" {
		return "Filter cleared"
	}
	return fmt.Sprintf("Filter: %q", filter)
}

// ToggleSelect adds or removes a path from the selection set.
func (s *Session) ToggleSelect(path string) bool {
	if _, ok := s.selected[path]; ok {
		delete(s.selected, path)
		return false
	}
	s.selected[path] = struct{}{}
	return true
}

// ClearSelection empties the selection set.
func (s *Session) ClearSelection() {
	s.selected = make(map[string]struct{})
}

// Selected reports membership of path in the selection set.
func (s *Session) Selected(path string) bool {
	_, ok := s.selected[path]
	return ok
}

// SelectionCount returns the number of selected paths.
func (s *Session) SelectionCount() int { return len(s.selected) }

// Targets returns the selected paths if any, otherwise the cursor entry
// passed by the shell (empty cursor means no target).
func (s *Session) Targets(cursor string) []string {
	if len(s.selected) > 0 {
		targets := make([]string, 0, len(s.selected))
		for path := range s.selected {
			targets = append(targets, path)
		}
		return targets
	}
	if cursor == "" {
		return nil
	}
	return []string{cursor}
}

// RefreshStatus re-runs the version-status probe for the current directory.
// Probe failures are silently absorbed; annotation is best-effort.
func (s *Session) RefreshStatus() string {
	s.status = s.probe.Run(s.dir)
	if len(s.status) == 0 {
		return "Refreshed (no version status)"
	}
	return fmt.Sprintf("Refreshed (%d entries with version status)", len(s.status))
}

// StatusLine summarizes a listing the way the status bar shows it.
func (s *Session) StatusLine(entries []fs.Entry) string {
	line := fmt.Sprintf("%d items", len(entries))
	if n := len(s.selected); n > 0 {
		line += fmt.Sprintf("  (%d selected)", n)
	}
	if s.filter != "" {
		line += fmt.Sprintf("  [filter: %q]", s.filter)
	}
	if !s.hidden {
		line += "  (hidden excluded)"
	}
	if desc, ok := s.undoLog.Peek(); ok {
		line += fmt.Sprintf("  [undo: %s]", desc)
	}
	if used, total, err := fs.DiskUsage(s.dir); err == nil && total > 0 {
		pct := float64(used) / float64(total) * 100
		line += fmt.Sprintf("  |  Disk: %s/%s (%.0f%%)",
			fs.HumanSize(int64(used)), fs.HumanSize(int64(total)), pct)
	}
	return line
}

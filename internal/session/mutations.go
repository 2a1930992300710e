package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/shellman/shellman/internal/archive"
	"github.com/shellman/shellman/internal/clipboard"
	"github.com/shellman/shellman/internal/fs"
	"github.com/shellman/shellman/internal/undo"
)

// Every mutating operation below follows the same contract: on success it
// pushes the inverse onto the operation log and the caller pulls a fresh
// listing; on failure it returns a typed error and pushes nothing.

// CreateFile creates an empty file named name in the current directory.
func (s *Session) CreateFile(name string) (string, error) {
	target, err := s.childPath(name)
	if err != nil {
		return "", err
	}
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: %s", fs.ErrAlreadyExists, name)
		}
		return "", fs.Classify(err)
	}
	f.Close()
	s.undoLog.Push("create "+name, undo.DeletePath(target))
	s.log.Info("created file", zap.String("path", target))
	return fmt.Sprintf("Created file: %s", name), nil
}

// CreateDirectory creates a directory named name in the current directory.
func (s *Session) CreateDirectory(name string) (string, error) {
	target, err := s.childPath(name)
	if err != nil {
		return "", err
	}
	if err := os.Mkdir(target, 0755); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: %s", fs.ErrAlreadyExists, name)
		}
		return "", fs.Classify(err)
	}
	s.undoLog.Push("mkdir "+name, undo.DeletePath(target))
	s.log.Info("created directory", zap.String("path", target))
	return fmt.Sprintf("Created directory: %s", name), nil
}

// Rename gives the entry at path a new name within its own directory.
func (s *Session) Rename(path, newName string) (string, error) {
	if err := validateName(newName); err != nil {
		return "", err
	}
	oldName := filepath.Base(path)
	if newName == oldName {
		return "Name unchanged", nil
	}
	target := filepath.Join(filepath.Dir(path), newName)
	if _, err := os.Lstat(target); err == nil {
		return "", fmt.Errorf("%w: %s", fs.ErrAlreadyExists, newName)
	}
	if err := os.Rename(path, target); err != nil {
		return "", fs.Classify(err)
	}
	s.undoLog.Push("rename "+oldName, undo.MoveBack(target, path))
	s.log.Info("renamed entry",
		zap.String("from", path), zap.String("to", target))
	return fmt.Sprintf("Renamed to: %s", newName), nil
}

// Delete soft-deletes the given paths into the trash. The batch is atomic
// per entry: a mid-batch failure stops the batch, reports the failing entry,
// and pushes no undo entry; already-moved entries stay in the trash.
func (s *Session) Delete(paths []string) (string, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("%w: nothing selected to delete", fs.ErrNotFound)
	}
	records, err := s.trash.SoftDelete(paths)
	if err != nil {
		return "", err
	}
	label := batchLabel(paths)
	s.ClearSelection()
	s.undoLog.Push("delete "+label, undo.RestoreTrash(records))
	return fmt.Sprintf("Deleted: %s  (undo restores from trash)", label), nil
}

// Copy stages path for duplication on the next paste. The clipboard is
// state only; no filesystem effect until Paste.
func (s *Session) Copy(path string) string {
	s.clip.Copy(path)
	return fmt.Sprintf("Copied: %s  (paste to duplicate)", filepath.Base(path))
}

// Cut stages path for a move on the next paste.
func (s *Session) Cut(path string) string {
	s.clip.Cut(path)
	return fmt.Sprintf("Cut: %s  (paste in destination to move)", filepath.Base(path))
}

// Paste applies the pending transfer into the current directory. A cut-paste
// clears the clipboard and records a move-back inverse; a copy-paste keeps
// the clipboard for repeated pastes and records deletion of the duplicate.
func (s *Session) Paste() (string, error) {
	res, err := s.clip.Paste(s.dir)
	if err != nil {
		return "", err
	}
	name := filepath.Base(res.Source)
	if res.Moved {
		s.undoLog.Push("move "+name, undo.MoveBack(res.Dest, res.Source))
		return fmt.Sprintf("Moved: %s", name), nil
	}
	s.undoLog.Push("copy "+name, undo.RecursiveDelete(res.Dest))
	return fmt.Sprintf("Copied: %s", name), nil
}

// ClipboardPending exposes the staged transfer for display.
func (s *Session) ClipboardPending() (clipboard.Pending, bool) {
	return s.clip.Pending()
}

// Archive zips the target paths into the current directory under name,
// normalized to carry a zip suffix.
func (s *Session) Archive(paths []string, name string) (string, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("%w: nothing selected to archive", fs.ErrNotFound)
	}
	if err := validateName(name); err != nil {
		return "", err
	}
	outName := archive.NormalizeZipName(name)
	outPath := filepath.Join(s.dir, outName)
	if _, err := os.Lstat(outPath); err == nil {
		return "", fmt.Errorf("%w: %s", fs.ErrAlreadyExists, outName)
	}
	if err := s.archives.Create(paths, outPath); err != nil {
		return "", err
	}
	s.ClearSelection()
	s.undoLog.Push("zip "+outName, undo.DeletePath(outPath))
	return fmt.Sprintf("Created archive: %s", outName), nil
}

// ShouldExtract implements the archive-vs-extract dispatch rule: extract
// only when the cursor entry is the sole target, nothing else is selected,
// and its name carries a recognized archive suffix.
func (s *Session) ShouldExtract(cursor string) bool {
	return cursor != "" && len(s.selected) == 0 &&
		archive.IsArchiveName(filepath.Base(cursor))
}

// ExtractIfArchive extracts the archive at path next to it. The destination
// is the archive's parent joined with its stem; zip and tar archives unpack
// into a directory, a bare gzip stream into a single file.
func (s *Session) ExtractIfArchive(path string) (string, error) {
	dest, err := s.archives.Extract(path)
	if err != nil {
		return "", err
	}
	s.undoLog.Push("extract "+filepath.Base(path), undo.RecursiveDelete(dest))
	return fmt.Sprintf("Extracted: %s  ->  %s", filepath.Base(path), filepath.Base(dest)), nil
}

// Undo pops the most recent operation and executes its inverse. A failed
// inverse is reported but never re-pushed: the log ends up one entry
// shorter either way.
func (s *Session) Undo() (string, error) {
	entry, ok := s.undoLog.Pop()
	if !ok {
		return "Nothing to undo", undo.ErrEmpty
	}
	if err := entry.Inverse.Apply(); err != nil {
		s.log.Warn("undo failed",
			zap.String("operation", entry.Description), zap.Error(err))
		return fmt.Sprintf("Undo failed: %s", entry.Description), err
	}
	s.log.Info("undid operation", zap.String("operation", entry.Description))
	return fmt.Sprintf("Undone: %s", entry.Description), nil
}

// UndoDepth reports how many operations can still be undone.
func (s *Session) UndoDepth() int { return s.undoLog.Len() }

// History returns the operation log, oldest first.
func (s *Session) History() []undo.Entry { return s.undoLog.Entries() }

// HistoryJSON encodes the operation log for display.
func (s *Session) HistoryJSON() ([]byte, error) { return s.undoLog.JSON() }

func (s *Session) childPath(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		name != filepath.Base(name) {
		return fmt.Errorf("%w: invalid name %q", fs.ErrIO, name)
	}
	return nil
}

func batchLabel(paths []string) string {
	if len(paths) == 1 {
		return filepath.Base(paths[0])
	}
	return fmt.Sprintf("%d items", len(paths))
}

// Package trash implements soft delete: entries are moved into a per-user
// staging directory instead of being removed, so a later undo can put them
// back. Trash contents are never pruned automatically.
package trash

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/shellman/shellman/internal/fs"
	"github.com/shellman/shellman/internal/logging"
)

// Record maps one trashed path back to where it came from.
type Record struct {
	TrashPath    string `json:"trash_path"`
	OriginalPath string `json:"original_path"`
}

// Store moves entries into the trash root, created lazily on first use.
type Store struct {
	root string
	log  *logging.Logger
}

func NewStore(root string, log *logging.Logger) *Store {
	return &Store{root: root, log: log}
}

// Root returns the trash directory path.
func (s *Store) Root() string { return s.root }

// SoftDelete moves each path into the trash under a timestamped name.
// The batch is atomic per entry, not as a whole: on the first failure no
// further entries are moved, the error names the entry that failed, and
// entries already moved stay in the trash. Callers must not record an undo
// for a partially failed batch.
func (s *Store) SoftDelete(paths []string) ([]Record, error) {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return nil, fs.Classify(err)
	}

	records := make([]Record, 0, len(paths))
	for _, path := range paths {
		dest := filepath.Join(s.root, stampedName(time.Now(), filepath.Base(path)))
		if err := fs.Move(path, dest); err != nil {
			return records, fmt.Errorf("delete %s: %w", filepath.Base(path), err)
		}
		s.log.Debug("moved to trash",
			zap.String("from", path), zap.String("to", dest))
		records = append(records, Record{TrashPath: dest, OriginalPath: path})
	}
	return records, nil
}

// Restore moves trashed entries back to their original locations. It stops
// at the first failure; entries not yet restored remain in the trash. A
// missing original parent directory surfaces as a restore error.
func Restore(records []Record) error {
	for _, r := range records {
		parent := filepath.Dir(r.OriginalPath)
		if _, err := os.Stat(parent); err != nil {
			return fmt.Errorf("%w: parent %s missing for %s",
				fs.ErrRestore, parent, filepath.Base(r.OriginalPath))
		}
		if err := fs.Move(r.TrashPath, r.OriginalPath); err != nil {
			return fmt.Errorf("%w: %w", fs.ErrRestore, err)
		}
	}
	return nil
}

// stampedName prefixes the original name with a microsecond-resolution
// timestamp so rapid repeated deletes of the same base name never collide.
func stampedName(t time.Time, base string) string {
	return fmt.Sprintf("%s_%06d_%s", t.Format("20060102_150405"), t.Nanosecond()/1000, base)
}

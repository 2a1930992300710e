// Package clipboard holds the single pending copy/cut transfer and applies
// it on paste. Setting the clipboard has no filesystem effect; only paste
// mutates anything.
package clipboard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/shellman/shellman/internal/fs"
	"github.com/shellman/shellman/internal/logging"
)

// ErrEmpty reports a paste with nothing on the clipboard.
var ErrEmpty = errors.New("clipboard is empty")

// Op is the pending operation kind.
type Op int

const (
	OpCopy Op = iota
	OpCut
)

func (o Op) String() string {
	if o == OpCut {
		return "cut"
	}
	return "copy"
}

// Pending describes the transfer waiting for a paste.
type Pending struct {
	Source string
	Op     Op
}

// Result reports what a paste did, for undo wiring: a moved source needs a
// move back, a duplicated one needs its duplicate deleted.
type Result struct {
	Source string
	Dest   string
	Moved  bool
}

// Transfer implements copy/move semantics between a source entry and the
// active directory.
type Transfer struct {
	pending *Pending
	log     *logging.Logger
}

func New(log *logging.Logger) *Transfer {
	return &Transfer{log: log}
}

// Copy stages source for duplication on paste.
func (t *Transfer) Copy(source string) {
	t.pending = &Pending{Source: source, Op: OpCopy}
}

// Cut stages source for a move on paste.
func (t *Transfer) Cut(source string) {
	t.pending = &Pending{Source: source, Op: OpCut}
}

// Pending returns the staged transfer, if any.
func (t *Transfer) Pending() (Pending, bool) {
	if t.pending == nil {
		return Pending{}, false
	}
	return *t.pending, true
}

// Clear drops any staged transfer.
func (t *Transfer) Clear() {
	t.pending = nil
}

// Paste applies the staged transfer into destDir. The destination path is
// destDir joined with the source's base name; pasting onto the source itself
// fails without touching the clipboard. A cut moves the source (falling back
// to copy-then-delete across volumes) and clears the clipboard; a copy
// duplicates recursively and keeps the clipboard for repeated pastes.
func (t *Transfer) Paste(destDir string) (*Result, error) {
	if t.pending == nil {
		return nil, ErrEmpty
	}
	src := t.pending.Source
	dest := filepath.Join(destDir, filepath.Base(src))
	if filepath.Clean(src) == filepath.Clean(dest) {
		return nil, fmt.Errorf("%w: %s", fs.ErrSameLocation, filepath.Base(src))
	}

	if t.pending.Op == OpCut {
		if err := fs.Move(src, dest); err != nil {
			return nil, err
		}
		t.pending = nil
		t.log.Info("moved entry",
			zap.String("from", src), zap.String("to", dest))
		return &Result{Source: src, Dest: dest, Moved: true}, nil
	}

	info, err := os.Stat(src)
	if err != nil {
		return nil, fs.Classify(err)
	}
	if info.IsDir() {
		err = fs.CopyTree(src, dest)
	} else {
		err = fs.CopyFile(src, dest, info)
	}
	if err != nil {
		return nil, err
	}
	t.log.Info("copied entry",
		zap.String("from", src), zap.String("to", dest))
	return &Result{Source: src, Dest: dest, Moved: false}, nil
}

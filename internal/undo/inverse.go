package undo

import (
	"errors"
	"fmt"
	"os"

	"github.com/shellman/shellman/internal/fs"
	"github.com/shellman/shellman/internal/trash"
)

// Kind tags the finite set of inverse actions.
type Kind string

const (
	// KindDeletePath removes a single file or empty directory (undoes a
	// create or an archive creation).
	KindDeletePath Kind = "delete_path"
	// KindRecursiveDelete removes a whole tree (undoes a copy-paste or an
	// extraction).
	KindRecursiveDelete Kind = "recursive_delete"
	// KindMoveBack moves From to To (undoes a rename or a cut-paste).
	KindMoveBack Kind = "move_back"
	// KindRestoreTrash moves trashed entries back to their original
	// locations (undoes a soft delete).
	KindRestoreTrash Kind = "restore_from_trash"
)

// Inverse is the reversal of one completed mutation, carried as plain data
// so the log can be inspected and encoded without executing side effects.
type Inverse struct {
	Kind  Kind           `json:"kind"`
	Path  string         `json:"path,omitempty"`
	From  string         `json:"from,omitempty"`
	To    string         `json:"to,omitempty"`
	Moves []trash.Record `json:"moves,omitempty"`
}

// DeletePath builds the inverse of creating path.
func DeletePath(path string) Inverse {
	return Inverse{Kind: KindDeletePath, Path: path}
}

// RecursiveDelete builds the inverse of duplicating or extracting to path.
func RecursiveDelete(path string) Inverse {
	return Inverse{Kind: KindRecursiveDelete, Path: path}
}

// MoveBack builds the inverse of a move that left the entry at from.
func MoveBack(from, to string) Inverse {
	return Inverse{Kind: KindMoveBack, From: from, To: to}
}

// RestoreTrash builds the inverse of a soft delete.
func RestoreTrash(records []trash.Record) Inverse {
	return Inverse{Kind: KindRestoreTrash, Moves: records}
}

// Apply executes the inverse. Inverses are best-effort: a failed Apply is
// reported to the caller but never re-queued, and applying one must not
// itself require undo support.
func (iv Inverse) Apply() error {
	switch iv.Kind {
	case KindDeletePath:
		err := os.Remove(iv.Path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fs.Classify(err)
		}
		return nil
	case KindRecursiveDelete:
		return fs.Classify(os.RemoveAll(iv.Path))
	case KindMoveBack:
		return fs.Move(iv.From, iv.To)
	case KindRestoreTrash:
		return trash.Restore(iv.Moves)
	default:
		return fmt.Errorf("%w: unknown inverse kind %q", fs.ErrIO, iv.Kind)
	}
}

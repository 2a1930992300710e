package fs

import (
	"errors"
	"fmt"
	"os"
)

// Error kinds surfaced by the core. Every public operation fails with one of
// these, wrapped around the underlying OS error.
var (
	ErrPermission        = errors.New("permission denied")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrSameLocation      = errors.New("source and destination are the same")
	ErrUnsupportedFormat = errors.New("unsupported archive format")
	ErrRestore           = errors.New("restore failed")
	ErrIO                = errors.New("i/o error")
)

// Classify maps an OS-level error onto the taxonomy above, preserving the
// original error in the chain. A nil error stays nil.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrPermission), errors.Is(err, ErrNotFound),
		errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrSameLocation),
		errors.Is(err, ErrUnsupportedFormat), errors.Is(err, ErrRestore),
		errors.Is(err, ErrIO):
		return err
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermission, err)
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, os.ErrExist):
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	default:
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
}

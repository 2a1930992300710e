package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/charlievieth/fastwalk"
)

// walkConf keeps traversal sequential and parent-first: all mutation in the
// core runs on a single logical thread, and copies need directories created
// before their contents.
var walkConf = fastwalk.Config{
	Follow:     false,
	NumWorkers: 1,
	Sort:       fastwalk.SortDirsFirst,
}

// Move renames src to dst, falling back to copy-then-delete when the rename
// crosses a filesystem boundary.
func Move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return Classify(err)
	}
	if err := CopyAny(src, dst); err != nil {
		return err
	}
	if err := os.RemoveAll(src); err != nil {
		return Classify(err)
	}
	return nil
}

// CopyAny duplicates src at dst, recursing for directories.
func CopyAny(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return Classify(err)
	}
	if info.IsDir() {
		return CopyTree(src, dst)
	}
	return CopyFile(src, dst, info)
}

// CopyFile duplicates a single regular file, preserving mode and timestamps
// where the OS allows it.
func CopyFile(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return Classify(err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return Classify(err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return Classify(err)
	}
	if err := out.Close(); err != nil {
		return Classify(err)
	}
	// Best effort: a filesystem that refuses timestamps does not fail the copy.
	os.Chtimes(dst, info.ModTime(), info.ModTime())
	return nil
}

// CopyTree recursively duplicates the directory src at dst.
func CopyTree(src, dst string) error {
	err := fastwalk.Walk(&walkConf, src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		info, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm())
		}
		return CopyFile(path, target, info)
	})
	return Classify(err)
}

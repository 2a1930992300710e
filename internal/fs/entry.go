package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry is one filesystem path plus the display facts derived from it.
// Identity for selection and clipboard purposes is the absolute Path string.
type Entry struct {
	Path    string      `json:"path"`
	Name    string      `json:"name"`
	IsDir   bool        `json:"is_dir"`
	Size    int64       `json:"size"`
	ModTime time.Time   `json:"modified"`
	Mode    os.FileMode `json:"-"`
}

// NewEntry builds an Entry from a stat result. path must be absolute.
func NewEntry(path string, info os.FileInfo) Entry {
	e := Entry{
		Path:    path,
		Name:    filepath.Base(path),
		IsDir:   info.IsDir(),
		ModTime: info.ModTime(),
		Mode:    info.Mode(),
	}
	if !e.IsDir {
		e.Size = info.Size()
	}
	return e
}

// Stat derives an Entry directly from disk.
func Stat(path string) (Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, Classify(err)
	}
	return NewEntry(path, info), nil
}

// Extension returns the lowercased extension including the dot, or "".
func (e Entry) Extension() string {
	if e.IsDir {
		return ""
	}
	return strings.ToLower(filepath.Ext(e.Name))
}

// Permissions renders the mode as a fixed-width string ("drwxr-xr-x").
func (e Entry) Permissions() string {
	return e.Mode.String()
}

// HumanSize formats a byte count for display.
func HumanSize(size int64) string {
	s := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if s < 1024 {
			return fmt.Sprintf("%.1f %s", s, unit)
		}
		s /= 1024
	}
	return fmt.Sprintf("%.1f PB", s)
}

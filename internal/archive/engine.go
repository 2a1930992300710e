// Package archive creates zip archives from sets of entries and extracts
// the supported archive families (zip, tar with optional gzip/bzip2/xz/zstd
// compression, bare gzip streams) next to the archive file.
package archive

import (
	"path/filepath"
	"strings"

	"github.com/shellman/shellman/internal/logging"
)

// Engine performs archive creation and extraction. All work is blocking and
// runs inline on the caller's thread.
type Engine struct {
	log *logging.Logger
}

func New(log *logging.Logger) *Engine {
	return &Engine{log: log}
}

// archiveSuffixes are the extractable suffixes, longest first so that
// data.tar.gz resolves as a tar family member and not a bare gzip stream.
var archiveSuffixes = []string{
	".tar.gz", ".tar.bz2", ".tar.xz", ".tar.zst",
	".tgz", ".tar", ".zip", ".gz", ".bz2", ".xz",
}

// IsArchiveName reports whether name carries a recognized archive suffix.
// Recognition is broader than extraction support: a bare .bz2 or .xz file is
// recognized here but extraction will refuse it.
func IsArchiveName(name string) bool {
	return matchSuffix(name) != ""
}

// Stem strips the full recognized archive suffix from name, so
// "data.tar.gz" yields "data" and "note.gz" yields "note". Names without a
// recognized suffix lose only their last extension.
func Stem(name string) string {
	if s := matchSuffix(name); s != "" {
		return name[:len(name)-len(s)]
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// NormalizeZipName appends the zip suffix when absent.
func NormalizeZipName(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".zip") {
		return name
	}
	return name + ".zip"
}

func matchSuffix(name string) string {
	lower := strings.ToLower(name)
	for _, s := range archiveSuffixes {
		if strings.HasSuffix(lower, s) && len(lower) > len(s) {
			return s
		}
	}
	return ""
}

package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"go.uber.org/zap"

	"github.com/shellman/shellman/internal/fs"
)

// Extract unpacks the archive at path. The destination is always
// `parent/stem`: a directory for zip and tar family archives, a single file
// for a bare gzip stream. An unrecognized suffix fails with the unsupported
// format error before anything is created on disk.
func (e *Engine) Extract(path string) (string, error) {
	lower := strings.ToLower(filepath.Base(path))
	dest := filepath.Join(filepath.Dir(path), Stem(filepath.Base(path)))

	var err error
	switch {
	case strings.HasSuffix(lower, ".zip"):
		err = extractZip(path, dest)
	case hasTarSuffix(lower):
		err = extractTar(path, dest, lower)
	case strings.HasSuffix(lower, ".gz"):
		err = extractGzipStream(path, dest)
	default:
		return "", fmt.Errorf("%w: %s", fs.ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return "", err
	}
	e.log.Info("extracted archive",
		zap.String("archive", path), zap.String("dest", dest))
	return dest, nil
}

func hasTarSuffix(lower string) bool {
	for _, s := range []string{".tar", ".tar.gz", ".tgz", ".tar.bz2", ".tar.xz", ".tar.zst"} {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

func extractZip(path, dest string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fs.Classify(err)
	}
	defer r.Close()

	if err := os.MkdirAll(dest, 0755); err != nil {
		return fs.Classify(err)
	}
	for _, f := range r.File {
		target := filepath.Join(dest, f.Name)
		// Refuse entries that escape the destination.
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
			continue
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fs.Classify(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fs.Classify(err)
		}
		if err := writeZipFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func writeZipFile(f *zip.File, target string) error {
	src, err := f.Open()
	if err != nil {
		return fs.Classify(err)
	}
	defer src.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fs.Classify(err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fs.Classify(err)
	}
	return fs.Classify(dst.Close())
}

func extractTar(path, dest, lower string) error {
	f, err := os.Open(path)
	if err != nil {
		return fs.Classify(err)
	}
	defer f.Close()

	var stream io.Reader = f
	switch {
	case strings.HasSuffix(lower, ".gz"), strings.HasSuffix(lower, ".tgz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fs.Classify(err)
		}
		defer gz.Close()
		stream = gz
	case strings.HasSuffix(lower, ".bz2"):
		stream = bzip2.NewReader(f)
	case strings.HasSuffix(lower, ".xz"):
		xr, err := xz.NewReader(f)
		if err != nil {
			return fs.Classify(err)
		}
		stream = xr
	case strings.HasSuffix(lower, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return fs.Classify(err)
		}
		defer zr.Close()
		stream = zr
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return fs.Classify(err)
	}
	tr := tar.NewReader(stream)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fs.Classify(err)
		}
		target := filepath.Join(dest, header.Name)
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
			continue
		}
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fs.Classify(err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fs.Classify(err)
			}
			if err := writeTarFile(tr, header, target); err != nil {
				return err
			}
		}
	}
}

func writeTarFile(tr *tar.Reader, header *tar.Header, target string) error {
	mode := os.FileMode(header.Mode).Perm()
	if mode == 0 {
		mode = 0644
	}
	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fs.Classify(err)
	}
	if _, err := io.Copy(dst, tr); err != nil {
		dst.Close()
		return fs.Classify(err)
	}
	return fs.Classify(dst.Close())
}

// extractGzipStream decompresses a bare gzip file to a single output file
// named by stripping the gzip suffix.
func extractGzipStream(path, dest string) error {
	f, err := os.Open(path)
	if err != nil {
		return fs.Classify(err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fs.Classify(err)
	}
	defer gz.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fs.Classify(err)
	}
	if _, err := io.Copy(out, gz); err != nil {
		out.Close()
		os.Remove(dest)
		return fs.Classify(err)
	}
	return fs.Classify(out.Close())
}

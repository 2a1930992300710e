package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"

	"github.com/charlievieth/fastwalk"
	"github.com/klauspost/compress/flate"
	"go.uber.org/zap"

	"github.com/shellman/shellman/internal/fs"
)

// walkConf keeps archive creation sequential: the zip writer is not safe for
// concurrent use and the engine is single-threaded by contract anyway.
var walkConf = fastwalk.Config{
	Follow:     false,
	NumWorkers: 1,
	Sort:       fastwalk.SortDirsFirst,
}

// Create writes a deflate-compressed zip at outPath containing the given
// entries. A directory entry is stored with every file under it, pathed
// relative to the directory's parent so the top-level directory name is
// preserved inside the archive; a plain file is stored by its bare name.
func (e *Engine) Create(paths []string, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fs.Classify(err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.DefaultCompression)
	})

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			zw.Close()
			os.Remove(outPath)
			return fs.Classify(err)
		}
		if info.IsDir() {
			err = e.addTree(zw, path)
		} else {
			err = addFile(zw, path, info, filepath.Base(path))
		}
		if err != nil {
			zw.Close()
			os.Remove(outPath)
			return fs.Classify(err)
		}
	}

	if err := zw.Close(); err != nil {
		os.Remove(outPath)
		return fs.Classify(err)
	}
	e.log.Info("created archive",
		zap.String("path", outPath), zap.Int("entries", len(paths)))
	return nil
}

// addTree stores dir and everything under it relative to dir's parent.
func (e *Engine) addTree(zw *zip.Writer, dir string) error {
	parent := filepath.Dir(dir)
	return fastwalk.Walk(&walkConf, dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(parent, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			_, err := zw.Create(rel + "/")
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return addFile(zw, path, info, rel)
	})
}

func addFile(zw *zip.Writer, path string, info os.FileInfo, name string) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

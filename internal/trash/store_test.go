package trash

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shellman/shellman/internal/fs"
	"github.com/shellman/shellman/internal/logging"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "trash")
	return NewStore(root, logging.NewNop()), dir
}

func TestSoftDeleteAndRestore(t *testing.T) {
	store, dir := newStore(t)
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("keep me"), 0644))

	records, err := store.SoftDelete([]string{path})
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.NoFileExists(t, path)
	assert.FileExists(t, records[0].TrashPath)
	assert.Equal(t, path, records[0].OriginalPath)
	assert.True(t, strings.HasSuffix(records[0].TrashPath, "_doc.txt"),
		"trash name keeps the original base name")

	require.NoError(t, Restore(records))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))
	assert.NoFileExists(t, records[0].TrashPath)
}

func TestSoftDeleteDirectory(t *testing.T) {
	store, dir := newStore(t)
	sub := filepath.Join(dir, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(sub, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "nested", "f"), []byte("x"), 0644))

	records, err := store.SoftDelete([]string{sub})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NoDirExists(t, sub)
	assert.FileExists(t, filepath.Join(records[0].TrashPath, "nested", "f"))

	require.NoError(t, Restore(records))
	assert.FileExists(t, filepath.Join(sub, "nested", "f"))
}

func TestSoftDeleteRepeatedSameName(t *testing.T) {
	store, dir := newStore(t)
	var records []Record
	for i := 0; i < 3; i++ {
		path := filepath.Join(dir, "same.txt")
		require.NoError(t, os.WriteFile(path, []byte{byte('0' + i)}, 0644))
		recs, err := store.SoftDelete([]string{path})
		require.NoError(t, err)
		records = append(records, recs...)
	}

	seen := make(map[string]bool)
	for _, r := range records {
		assert.False(t, seen[r.TrashPath], "trash names must not collide")
		seen[r.TrashPath] = true
		assert.FileExists(t, r.TrashPath)
	}
}

func TestSoftDeletePartialBatch(t *testing.T) {
	store, dir := newStore(t)
	first := filepath.Join(dir, "first.txt")
	require.NoError(t, os.WriteFile(first, []byte("a"), 0644))
	missing := filepath.Join(dir, "missing.txt")

	records, err := store.SoftDelete([]string{first, missing})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotFound)
	assert.Contains(t, err.Error(), "missing.txt", "error names the failing entry")

	// The entry moved before the failure stays in the trash.
	require.Len(t, records, 1)
	assert.NoFileExists(t, first)
	assert.FileExists(t, records[0].TrashPath)
}

func TestRestoreMissingParent(t *testing.T) {
	store, dir := newStore(t)
	parent := filepath.Join(dir, "will-vanish")
	require.NoError(t, os.Mkdir(parent, 0755))
	path := filepath.Join(parent, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	records, err := store.SoftDelete([]string{path})
	require.NoError(t, err)
	require.NoError(t, os.Remove(parent))

	err = Restore(records)
	assert.ErrorIs(t, err, fs.ErrRestore)
	assert.FileExists(t, records[0].TrashPath, "failed restore leaves the entry in the trash")
}

func TestStampedName(t *testing.T) {
	at := time.Date(2026, 8, 27, 14, 30, 5, 123456000, time.UTC)
	assert.Equal(t, "20260827_143005_123456_report.txt", stampedName(at, "report.txt"))
}

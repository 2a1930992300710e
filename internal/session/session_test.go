package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shellman/shellman/internal/config"
	"github.com/shellman/shellman/internal/fs"
	"github.com/shellman/shellman/internal/logging"
)

// newSession roots a session in a fresh temp directory with a private trash.
func newSession(t *testing.T) (*Session, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Browser.StartDir = dir
	cfg.Browser.TrashDir = filepath.Join(dir, ".trash")

	sess, err := New(cfg, logging.NewNop())
	require.NoError(t, err)
	return sess, dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func listingNames(t *testing.T, sess *Session) []string {
	t.Helper()
	entries, err := sess.Listing()
	require.NoError(t, err)
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestNewRejectsMissingStartDir(t *testing.T) {
	cfg := config.Default()
	cfg.Browser.StartDir = filepath.Join(t.TempDir(), "nope")
	_, err := New(cfg, logging.NewNop())
	assert.ErrorIs(t, err, fs.ErrNotFound)
}

func TestNavigation(t *testing.T) {
	sess, dir := newSession(t)
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))

	_, err := sess.GoTo(sub)
	require.NoError(t, err)
	assert.Equal(t, sub, sess.CurrentDir())

	_, err = sess.Up()
	require.NoError(t, err)
	assert.Equal(t, dir, sess.CurrentDir())

	_, err = sess.GoTo(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, fs.ErrNotFound)
	assert.Equal(t, dir, sess.CurrentDir(), "a failed GoTo leaves the directory unchanged")
}

func TestGoToClearsSelection(t *testing.T) {
	sess, dir := newSession(t)
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	path := filepath.Join(dir, "f.txt")
	writeFile(t, path, "x")

	sess.ToggleSelect(path)
	require.Equal(t, 1, sess.SelectionCount())

	_, err := sess.GoTo(sub)
	require.NoError(t, err)
	assert.Zero(t, sess.SelectionCount())
}

func TestCreateFileDuplicate(t *testing.T) {
	sess, dir := newSession(t)

	_, err := sess.CreateFile("fresh.txt")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "fresh.txt"))

	_, err = sess.CreateFile("fresh.txt")
	assert.ErrorIs(t, err, fs.ErrAlreadyExists)
	assert.Equal(t, 1, sess.UndoDepth(), "the failed attempt pushes nothing")
}

func TestCreateAndUndo(t *testing.T) {
	sess, dir := newSession(t)

	_, err := sess.CreateFile("a.txt")
	require.NoError(t, err)
	_, err = sess.CreateDirectory("b")
	require.NoError(t, err)
	require.Equal(t, 2, sess.UndoDepth())

	// LIFO: the directory goes first, then the file.
	status, err := sess.Undo()
	require.NoError(t, err)
	assert.Contains(t, status, "mkdir b")
	assert.NoDirExists(t, filepath.Join(dir, "b"))

	_, err = sess.Undo()
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "a.txt"))

	status, err = sess.Undo()
	assert.Error(t, err)
	assert.Equal(t, "Nothing to undo", status)
}

func TestRename(t *testing.T) {
	sess, dir := newSession(t)
	path := filepath.Join(dir, "old.txt")
	writeFile(t, path, "body")

	_, err := sess.Rename(path, "new.txt")
	require.NoError(t, err)
	assert.NoFileExists(t, path)
	assert.FileExists(t, filepath.Join(dir, "new.txt"))

	_, err = sess.Undo()
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestRenameCollision(t *testing.T) {
	sess, dir := newSession(t)
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "b.txt"), "b")

	_, err := sess.Rename(filepath.Join(dir, "a.txt"), "b.txt")
	assert.ErrorIs(t, err, fs.ErrAlreadyExists)

	data, err := os.ReadFile(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(data), "the existing entry is never clobbered")
}

func TestRenameInvalidName(t *testing.T) {
	sess, dir := newSession(t)
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, "a")

	for _, bad := range []string{"", ".", "..", "sub/evil.txt"} {
		_, err := sess.Rename(path, bad)
		assert.Error(t, err, "name %q", bad)
	}
}

func TestDeleteAndUndoRestores(t *testing.T) {
	sess, dir := newSession(t)
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	writeFile(t, a, "alpha")
	writeFile(t, b, "beta")

	_, err := sess.Delete([]string{a, b})
	require.NoError(t, err)
	assert.NoFileExists(t, a)
	assert.NoFileExists(t, b)
	require.Equal(t, 1, sess.UndoDepth(), "one batch, one undo entry")

	_, err = sess.Undo()
	require.NoError(t, err)
	data, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))
	data, err = os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, "beta", string(data))
}

func TestDeletePartialBatchPushesNoUndo(t *testing.T) {
	sess, dir := newSession(t)
	a := filepath.Join(dir, "a.txt")
	writeFile(t, a, "alpha")

	_, err := sess.Delete([]string{a, filepath.Join(dir, "ghost.txt")})
	require.Error(t, err)
	assert.Zero(t, sess.UndoDepth(), "a partially failed batch records no undo")
	assert.NoFileExists(t, a, "entries moved before the failure stay in the trash")
}

func TestDeleteClearsSelection(t *testing.T) {
	sess, dir := newSession(t)
	a := filepath.Join(dir, "a.txt")
	writeFile(t, a, "x")
	sess.ToggleSelect(a)

	_, err := sess.Delete(sess.Targets(""))
	require.NoError(t, err)
	assert.Zero(t, sess.SelectionCount())
}

func TestCutPasteRoundTrip(t *testing.T) {
	sess, dir := newSession(t)
	src := filepath.Join(dir, "moveme.txt")
	writeFile(t, src, "cargo")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))

	sess.Cut(src)

	// Pasting into the source's own directory fails and keeps the clipboard.
	_, err := sess.Paste()
	assert.ErrorIs(t, err, fs.ErrSameLocation)
	_, ok := sess.ClipboardPending()
	require.True(t, ok)

	_, err = sess.GoTo(sub)
	require.NoError(t, err)
	_, err = sess.Paste()
	require.NoError(t, err)
	assert.NoFileExists(t, src)
	assert.FileExists(t, filepath.Join(sub, "moveme.txt"))
	_, ok = sess.ClipboardPending()
	assert.False(t, ok)

	// Undo moves the entry back to where it was cut from.
	_, err = sess.Undo()
	require.NoError(t, err)
	assert.FileExists(t, src)
}

func TestCopyPasteAndUndo(t *testing.T) {
	sess, dir := newSession(t)
	src := filepath.Join(dir, "orig.txt")
	writeFile(t, src, "body")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))

	sess.Copy(src)
	_, err := sess.GoTo(sub)
	require.NoError(t, err)
	_, err = sess.Paste()
	require.NoError(t, err)

	dup := filepath.Join(sub, "orig.txt")
	assert.FileExists(t, dup)
	assert.FileExists(t, src)
	_, ok := sess.ClipboardPending()
	assert.True(t, ok, "the clipboard survives a copy-paste")

	// Undo removes the duplicate, not the original.
	_, err = sess.Undo()
	require.NoError(t, err)
	assert.NoFileExists(t, dup)
	assert.FileExists(t, src)
}

func TestListingState(t *testing.T) {
	sess, dir := newSession(t)
	writeFile(t, filepath.Join(dir, "visible.txt"), "v")
	writeFile(t, filepath.Join(dir, ".hidden"), "h")

	assert.NotContains(t, listingNames(t, sess), ".hidden")

	shown, _ := sess.ToggleHidden()
	assert.True(t, shown)
	assert.Contains(t, listingNames(t, sess), ".hidden")

	sess.SetFilter("VISIBLE")
	assert.Equal(t, []string{"visible.txt"}, listingNames(t, sess))
	sess.SetFilter("")
	assert.Len(t, listingNames(t, sess), 2)
}

func TestCycleSortMode(t *testing.T) {
	sess, _ := newSession(t)
	require.Equal(t, fs.SortByName, sess.SortMode())

	seen := map[fs.SortMode]bool{}
	for i := 0; i < 4; i++ {
		mode, _ := sess.CycleSortMode()
		seen[mode] = true
	}
	assert.Len(t, seen, 4, "the cycle visits every mode")
	assert.Equal(t, fs.SortByName, sess.SortMode(), "four steps return to the start")
}

func TestTargets(t *testing.T) {
	sess, dir := newSession(t)
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")

	assert.Nil(t, sess.Targets(""))
	assert.Equal(t, []string{a}, sess.Targets(a))

	sess.ToggleSelect(a)
	sess.ToggleSelect(b)
	targets := sess.Targets(filepath.Join(dir, "cursor"))
	assert.ElementsMatch(t, []string{a, b}, targets, "selection beats the cursor")
}

func TestArchiveExtractDispatch(t *testing.T) {
	sess, dir := newSession(t)
	archivePath := filepath.Join(dir, "bundle.zip")
	plain := filepath.Join(dir, "plain.txt")
	writeFile(t, plain, "p")

	assert.False(t, sess.ShouldExtract(plain))
	assert.False(t, sess.ShouldExtract(""))
	assert.True(t, sess.ShouldExtract(archivePath))

	// A non-empty selection always means "archive the selection".
	sess.ToggleSelect(plain)
	assert.False(t, sess.ShouldExtract(archivePath))
}

func TestArchiveAndExtractRoundTrip(t *testing.T) {
	sess, dir := newSession(t)
	a := filepath.Join(dir, "a.txt")
	writeFile(t, a, "alpha")

	_, err := sess.Archive([]string{a}, "bundle")
	require.NoError(t, err)
	zipPath := filepath.Join(dir, "bundle.zip")
	require.FileExists(t, zipPath)

	// Archiving onto an existing name is refused.
	_, err = sess.Archive([]string{a}, "bundle.zip")
	assert.ErrorIs(t, err, fs.ErrAlreadyExists)

	_, err = sess.ExtractIfArchive(zipPath)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "bundle", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))

	// Undo removes the extracted tree, then the archive itself.
	_, err = sess.Undo()
	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(dir, "bundle"))
	_, err = sess.Undo()
	require.NoError(t, err)
	assert.NoFileExists(t, zipPath)
}

func TestUndoFailureStaysPopped(t *testing.T) {
	sess, dir := newSession(t)
	path := filepath.Join(dir, "old.txt")
	writeFile(t, path, "x")
	_, err := sess.Rename(path, "new.txt")
	require.NoError(t, err)

	// Remove the renamed entry so the inverse move has nothing to work on.
	require.NoError(t, os.Remove(filepath.Join(dir, "new.txt")))

	_, err = sess.Undo()
	require.Error(t, err)
	assert.Zero(t, sess.UndoDepth(), "a failed inverse is consumed, not retried")
}

func TestHistory(t *testing.T) {
	sess, _ := newSession(t)
	_, err := sess.CreateFile("a.txt")
	require.NoError(t, err)
	_, err = sess.CreateFile("b.txt")
	require.NoError(t, err)

	entries := sess.History()
	require.Len(t, entries, 2)
	assert.Equal(t, "create a.txt", entries[0].Description)
	assert.Equal(t, "create b.txt", entries[1].Description)

	data, err := sess.HistoryJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), "create a.txt")
}

func TestStatusLine(t *testing.T) {
	sess, dir := newSession(t)
	writeFile(t, filepath.Join(dir, "a.txt"), "x")

	entries, err := sess.Listing()
	require.NoError(t, err)
	line := sess.StatusLine(entries)
	assert.Contains(t, line, "1 items")
	assert.Contains(t, line, "hidden excluded")

	sess.SetFilter("zz")
	entries, err = sess.Listing()
	require.NoError(t, err)
	line = sess.StatusLine(entries)
	assert.Contains(t, line, "0 items")
	assert.Contains(t, line, `[filter: "zz"]`)
}

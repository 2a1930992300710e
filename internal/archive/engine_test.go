package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsArchiveName(t *testing.T) {
	yes := []string{
		"bundle.zip", "bundle.ZIP", "data.tar", "data.tar.gz", "data.tgz",
		"data.tar.bz2", "data.tar.xz", "data.tar.zst", "note.gz", "note.bz2",
	}
	for _, name := range yes {
		assert.True(t, IsArchiveName(name), name)
	}

	no := []string{"plain.txt", "noext", ".gz", ".zip"}
	for _, name := range no {
		assert.False(t, IsArchiveName(name), name)
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"data.tar.gz", "data"},
		{"data.tar.bz2", "data"},
		{"data.tgz", "data"},
		{"data.tar", "data"},
		{"bundle.zip", "bundle"},
		{"note.gz", "note"},
		{"release.v2.tar.gz", "release.v2"},
		{"plain.txt", "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Stem(tt.name), tt.name)
	}
}

func TestNormalizeZipName(t *testing.T) {
	assert.Equal(t, "out.zip", NormalizeZipName("out"))
	assert.Equal(t, "out.zip", NormalizeZipName("out.zip"))
	assert.Equal(t, "out.ZIP", NormalizeZipName("out.ZIP"))
	assert.Equal(t, "backup.tar.zip", NormalizeZipName("backup.tar"))
}

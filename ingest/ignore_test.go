package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIgnoreFilterHidden(t *testing.T) {
	f := NewIgnoreFilter(nil)

	assert.True(t, f.Hidden(".gitignore"))
	assert.True(t, f.Hidden(".DS_Store"))
	assert.False(t, f.Hidden("notes.txt"))
	assert.False(t, f.Hidden("archive.tar.gz"))
}

func TestIgnoreFilterMatches(t *testing.T) {
	f := NewIgnoreFilter([]string{".txt", ".log.gz", "image.jpg", "README"})

	tests := []struct {
		name    string
		ignored bool
	}{
		{"notes.txt", true},
		{"image.jpg", true},
		{"README", true},
		{"other.jpg", false},
		{"notes.md", false},
		// extension runs from the first dot, so ".txt" does not match
		{"archive.txt.gz", false},
		{"build.log.gz", true},
		{"readme", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.ignored, f.Matches(tc.name), "name %q", tc.name)
	}
}

func TestIgnoreFilterEmptyList(t *testing.T) {
	f := NewIgnoreFilter(nil)

	assert.False(t, f.Matches("notes.txt"))
	assert.True(t, f.ShouldIgnore(".hidden"))
	assert.False(t, f.ShouldIgnore("visible.txt"))
}

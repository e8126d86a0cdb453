package urlindex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAndLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "url_index")
	require.NoError(t, os.WriteFile(path, []byte(
		"0: \"http://example.com/a.html\",\n1: \"http://example.com/b.html\",\n"), 0o644))

	idx, err := Load(path)
	require.NoError(t, err)

	url, ok := idx.URL(0)
	require.True(t, ok)
	assert.Equal(t, "http://example.com/a.html", url)

	_, ok = idx.URL(99)
	assert.False(t, ok)
}

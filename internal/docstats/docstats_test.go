package docstats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "count")
	require.NoError(t, os.WriteFile(path, []byte("0: 5\n1: 3\n2: 4\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, s.N())
	assert.InDelta(t, 4.0, s.AvgLen(), 1e-9)

	tokens, ok := s.TotalTokens(1)
	require.True(t, ok)
	assert.Equal(t, 3, tokens)

	_, ok = s.TotalTokens(99)
	assert.False(t, ok)
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "count")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, s.N())
	assert.Equal(t, 0.0, s.AvgLen())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

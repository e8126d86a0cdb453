package partialloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/webwarcindex/internal/termdir"
)

func TestFetchDeduplicatesAndReportsMissing(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "index")
	require.NoError(t, os.WriteFile(indexPath, []byte(
		"cas: [(0, 2),(1000, 3),]\ngat: [(0, 1),]\n"), 0o644))

	d, err := termdir.Build(indexPath)
	require.NoError(t, err)

	result, err := Fetch(d, []string{"cas", "cas", "nope"})
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "cas", result[0].Term)
	assert.True(t, result[0].Found)
	assert.Len(t, result[0].Postings, 2)

	assert.Equal(t, "nope", result[1].Term)
	assert.False(t, result[1].Found)
	assert.Nil(t, result[1].Postings)
}

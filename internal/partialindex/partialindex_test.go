package partialindex

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/webwarcindex/internal/countfile"
	"github.com/gcbaptista/webwarcindex/internal/textpipeline"
)

func TestWriteLineParseLineRoundTrip(t *testing.T) {
	postings := []Posting{{DocID: 3, Count: 2}, {DocID: 7, Count: 1}}

	var buf []byte
	w := bufio.NewWriter(&byteSliceWriter{&buf})
	require.NoError(t, WriteLine(w, "cas", postings))
	require.NoError(t, w.Flush())

	term, parsed, err := ParseLine(string(buf))
	require.NoError(t, err)
	assert.Equal(t, "cas", term)
	assert.Equal(t, postings, parsed)
}

type byteSliceWriter struct{ buf *[]byte }

func (w *byteSliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}

func TestMergeBucket(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, countfile.Write(filepath.Join(dir, "0"), 5, []textpipeline.TermCount{
		{Term: "cas", Count: 2}, {Term: "gat", Count: 1},
	}))
	require.NoError(t, countfile.Write(filepath.Join(dir, "1"), 3, []textpipeline.TermCount{
		{Term: "cas", Count: 1},
	}))
	// doc 2 is missing entirely (e.g. never written) and must be skipped

	countsOut := filepath.Join(dir, "counts_0_3")
	indexOut := filepath.Join(dir, "index_0_3")
	require.NoError(t, MergeBucket(dir, 0, 3, countsOut, indexOut))

	countsData, err := os.ReadFile(countsOut)
	require.NoError(t, err)
	assert.Equal(t, "0: 5\n1: 3\n", string(countsData))

	indexData, err := os.ReadFile(indexOut)
	require.NoError(t, err)
	assert.Equal(t, "cas: [(0,2),(1,1),]\ngat: [(0,1),]\n", string(indexData))
}

func TestMergeFinal(t *testing.T) {
	dir := t.TempDir()
	b1 := filepath.Join(dir, "index_0_1000")
	require.NoError(t, os.WriteFile(b1, []byte("cas: [(0, 2),]\ngat: [(0, 1),]\n"), 0o644))
	b2 := filepath.Join(dir, "index_1000_2000")
	require.NoError(t, os.WriteFile(b2, []byte("cas: [(1000, 3),]\n"), 0o644))

	outPath := filepath.Join(dir, "index")
	require.NoError(t, MergeFinal([]Bucket{{Start: 0, Path: b1}, {Start: 1000, Path: b2}}, outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "cas: [(0,2),(1000,3),]\ngat: [(0,1),]\n", string(data))
}

func TestMergeFinalCounts(t *testing.T) {
	dir := t.TempDir()
	c1 := filepath.Join(dir, "counts_0_1000")
	require.NoError(t, os.WriteFile(c1, []byte("0: 5\n1: 3\n"), 0o644))
	c2 := filepath.Join(dir, "counts_1000_2000")
	require.NoError(t, os.WriteFile(c2, []byte("1000: 7\n"), 0o644))

	outPath := filepath.Join(dir, "count")
	require.NoError(t, MergeFinalCounts([]string{c1, c2}, outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "0: 5\n1: 3\n1000: 7\n", string(data))
}

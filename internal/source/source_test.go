package source

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRecord(sb *strings.Builder, warcType, targetURI, content string) {
	sb.WriteString("WARC/1.0\r\n")
	sb.WriteString("WARC-Type: " + warcType + "\r\n")
	if targetURI != "" {
		sb.WriteString("WARC-Target-URI: " + targetURI + "\r\n")
	}
	sb.WriteString("Content-Length: ")
	sb.WriteString(itoa(len(content)))
	sb.WriteString("\r\n\r\n")
	sb.WriteString(content)
	sb.WriteString("\r\n\r\n")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func buildArchive(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("shard-0.kaggle")
	require.NoError(t, err)

	var sb strings.Builder
	writeRecord(&sb, "response", "http://example.com/page.html", "<html><body>ola mundo</body></html>")
	writeRecord(&sb, "response", "http://example.com/photo.jpg", "binary junk")
	writeRecord(&sb, "response", "http://example.com/other.html", "<html><body>outra pagina</body></html>")
	_, err = w.Write([]byte(sb.String()))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
}

func TestSourceSkipsExcludedExtensionsAndAssignsDenseIDs(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "archive.zip")
	buildArchive(t, archivePath)

	src, err := Open(archivePath, filepath.Join(dir, "final", "url_index"))
	require.NoError(t, err)
	defer src.Close()

	doc1, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), doc1.ID)
	assert.Equal(t, "http://example.com/page.html", doc1.URL)

	doc2, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), doc2.ID)
	assert.Equal(t, "http://example.com/other.html", doc2.URL)

	assert.Equal(t, uint64(3), src.Seen())

	require.NoError(t, src.Close())

	data, err := os.ReadFile(filepath.Join(dir, "final", "url_index"))
	require.NoError(t, err)
	assert.Equal(t, "0: \"http://example.com/page.html\",\n1: \"http://example.com/other.html\",\n", string(data))
}

package warc

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRecord(warcType, targetURI, content string) string {
	var sb strings.Builder
	sb.WriteString("WARC/1.0\r\n")
	sb.WriteString("WARC-Type: " + warcType + "\r\n")
	if targetURI != "" {
		sb.WriteString("WARC-Target-URI: " + targetURI + "\r\n")
	}
	sb.WriteString("Content-Length: " + itoa(len(content)) + "\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(content)
	sb.WriteString("\r\n\r\n")
	return sb.String()
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

func TestReaderParsesMultipleRecords(t *testing.T) {
	stream := buildRecord("warcinfo", "", "software: test\r\n") +
		buildRecord("response", "http://example.com/a", "<html><body>ola</body></html>") +
		buildRecord("response", "http://example.com/b", "<html><body>mundo</body></html>")

	r, err := NewReader(strings.NewReader(stream))
	require.NoError(t, err)

	rec1, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "warcinfo", rec1.Type)

	rec2, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "response", rec2.Type)
	assert.Equal(t, "http://example.com/a", rec2.TargetURI)
	assert.Contains(t, string(rec2.Content), "ola")

	rec3, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/b", rec3.TargetURI)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

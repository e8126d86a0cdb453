// Package warc reads WARC records out of a (possibly gzip-compressed)
// byte stream, one at a time, without materializing the whole stream in
// memory.
package warc

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"net/textproto"
	"strconv"
	"strings"
)

// Record is a single parsed WARC record: its type, its target URI (when
// present), and the raw bytes of its block content.
type Record struct {
	Type      string
	TargetURI string
	Content   []byte
}

// Reader reads successive Records from an underlying stream. WARC files
// in the wild are usually gzip-compressed, with one gzip member per
// record; Reader auto-detects this and transparently decompresses.
type Reader struct {
	tp *textproto.Reader
}

// NewReader wraps r, sniffing for a leading gzip magic number.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	peek, err := br.Peek(2)
	if err == nil && len(peek) == 2 && peek[0] == 0x1f && peek[1] == 0x8b {
		gz, gzErr := gzip.NewReader(br)
		if gzErr != nil {
			return nil, fmt.Errorf("warc: opening gzip stream: %w", gzErr)
		}
		br = bufio.NewReader(gz)
	}
	return &Reader{tp: textproto.NewReader(br)}, nil
}

// Next returns the next record, or io.EOF once the stream is exhausted.
func (r *Reader) Next() (*Record, error) {
	var line string
	var err error
	for {
		line, err = r.tp.ReadLine()
		if err != nil {
			return nil, err
		}
		if line != "" {
			break
		}
	}
	if !strings.HasPrefix(line, "WARC/") {
		return nil, fmt.Errorf("warc: expected a version line, got %q", line)
	}

	header, err := r.tp.ReadMIMEHeader()
	if err != nil && len(header) == 0 {
		return nil, fmt.Errorf("warc: reading record headers: %w", err)
	}

	lengthStr := strings.TrimSpace(header.Get("Content-Length"))
	length, err := strconv.Atoi(lengthStr)
	if err != nil {
		return nil, fmt.Errorf("warc: invalid Content-Length %q: %w", lengthStr, err)
	}

	content := make([]byte, length)
	if _, err := io.ReadFull(r.tp.R, content); err != nil {
		return nil, fmt.Errorf("warc: reading %d bytes of content: %w", length, err)
	}

	// A blank line separates this record's content from the next
	// record's version line.
	_, _ = r.tp.ReadLine()

	return &Record{
		Type:      header.Get("Warc-Type"),
		TargetURI: header.Get("Warc-Target-Uri"),
		Content:   content,
	}, nil
}

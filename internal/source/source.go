// Package source walks the ZIP archive of WARC files that make up the
// corpus, filters out documents whose URL extension marks them as a
// format this system never indexes, assigns each accepted document a
// dense doc-id, and records the doc-id -> URL mapping (C1).
package source

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gcbaptista/webwarcindex/internal/warc"
	"github.com/gcbaptista/webwarcindex/model"
)

// excludedExtensions mirrors formats observed in the corpus that carry
// no indexable text: binaries, archives, and markup this pipeline
// cannot usefully tokenize.
var excludedExtensions = map[string]struct{}{
	".mp4": {}, ".png": {}, ".fdm": {}, ".pdf": {}, ".doc": {}, ".dll": {},
	".exe": {}, ".jpg": {}, ".sh": {}, ".yml": {}, ".xsl": {}, ".xml": {}, ".mpq": {},
}

// Source iterates accepted documents across every .kaggle entry in the
// archive, in entry order. Doc-ids are dense over accepted documents
// only: skipped records never receive one and are never written to the
// url index.
type Source struct {
	zr      *zip.ReadCloser
	entries []*zip.File
	entryAt int

	curBody   io.ReadCloser
	curReader *warc.Reader

	nextDocID uint32
	seen      uint64

	urlFile   *os.File
	urlWriter *bufio.Writer
}

// Open opens archivePath and prepares to write the doc-id -> URL
// mapping to urlIndexPath as documents are accepted.
func Open(archivePath, urlIndexPath string) (*Source, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("source: opening archive: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(urlIndexPath), 0o750); err != nil {
		zr.Close()
		return nil, fmt.Errorf("source: creating output directory: %w", err)
	}
	urlFile, err := os.Create(urlIndexPath)
	if err != nil {
		zr.Close()
		return nil, fmt.Errorf("source: creating url index: %w", err)
	}

	var entries []*zip.File
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, ".kaggle") {
			entries = append(entries, f)
		}
	}

	return &Source{
		zr:        zr,
		entries:   entries,
		urlFile:   urlFile,
		urlWriter: bufio.NewWriter(urlFile),
	}, nil
}

// Next returns the next accepted document, or io.EOF once every entry
// has been exhausted.
func (s *Source) Next() (*model.Document, error) {
	for {
		if s.curReader == nil {
			if err := s.advanceEntry(); err != nil {
				return nil, err
			}
		}

		rec, err := s.curReader.Next()
		if err == io.EOF {
			s.curBody.Close()
			s.curReader = nil
			s.curBody = nil
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("source: reading warc record: %w", err)
		}
		s.seen++

		if rec.Type != "response" || rec.TargetURI == "" {
			continue
		}
		ext := strings.ToLower(path.Ext(rec.TargetURI))
		if _, skip := excludedExtensions[ext]; skip {
			continue
		}

		id := s.nextDocID
		s.nextDocID++
		fmt.Fprintf(s.urlWriter, "%d: %q,\n", id, rec.TargetURI)

		return &model.Document{ID: id, URL: rec.TargetURI, Body: rec.Content}, nil
	}
}

// advanceEntry opens the next .kaggle ZIP entry, or returns io.EOF when
// there are no more entries left.
func (s *Source) advanceEntry() error {
	if s.entryAt >= len(s.entries) {
		return io.EOF
	}
	f := s.entries[s.entryAt]
	s.entryAt++

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("source: opening entry %s: %w", f.Name, err)
	}
	wr, err := warc.NewReader(rc)
	if err != nil {
		rc.Close()
		return fmt.Errorf("source: opening warc stream in %s: %w", f.Name, err)
	}
	s.curBody = rc
	s.curReader = wr
	return nil
}

// Seen returns the number of WARC records observed so far, including
// ones skipped by extension. It exists for operator-visible progress
// reporting and does not correspond to any doc-id.
func (s *Source) Seen() uint64 { return s.seen }

// NextDocID returns the doc-id that will be assigned to the next
// accepted document, i.e. the total number of accepted documents so far.
func (s *Source) NextDocID() uint32 { return s.nextDocID }

// Close releases the archive and flushes the url index to disk.
func (s *Source) Close() error {
	if s.curBody != nil {
		s.curBody.Close()
	}
	if err := s.urlWriter.Flush(); err != nil {
		s.urlFile.Close()
		s.zr.Close()
		return err
	}
	if err := s.urlFile.Close(); err != nil {
		s.zr.Close()
		return err
	}
	return s.zr.Close()
}

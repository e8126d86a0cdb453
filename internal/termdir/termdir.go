// Package termdir builds and serves the term directory (C7): a
// single-pass scan of the final index that records, for every term,
// the byte offset of its posting-list line. Query time then seeks
// straight to a term's line instead of scanning the whole index.
package termdir

import (
	"bufio"
	"fmt"
	"os"

	"github.com/gcbaptista/webwarcindex/internal/partialindex"
	"github.com/gcbaptista/webwarcindex/internal/persistence"
)

// Directory maps a term to the byte offset of its line in the final
// index file.
type Directory struct {
	indexPath string
	offsets   map[string]int64
}

// Build scans indexPath once and records every term's line offset.
func Build(indexPath string) (*Directory, error) {
	f, err := os.Open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("termdir: opening %s: %w", indexPath, err)
	}
	defer f.Close()

	offsets := make(map[string]int64)
	reader := bufio.NewReader(f)
	var offset int64
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if sep := indexOfColonBracket(line); sep >= 0 {
				offsets[line[:sep]] = offset
			}
			offset += int64(len(line))
		}
		if err != nil {
			break
		}
	}

	return &Directory{indexPath: indexPath, offsets: offsets}, nil
}

// Load tries a gob sidecar cache at cachePath first, rebuilding from
// indexPath and repopulating the cache on a miss. A cache file that is
// missing or fails to decode is silently rebuilt; a cache that decodes
// is used as is, with no check that it matches the current index. If
// writing the rebuilt cache fails, the built directory is returned
// together with that error.
func Load(indexPath, cachePath string) (*Directory, error) {
	offsets := make(map[string]int64)
	if err := persistence.LoadGob(cachePath, &offsets); err == nil {
		return &Directory{indexPath: indexPath, offsets: offsets}, nil
	}

	dir, err := Build(indexPath)
	if err != nil {
		return nil, err
	}
	if err := persistence.SaveGob(cachePath, dir.offsets); err != nil {
		return dir, fmt.Errorf("termdir: caching offsets: %w", err)
	}
	return dir, nil
}

// Offset returns the byte offset of term's posting-list line, and
// whether the term appears in the index at all.
func (d *Directory) Offset(term string) (int64, bool) {
	off, ok := d.offsets[term]
	return off, ok
}

// Len returns the number of distinct terms in the directory.
func (d *Directory) Len() int { return len(d.offsets) }

func indexOfColonBracket(line string) int {
	for i := 0; i+2 < len(line); i++ {
		if line[i] == ':' && line[i+1] == ' ' && line[i+2] == '[' {
			return i
		}
	}
	return -1
}

// ReadPostings seeks to term's line and parses its posting list. It
// returns (nil, false) for a term the directory doesn't know about.
func (d *Directory) ReadPostings(term string) ([]partialindex.Posting, bool, error) {
	offset, ok := d.Offset(term)
	if !ok {
		return nil, false, nil
	}

	f, err := os.Open(d.indexPath)
	if err != nil {
		return nil, false, fmt.Errorf("termdir: opening %s: %w", d.indexPath, err)
	}
	defer f.Close()

	if _, err := f.Seek(offset, 0); err != nil {
		return nil, false, fmt.Errorf("termdir: seeking in %s: %w", d.indexPath, err)
	}
	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return nil, false, fmt.Errorf("termdir: reading term line: %w", err)
	}

	_, postings, parseErr := partialindex.ParseLine(line)
	if parseErr != nil {
		return nil, false, fmt.Errorf("termdir: parsing term line: %w", parseErr)
	}
	return postings, true, nil
}

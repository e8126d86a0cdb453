// Package config provides validated configuration structures for the
// index builder and the query engine.
package config

import (
	"fmt"

	"github.com/gcbaptista/webwarcindex/internal/ranking"
)

// BuildSettings configures a single run of the index builder (C6).
type BuildSettings struct {
	// ArchivePath is the path to the ZIP file containing the WARC files.
	ArchivePath string
	// OutputDir is where final/ and cache/ are created.
	OutputDir string
	// MemoryCeilingMB is the process-wide address-space ceiling, in
	// megabytes, used to size the count and partial-index worker pools.
	MemoryCeilingMB int
	// BucketSize is the number of documents grouped into one partial
	// index before the final merge (spec default: 1000).
	BucketSize int
	// ChunkSize is the number of documents processed between worker
	// pool recycling points (spec default: 10000).
	ChunkSize int
	// Plaintext selects the plaintext worker-count formula and skips
	// HTML visible-text extraction entirely.
	Plaintext bool
	// Resume allows the builder to continue into non-empty staging
	// directories instead of refusing to start.
	Resume bool
}

// DefaultBuildSettings returns the spec's default bucket and chunk
// sizes for a given memory ceiling.
func DefaultBuildSettings(archivePath, outputDir string, memoryCeilingMB int) BuildSettings {
	return BuildSettings{
		ArchivePath:     archivePath,
		OutputDir:       outputDir,
		MemoryCeilingMB: memoryCeilingMB,
		BucketSize:      1000,
		ChunkSize:       10000,
	}
}

// Validate returns every problem found with the settings, rather than
// failing on the first one, so an operator sees the whole picture in a
// single run.
func (s *BuildSettings) Validate() []string {
	var problems []string

	if s.ArchivePath == "" {
		problems = append(problems, "archive path must not be empty")
	}
	if s.OutputDir == "" {
		problems = append(problems, "output directory must not be empty")
	}
	if s.MemoryCeilingMB <= 0 {
		problems = append(problems, fmt.Sprintf("memory ceiling must be positive, got %d", s.MemoryCeilingMB))
	}
	if s.BucketSize <= 0 {
		problems = append(problems, fmt.Sprintf("bucket size must be positive, got %d", s.BucketSize))
	}
	if s.ChunkSize <= 0 {
		problems = append(problems, fmt.Sprintf("chunk size must be positive, got %d", s.ChunkSize))
	}
	if s.ChunkSize < s.BucketSize {
		problems = append(problems, "chunk size should not be smaller than bucket size")
	}

	return problems
}

// QuerySettings configures a run of the query engine (C7-C11).
type QuerySettings struct {
	IndexDir string
	Ranking  ranking.Function
}

// Validate returns every problem found with the settings.
func (s *QuerySettings) Validate() []string {
	var problems []string

	if s.IndexDir == "" {
		problems = append(problems, "index directory must not be empty")
	}
	if !s.Ranking.Valid() {
		problems = append(problems, fmt.Sprintf("ranking function must be TFIDF or BM25, got %q", s.Ranking))
	}

	return problems
}

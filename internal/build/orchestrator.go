// Package build implements the index builder's staged orchestration
// (C6): a count stage (C1→C2→C3, chunked, with the worker pool torn
// down and respawned and a GC sweep run at each chunk boundary), a
// partial stage (C4, bucketed), and a single-threaded final stage (C5).
// Each stage is registered as a job in the adapted jobs.Manager for
// progress visibility, the way the teacher surfaces long-running index
// operations.
package build

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strconv"
	"sync"

	"github.com/gcbaptista/webwarcindex/config"
	"github.com/gcbaptista/webwarcindex/internal/countfile"
	errs "github.com/gcbaptista/webwarcindex/internal/errors"
	"github.com/gcbaptista/webwarcindex/internal/jobs"
	"github.com/gcbaptista/webwarcindex/internal/partialindex"
	"github.com/gcbaptista/webwarcindex/internal/source"
	"github.com/gcbaptista/webwarcindex/internal/textpipeline"
	"github.com/gcbaptista/webwarcindex/model"
)

type bucketRange struct{ start, end int }

// Orchestrator drives the three build stages for one archive under one
// memory ceiling.
type Orchestrator struct {
	settings  config.BuildSettings
	jobs      *jobs.Manager
	totalDocs uint32
	buckets   []bucketRange
}

// NewOrchestrator prepares an Orchestrator and starts its job manager.
func NewOrchestrator(settings config.BuildSettings) *Orchestrator {
	mgr := jobs.NewManager(1)
	mgr.Start()
	return &Orchestrator{settings: settings, jobs: mgr}
}

// Run executes the count, partial, and final stages in order, refusing
// to start over non-empty staging directories unless the settings ask
// to resume.
func (o *Orchestrator) Run() error {
	defer o.jobs.Stop()

	if err := o.guardStagingDirs(); err != nil {
		return err
	}
	if err := o.runStage(model.JobTypeCountStage, "count", o.runCountStage); err != nil {
		return err
	}
	if err := o.runStage(model.JobTypePartialStage, "partial", o.runPartialStage); err != nil {
		return err
	}
	if err := o.runStage(model.JobTypeFinalStage, "final", o.runFinalStage); err != nil {
		return err
	}
	return nil
}

// runStage registers stage as a job, runs fn synchronously through the
// job manager's tracked goroutine, and blocks for its result.
func (o *Orchestrator) runStage(jobType model.JobType, stage string, fn func() error) error {
	jobID := o.jobs.CreateJob(jobType, stage, nil)
	done := make(chan error, 1)

	err := o.jobs.ExecuteJob(jobID, func(_ context.Context, _ *model.Job) error {
		stageErr := fn()
		done <- stageErr
		return stageErr
	})
	if err != nil {
		return err
	}
	return <-done
}

func (o *Orchestrator) guardStagingDirs() error {
	if o.settings.Resume {
		return nil
	}
	for _, dir := range o.stagingDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("build: checking staging dir %s: %w", dir, err)
		}
		if len(entries) > 0 {
			return errs.NewConfigError("resume", fmt.Sprintf(
				"staging directory %s is not empty; pass -resume to continue a prior build", dir))
		}
	}
	return nil
}

func (o *Orchestrator) stagingDirs() []string {
	return []string{
		o.preIndDir(),
		o.partialCountsDir(),
		o.partialIndexesDir(),
	}
}

func (o *Orchestrator) preIndDir() string         { return filepath.Join(o.settings.OutputDir, "cache", "pre_ind") }
func (o *Orchestrator) partialCountsDir() string  { return filepath.Join(o.settings.OutputDir, "cache", "partial_counts") }
func (o *Orchestrator) partialIndexesDir() string { return filepath.Join(o.settings.OutputDir, "cache", "partial_indexes") }
func (o *Orchestrator) finalDir() string          { return filepath.Join(o.settings.OutputDir, "final") }

// runCountStage drains the document source through a worker pool sized
// from the memory ceiling, processing documents in chunks. Each chunk
// gets a freshly spawned pool that is torn down once the chunk is done,
// followed by a GC sweep and an OS-memory release.
func (o *Orchestrator) runCountStage() error {
	preIndDir := o.preIndDir()
	if err := os.MkdirAll(preIndDir, 0o750); err != nil {
		return fmt.Errorf("build: creating %s: %w", preIndDir, err)
	}

	urlIndexPath := filepath.Join(o.finalDir(), "url_index")
	src, err := source.Open(o.settings.ArchivePath, urlIndexPath)
	if err != nil {
		return err
	}
	defer src.Close()

	n := countWorkers(o.settings.MemoryCeilingMB, o.settings.Plaintext)
	log.Printf("count stage: %d workers (plaintext=%v, ceiling=%dMB)", n, o.settings.Plaintext, o.settings.MemoryCeilingMB)

	chunkSize := o.settings.ChunkSize
	for {
		docs := make(chan *model.Document, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for doc := range docs {
					if procErr := o.processDocument(preIndDir, doc); procErr != nil {
						log.Printf("count stage: %v", procErr)
					}
				}
			}()
		}

		read := 0
		var sourceErr error
		for read < chunkSize {
			doc, nextErr := src.Next()
			if nextErr == io.EOF {
				sourceErr = io.EOF
				break
			}
			if nextErr != nil {
				sourceErr = nextErr
				break
			}
			docs <- doc
			read++
		}
		close(docs)
		wg.Wait()

		runtime.GC()
		debug.FreeOSMemory()

		if read > 0 {
			log.Printf("count stage: processed %d documents so far (%d records seen)", src.NextDocID(), src.Seen())
		}

		if sourceErr == io.EOF {
			break
		}
		if sourceErr != nil {
			return fmt.Errorf("build: count stage: %w", sourceErr)
		}
	}

	o.totalDocs = src.NextDocID()
	log.Printf("count stage: done, %d documents accepted", o.totalDocs)
	return nil
}

func (o *Orchestrator) processDocument(preIndDir string, doc *model.Document) error {
	var result textpipeline.Result
	var err error
	if o.settings.Plaintext {
		result = textpipeline.ProcessPlaintext(doc.Body)
	} else {
		result, err = textpipeline.ProcessHTML(doc.Body)
	}
	if err != nil {
		return errs.NewTransientDocumentError(doc.ID, doc.URL, err)
	}

	path := filepath.Join(preIndDir, strconv.FormatUint(uint64(doc.ID), 10))
	if err := countfile.Write(path, result.TotalTokens, result.Counts); err != nil {
		return errs.NewTransientDocumentError(doc.ID, doc.URL, err)
	}
	return nil
}

// runPartialStage k-way merges every count-file bucket into a partial
// index and partial count file, one bucket per worker slot.
func (o *Orchestrator) runPartialStage() error {
	if o.totalDocs == 0 {
		return nil
	}

	partialCountsDir := o.partialCountsDir()
	partialIndexesDir := o.partialIndexesDir()
	if err := os.MkdirAll(partialCountsDir, 0o750); err != nil {
		return fmt.Errorf("build: creating %s: %w", partialCountsDir, err)
	}
	if err := os.MkdirAll(partialIndexesDir, 0o750); err != nil {
		return fmt.Errorf("build: creating %s: %w", partialIndexesDir, err)
	}

	bucketSize := o.settings.BucketSize
	total := int(o.totalDocs)
	var buckets []bucketRange
	for start := 0; start < total; start += bucketSize {
		end := start + bucketSize
		if end > total {
			end = total
		}
		buckets = append(buckets, bucketRange{start, end})
	}

	n := partialWorkers(o.settings.MemoryCeilingMB)
	log.Printf("partial stage: %d workers over %d buckets", n, len(buckets))

	sem := make(chan struct{}, n)
	var wg sync.WaitGroup
	errCh := make(chan error, len(buckets))

	for _, b := range buckets {
		b := b
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			countsPath := filepath.Join(partialCountsDir, fmt.Sprintf("%d_%d", b.start, b.end))
			indexPath := filepath.Join(partialIndexesDir, fmt.Sprintf("%d_%d", b.start, b.end))
			if err := partialindex.MergeBucket(o.preIndDir(), b.start, b.end, countsPath, indexPath); err != nil {
				errCh <- errs.NewBucketError(b.start, b.end, err)
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		return err
	}

	o.buckets = buckets
	log.Printf("partial stage: done, %d buckets merged", len(buckets))
	return nil
}

// runFinalStage merges every bucket's partial files into the final
// index and count file, then removes the staging tree.
func (o *Orchestrator) runFinalStage() error {
	finalDir := o.finalDir()
	if err := os.MkdirAll(finalDir, 0o750); err != nil {
		return fmt.Errorf("build: creating %s: %w", finalDir, err)
	}

	var bks []partialindex.Bucket
	var countPaths []string
	for _, b := range o.buckets {
		bks = append(bks, partialindex.Bucket{
			Start: b.start,
			Path:  filepath.Join(o.partialIndexesDir(), fmt.Sprintf("%d_%d", b.start, b.end)),
		})
		countPaths = append(countPaths, filepath.Join(o.partialCountsDir(), fmt.Sprintf("%d_%d", b.start, b.end)))
	}

	indexPath := filepath.Join(finalDir, "index")
	if err := partialindex.MergeFinal(bks, indexPath); err != nil {
		return errs.NewMergeError(err)
	}

	countPath := filepath.Join(finalDir, "count")
	if err := partialindex.MergeFinalCounts(countPaths, countPath); err != nil {
		return errs.NewMergeError(err)
	}

	log.Printf("final stage: wrote %s and %s", indexPath, countPath)
	return os.RemoveAll(filepath.Join(o.settings.OutputDir, "cache"))
}

func countWorkers(memoryCeilingMB int, plaintext bool) int {
	var n int
	if plaintext {
		n = memoryCeilingMB/120 - 1
	} else {
		n = memoryCeilingMB/150 - 1
	}
	return clampWorkers(n)
}

func partialWorkers(memoryCeilingMB int) int {
	return clampWorkers(memoryCeilingMB/100 - 1)
}

func clampWorkers(n int) int {
	if cpu := runtime.NumCPU(); n > cpu {
		n = cpu
	}
	if n < 1 {
		n = 1
	}
	return n
}

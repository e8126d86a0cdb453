package partialindex

import (
	"bufio"
	"container/heap"
	"fmt"
	"io"
	"os"
)

// Bucket identifies one partial-index file by the doc-id its bucket
// starts at, which also doubles as the final-merge tie-break key:
// buckets cover disjoint, increasing doc-id ranges, so merging lowest
// bucket-start first keeps each term's postings in ascending doc-id
// order without re-sorting by doc-id at this stage.
type Bucket struct {
	Start int
	Path  string
}

type bucketCursor struct {
	start    int
	f        *os.File
	sc       *bufio.Scanner
	term     string
	postings []Posting
	done     bool
}

func openBucketCursor(b Bucket) (*bucketCursor, error) {
	f, err := os.Open(b.Path)
	if err != nil {
		return nil, fmt.Errorf("partialindex: opening %s: %w", b.Path, err)
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 8<<20)
	c := &bucketCursor{start: b.Start, f: f, sc: sc}
	if err := c.advance(); err != nil {
		f.Close()
		return nil, err
	}
	return c, nil
}

func (c *bucketCursor) advance() error {
	if !c.sc.Scan() {
		c.done = true
		if err := c.sc.Err(); err != nil {
			return err
		}
		return c.f.Close()
	}
	term, postings, err := ParseLine(c.sc.Text())
	if err != nil {
		return err
	}
	c.term = term
	c.postings = postings
	return nil
}

type finalHeapItem struct {
	cursorIdx int
	term      string
	start     int
}

type finalHeap []finalHeapItem

func (h finalHeap) Len() int { return len(h) }
func (h finalHeap) Less(i, j int) bool {
	if h[i].term != h[j].term {
		return h[i].term < h[j].term
	}
	return h[i].start < h[j].start
}
func (h finalHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *finalHeap) Push(x interface{}) { *h = append(*h, x.(finalHeapItem)) }
func (h *finalHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// MergeFinal k-way merges a set of partial indexes into one final
// index file: for every term, it concatenates the postings contributed
// by each bucket, in ascending bucket-start order.
func MergeFinal(buckets []Bucket, outPath string) error {
	cursors := make([]*bucketCursor, 0, len(buckets))
	for _, b := range buckets {
		c, err := openBucketCursor(b)
		if err != nil {
			for _, opened := range cursors {
				opened.f.Close()
			}
			return fmt.Errorf("partialindex: final merge: %w", err)
		}
		cursors = append(cursors, c)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("partialindex: creating %s: %w", outPath, err)
	}
	defer out.Close()
	w := bufio.NewWriter(out)

	h := &finalHeap{}
	for i, c := range cursors {
		if !c.done {
			heap.Push(h, finalHeapItem{cursorIdx: i, term: c.term, start: c.start})
		}
	}

	for h.Len() > 0 {
		term := (*h)[0].term
		var postings []Posting
		for h.Len() > 0 && (*h)[0].term == term {
			it := heap.Pop(h).(finalHeapItem)
			c := cursors[it.cursorIdx]
			postings = append(postings, c.postings...)
			if err := c.advance(); err != nil {
				return fmt.Errorf("partialindex: advancing bucket cursor: %w", err)
			}
			if !c.done {
				heap.Push(h, finalHeapItem{cursorIdx: it.cursorIdx, term: c.term, start: c.start})
			}
		}
		if err := WriteLine(w, term, postings); err != nil {
			return fmt.Errorf("partialindex: writing final index: %w", err)
		}
	}

	return w.Flush()
}

// MergeFinalCounts concatenates the bucket-level count files into one
// final count file. No re-sorting is needed: FinalCountFile lookups
// are keyed by doc-id, not by file position.
func MergeFinalCounts(paths []string, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("partialindex: creating %s: %w", outPath, err)
	}
	defer out.Close()

	for _, p := range paths {
		if err := appendFile(out, p); err != nil {
			return fmt.Errorf("partialindex: appending %s: %w", p, err)
		}
	}
	return nil
}

func appendFile(dst io.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = io.Copy(dst, src)
	return err
}

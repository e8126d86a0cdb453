package partialindex

import (
	"bufio"
	"container/heap"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/gcbaptista/webwarcindex/internal/countfile"
	"github.com/gcbaptista/webwarcindex/internal/textpipeline"
)

type docEntry struct {
	docID  int
	total  int
	counts []textpipeline.TermCount
}

// MergeBucket reads every per-document count file for doc-ids in
// [start, end) out of preIndDir, writes one line per existing
// document's total-token count to partialCountsPath, and k-way merges
// their term counts (ascending term, then ascending doc-id) into
// partialIndexPath. A missing per-document file is treated as a gap
// (the document belonged to a later chunk, or the range overruns the
// corpus) and silently skipped; any other read failure aborts the
// bucket.
func MergeBucket(preIndDir string, start, end int, partialCountsPath, partialIndexPath string) error {
	var docs []docEntry
	for id := start; id < end; id++ {
		total, counts, err := countfile.Read(filepath.Join(preIndDir, strconv.Itoa(id)))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("partialindex: reading doc %d: %w", id, err)
		}
		docs = append(docs, docEntry{docID: id, total: total, counts: counts})
	}

	if err := writeBucketCounts(partialCountsPath, docs); err != nil {
		return err
	}
	return writeBucketIndex(partialIndexPath, docs)
}

func writeBucketCounts(path string, docs []docEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("partialindex: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, d := range docs {
		if _, err := fmt.Fprintf(w, "%d: %d\n", d.docID, d.total); err != nil {
			return fmt.Errorf("partialindex: writing counts to %s: %w", path, err)
		}
	}
	return w.Flush()
}

// termHeapItem tracks one document's current position in its own
// (already term-sorted) count slice, for the k-way merge below.
type termHeapItem struct {
	docIdx int
	term   string
}

type termHeap struct {
	docs  []docEntry
	items []termHeapItem
}

func (h *termHeap) Len() int { return len(h.items) }
func (h *termHeap) Less(i, j int) bool {
	if h.items[i].term != h.items[j].term {
		return h.items[i].term < h.items[j].term
	}
	return h.docs[h.items[i].docIdx].docID < h.docs[h.items[j].docIdx].docID
}
func (h *termHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *termHeap) Push(x interface{}) { h.items = append(h.items, x.(termHeapItem)) }
func (h *termHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	it := old[n-1]
	h.items = old[:n-1]
	return it
}

func writeBucketIndex(path string, docs []docEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("partialindex: creating %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	pos := make([]int, len(docs))
	h := &termHeap{docs: docs}
	for i, d := range docs {
		if len(d.counts) > 0 {
			heap.Push(h, termHeapItem{docIdx: i, term: d.counts[0].Term})
		}
	}

	for h.Len() > 0 {
		term := h.items[0].term
		var postings []Posting
		for h.Len() > 0 && h.items[0].term == term {
			it := heap.Pop(h).(termHeapItem)
			d := &docs[it.docIdx]
			tc := d.counts[pos[it.docIdx]]
			postings = append(postings, Posting{DocID: uint32(d.docID), Count: tc.Count})
			pos[it.docIdx]++
			if pos[it.docIdx] < len(d.counts) {
				heap.Push(h, termHeapItem{docIdx: it.docIdx, term: d.counts[pos[it.docIdx]].Term})
			}
		}
		sort.Slice(postings, func(i, j int) bool { return postings[i].DocID < postings[j].DocID })
		if err := WriteLine(w, term, postings); err != nil {
			return fmt.Errorf("partialindex: writing %s: %w", path, err)
		}
	}

	return w.Flush()
}

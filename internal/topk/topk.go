// Package topk implements the bounded top-k result structure (C11): a
// fixed-capacity min-heap keyed by (score, doc-id) that keeps only the
// k highest-ranked entries seen so far. Modeled on the original query
// engine's PriorityQueue — push while under capacity, otherwise
// push-then-pop the new minimum — reimplemented over container/heap.
package topk

import "container/heap"

// Entry is one scored document. Ties on Score break by DocID: a higher
// doc-id outranks a lower one.
type Entry struct {
	Score float64
	DocID uint32
}

func less(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.DocID < b.DocID
}

type minHeap []Entry

func (h minHeap) Len() int            { return len(h) }
func (h minHeap) Less(i, j int) bool  { return less(h[i], h[j]) }
func (h minHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x interface{}) { *h = append(*h, x.(Entry)) }
func (h *minHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// BoundedTopK retains at most K entries, the K with the largest
// (score, doc-id) key seen via Insert.
type BoundedTopK struct {
	capacity int
	h        minHeap
}

// New creates a BoundedTopK with the given fixed capacity.
func New(capacity int) *BoundedTopK {
	return &BoundedTopK{capacity: capacity, h: make(minHeap, 0, capacity)}
}

// Insert adds e if there is still room, or if e outranks the current
// minimum entry, displacing it. It reports the displaced entry, if any.
func (t *BoundedTopK) Insert(e Entry) (displaced Entry, evicted bool) {
	if t.h.Len() < t.capacity {
		heap.Push(&t.h, e)
		return Entry{}, false
	}
	if less(t.h[0], e) {
		displaced = t.h[0]
		t.h[0] = e
		heap.Fix(&t.h, 0)
		return displaced, true
	}
	return Entry{}, false
}

// Len returns the number of entries currently retained.
func (t *BoundedTopK) Len() int { return t.h.Len() }

// Entries drains a snapshot of the retained entries in descending
// (score, doc-id) order, leaving the BoundedTopK itself untouched.
func (t *BoundedTopK) Entries() []Entry {
	snapshot := make(minHeap, len(t.h))
	copy(snapshot, t.h)

	result := make([]Entry, 0, len(snapshot))
	for snapshot.Len() > 0 {
		result = append(result, heap.Pop(&snapshot).(Entry))
	}
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}

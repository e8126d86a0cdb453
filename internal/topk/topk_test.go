package topk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertUnderCapacityNeverEvicts(t *testing.T) {
	k := New(3)
	_, evicted := k.Insert(Entry{Score: 1.0, DocID: 0})
	assert.False(t, evicted)
	_, evicted = k.Insert(Entry{Score: 2.0, DocID: 1})
	assert.False(t, evicted)
	assert.Equal(t, 2, k.Len())
}

func TestInsertAtCapacityEvictsLowestScore(t *testing.T) {
	k := New(2)
	k.Insert(Entry{Score: 1.0, DocID: 0})
	k.Insert(Entry{Score: 2.0, DocID: 1})

	displaced, evicted := k.Insert(Entry{Score: 3.0, DocID: 2})
	assert.True(t, evicted)
	assert.Equal(t, Entry{Score: 1.0, DocID: 0}, displaced)
	assert.Equal(t, 2, k.Len())
}

func TestInsertBelowMinimumIsDropped(t *testing.T) {
	k := New(2)
	k.Insert(Entry{Score: 1.0, DocID: 0})
	k.Insert(Entry{Score: 2.0, DocID: 1})

	_, evicted := k.Insert(Entry{Score: 0.5, DocID: 2})
	assert.False(t, evicted)
	assert.Equal(t, 2, k.Len())
}

func TestTieBreaksByHigherDocID(t *testing.T) {
	k := New(1)
	k.Insert(Entry{Score: 1.0, DocID: 5})
	displaced, evicted := k.Insert(Entry{Score: 1.0, DocID: 9})
	assert.True(t, evicted)
	assert.Equal(t, uint32(5), displaced.DocID)

	entries := k.Entries()
	assert.Equal(t, uint32(9), entries[0].DocID)
}

func TestEntriesDescendingOrder(t *testing.T) {
	k := New(10)
	for _, e := range []Entry{{Score: 1, DocID: 0}, {Score: 3, DocID: 1}, {Score: 2, DocID: 2}} {
		k.Insert(e)
	}

	entries := k.Entries()
	assert.Equal(t, []Entry{{Score: 3, DocID: 1}, {Score: 2, DocID: 2}, {Score: 1, DocID: 0}}, entries)
}

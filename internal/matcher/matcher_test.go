package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/webwarcindex/internal/partialindex"
)

func TestMatchIntersectsPostings(t *testing.T) {
	// doc 0: "gato gato", doc 1: "gato cachorro"
	gato := TermPostings{Term: "gat", Postings: []partialindex.Posting{{DocID: 0, Count: 2}, {DocID: 1, Count: 1}}}
	cachorro := TermPostings{Term: "cachorr", Postings: []partialindex.Posting{{DocID: 1, Count: 1}}}

	onlyGato := Match([]TermPostings{gato})
	assert.Len(t, onlyGato, 2)

	both := Match([]TermPostings{gato, cachorro})
	assert.Len(t, both, 1)
	assert.Equal(t, uint32(1), both[0].DocID)
	assert.Equal(t, []int{1, 1}, both[0].Counts)
}

func TestMatchEmptyTermsMatchesNothing(t *testing.T) {
	assert.Nil(t, Match(nil))
}

func TestMatchMissingTermMatchesNothing(t *testing.T) {
	gato := TermPostings{Term: "gat", Postings: []partialindex.Posting{{DocID: 0, Count: 2}}}
	missing := TermPostings{Term: "nope", Postings: nil}
	assert.Nil(t, Match([]TermPostings{gato, missing}))
}

func TestMatchOrdersByShortestListFirstButPreservesInputOrderInCounts(t *testing.T) {
	long := TermPostings{Term: "a", Postings: []partialindex.Posting{
		{DocID: 0, Count: 1}, {DocID: 1, Count: 1}, {DocID: 2, Count: 1},
	}}
	short := TermPostings{Term: "b", Postings: []partialindex.Posting{{DocID: 2, Count: 5}}}

	matches := Match([]TermPostings{long, short})
	if assert.Len(t, matches, 1) {
		assert.Equal(t, uint32(2), matches[0].DocID)
		assert.Equal(t, []int{1, 5}, matches[0].Counts)
	}
}

// Package matcher implements conjunctive (AND) document-at-a-time
// matching over a query's posting lists (C10's matching half). Rather
// than scanning the full doc-id universe, it iterates the shortest
// posting list and galloping-skips into the others via binary search —
// the REDESIGN FLAG's recommended O(|shortest| · log|longest|)
// implementation of the same observable result.
package matcher

import (
	"sort"

	"github.com/gcbaptista/webwarcindex/internal/partialindex"
)

// TermPostings is one query term's posting list, already sorted
// ascending by doc-id (as produced by the final index).
type TermPostings struct {
	Term     string
	Postings []partialindex.Posting
}

// DocMatch is one document that satisfied every query term, carrying
// that term's count in the same order as the terms given to Match.
type DocMatch struct {
	DocID  uint32
	Counts []int
}

// Match returns every document whose per-term posting lists all
// contain that doc-id. A query with zero terms, or any term with an
// empty posting list, matches nothing.
func Match(terms []TermPostings) []DocMatch {
	if len(terms) == 0 {
		return nil
	}
	for _, t := range terms {
		if len(t.Postings) == 0 {
			return nil
		}
	}

	order := make([]int, len(terms))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return len(terms[order[i]].Postings) < len(terms[order[j]].Postings)
	})

	shortest := terms[order[0]].Postings
	var matches []DocMatch

candidate:
	for _, p := range shortest {
		counts := make([]int, len(terms))
		counts[order[0]] = p.Count

		for k := 1; k < len(order); k++ {
			idx := order[k]
			count, found := gallopFind(terms[idx].Postings, p.DocID)
			if !found {
				continue candidate
			}
			counts[idx] = count
		}
		matches = append(matches, DocMatch{DocID: p.DocID, Counts: counts})
	}
	return matches
}

// gallopFind binary-searches postings (ascending by DocID) for docID.
func gallopFind(postings []partialindex.Posting, docID uint32) (int, bool) {
	i := sort.Search(len(postings), func(i int) bool { return postings[i].DocID >= docID })
	if i < len(postings) && postings[i].DocID == docID {
		return postings[i].Count, true
	}
	return 0, false
}

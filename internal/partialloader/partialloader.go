// Package partialloader fetches only the posting lists a query actually
// needs (C8). It is a thin convenience layer over a term directory: for
// a set of query terms it seeks straight to each one's line instead of
// scanning the final index end to end.
package partialloader

import (
	"fmt"

	"github.com/gcbaptista/webwarcindex/internal/partialindex"
	"github.com/gcbaptista/webwarcindex/internal/termdir"
)

// TermPostings holds one query term's posting list, or absence from the
// index entirely (Found == false means the term has zero document
// frequency and any query requiring it cannot match).
type TermPostings struct {
	Term     string
	Postings []partialindex.Posting
	Found    bool
}

// Fetch loads the posting list for every term in terms, deduplicating
// repeated terms so each distinct term is only read once.
func Fetch(dir *termdir.Directory, terms []string) ([]TermPostings, error) {
	seen := make(map[string]bool, len(terms))
	result := make([]TermPostings, 0, len(terms))

	for _, term := range terms {
		if seen[term] {
			continue
		}
		seen[term] = true

		postings, found, err := dir.ReadPostings(term)
		if err != nil {
			return nil, fmt.Errorf("partialloader: fetching %q: %w", term, err)
		}
		result = append(result, TermPostings{Term: term, Postings: postings, Found: found})
	}
	return result, nil
}

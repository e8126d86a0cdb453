// Package searchengine composes C7 through C11 into the single
// per-query call both the batch CLI and the HTTP front-end share: load
// the term directory once, then for each query run preprocessing,
// selective posting-list fetch, conjunctive matching, scoring, and
// bounded top-k ranking.
package searchengine

import (
	"fmt"

	"github.com/gcbaptista/webwarcindex/internal/docstats"
	"github.com/gcbaptista/webwarcindex/internal/matcher"
	"github.com/gcbaptista/webwarcindex/internal/partialloader"
	"github.com/gcbaptista/webwarcindex/internal/query"
	"github.com/gcbaptista/webwarcindex/internal/ranking"
	"github.com/gcbaptista/webwarcindex/internal/termdir"
	"github.com/gcbaptista/webwarcindex/internal/topk"
	"github.com/gcbaptista/webwarcindex/internal/urlindex"
)

const topKCapacity = 10

// Engine holds everything a query needs that can be loaded once and
// reused across many queries: the term directory, corpus-wide document
// stats, and the doc-id -> URL mapping.
type Engine struct {
	terms *termdir.Directory
	stats *docstats.Stats
	urls  *urlindex.Index
	calc  *ranking.Calculator
}

// Open loads the final index's term directory (optionally via a gob
// sidecar cache), the final count file, and the url index.
func Open(indexPath, countPath, urlIndexPath, cachePath string) (*Engine, error) {
	terms, err := termdir.Load(indexPath, cachePath)
	if err != nil {
		return nil, fmt.Errorf("searchengine: loading term directory: %w", err)
	}
	stats, err := docstats.Load(countPath)
	if err != nil {
		return nil, fmt.Errorf("searchengine: loading doc stats: %w", err)
	}
	urls, err := urlindex.Load(urlIndexPath)
	if err != nil {
		return nil, fmt.Errorf("searchengine: loading url index: %w", err)
	}

	return &Engine{terms: terms, stats: stats, urls: urls, calc: ranking.NewCalculator(stats)}, nil
}

// Result is one ranked document in a query's top-k.
type Result struct {
	DocID uint32  `json:"doc_id"`
	URL   string  `json:"url"`
	Score float64 `json:"score"`
}

// Search preprocesses raw, fetches its terms' posting lists, matches
// conjunctively, scores under fn, and returns up to 10 results in
// descending score order. A query with zero surviving terms, or whose
// terms fail to co-occur in any document, returns an empty result.
func (e *Engine) Search(raw string, fn ranking.Function) ([]Result, error) {
	terms := query.Terms(raw)
	if len(terms) == 0 {
		return nil, nil
	}

	fetched, err := partialloader.Fetch(e.terms, terms)
	if err != nil {
		return nil, fmt.Errorf("searchengine: fetching postings: %w", err)
	}

	termPostings := make([]matcher.TermPostings, len(fetched))
	docFreq := make(map[string]int, len(fetched))
	for i, tp := range fetched {
		termPostings[i] = matcher.TermPostings{Term: tp.Term, Postings: tp.Postings}
		docFreq[tp.Term] = len(tp.Postings)
	}

	matches := matcher.Match(termPostings)
	if len(matches) == 0 {
		return nil, nil
	}

	ranked := topk.New(topKCapacity)
	for _, m := range matches {
		stats := make([]ranking.TermStat, len(terms))
		for i, term := range terms {
			stats[i] = ranking.TermStat{Count: m.Counts[i], DocFreq: docFreq[term]}
		}
		score := e.calc.Score(fn, m.DocID, stats)
		ranked.Insert(topk.Entry{Score: score, DocID: m.DocID})
	}

	entries := ranked.Entries()
	results := make([]Result, len(entries))
	for i, entry := range entries {
		url, _ := e.urls.URL(entry.DocID)
		results[i] = Result{DocID: entry.DocID, URL: url, Score: entry.Score}
	}
	return results, nil
}

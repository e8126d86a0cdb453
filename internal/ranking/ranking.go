// Package ranking scores matched documents against a query under one
// of two ranking functions (C10's scoring half): TF-IDF and BM25.
// Generalized from the teacher's BM25Calculator, which derived IDF and
// document length from an in-memory document store; here both come
// from the on-disk doc-length stats loaded once at query startup.
package ranking

import (
	"math"

	"github.com/gcbaptista/webwarcindex/internal/docstats"
)

// Function names a selectable ranking function.
type Function string

const (
	TFIDF Function = "TFIDF"
	BM25  Function = "BM25"
)

// Valid reports whether fn is one of the known ranking functions.
func (fn Function) Valid() bool {
	return fn == TFIDF || fn == BM25
}

const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// TermStat carries one query term's per-document inputs into scoring:
// how many times the term occurs in the document, and how many
// documents in the whole corpus contain it at all.
type TermStat struct {
	Count   int
	DocFreq int
}

// Calculator scores a matched document under either ranking function,
// given the query's per-term stats for that document.
type Calculator struct {
	stats *docstats.Stats
}

// NewCalculator builds a Calculator over corpus-wide document stats.
func NewCalculator(stats *docstats.Stats) *Calculator {
	return &Calculator{stats: stats}
}

// Score computes a document's score under fn from its query term stats.
// A term with DocFreq == 0 contributes nothing (df=0 → idf=-∞, treated
// as exclusion rather than producing a non-finite score).
func (c *Calculator) Score(fn Function, docID uint32, terms []TermStat) float64 {
	if fn == BM25 {
		return c.bm25(docID, terms)
	}
	return c.tfidf(docID, terms)
}

func (c *Calculator) tfidf(docID uint32, terms []TermStat) float64 {
	total, ok := c.stats.TotalTokens(docID)
	if !ok || total == 0 {
		return 0
	}
	n := float64(c.stats.N())

	var score float64
	for _, ts := range terms {
		if ts.DocFreq == 0 {
			continue
		}
		tf := float64(ts.Count) / float64(total)
		idf := math.Log(n / float64(ts.DocFreq))
		score += tf * idf
	}
	return score
}

func (c *Calculator) bm25(docID uint32, terms []TermStat) float64 {
	total, ok := c.stats.TotalTokens(docID)
	if !ok || total == 0 {
		return 0
	}
	n := float64(c.stats.N())
	avgLen := c.stats.AvgLen()

	var score float64
	for _, ts := range terms {
		if ts.DocFreq == 0 {
			continue
		}
		df := float64(ts.DocFreq)
		idfBM := math.Log(((n-df+0.5)/(df+0.5))+1)

		tf := float64(ts.Count) / float64(total)
		lengthNorm := 1 - bm25B + bm25B*(float64(total)/avgLen)
		bm25TF := (tf * (bm25K1 + 1)) / (tf + bm25K1*lengthNorm)

		score += idfBM * bm25TF
	}
	return score
}

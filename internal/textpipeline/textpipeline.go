// Package textpipeline turns raw document or query text into a sorted
// term -> count table. It is the one place that encodes the normative
// token pipeline order used by both the index builder (C2) and the
// query engine (C9): tokenize, drop non-word tokens, drop stopwords on
// the surface form, stem, then sort and fold into counts.
package textpipeline

import (
	"fmt"
	"sort"

	"github.com/gcbaptista/webwarcindex/internal/htmltext"
	"github.com/gcbaptista/webwarcindex/internal/stem"
	"github.com/gcbaptista/webwarcindex/internal/stopwords"
	"github.com/gcbaptista/webwarcindex/internal/tokenizer"
)

// TermCount is one entry of a folded, term-sorted count table.
type TermCount struct {
	Term  string
	Count int
}

// Result is the outcome of running the pipeline over one document: the
// total number of raw word tokens seen (before any filtering — this is
// the document length used by ranking) and the filtered, stemmed,
// sorted term counts.
type Result struct {
	TotalTokens int
	Counts      []TermCount
}

// ProcessHTML decodes raw into text via htmltext.Extract and runs the
// pipeline over its visible text.
func ProcessHTML(raw []byte) (Result, error) {
	text, err := htmltext.Extract(raw)
	if err != nil {
		return Result{}, fmt.Errorf("textpipeline: extracting visible text: %w", err)
	}
	return Process(text), nil
}

// ProcessPlaintext runs the pipeline directly over raw, decoded bytes
// with no HTML stripping.
func ProcessPlaintext(raw []byte) Result {
	return Process(string(raw))
}

// Process runs the shared tokenize -> filter -> stopword-drop -> stem
// -> sort -> fold pipeline over already-decoded text. It is also the
// entry point the query pipeline (C9) uses for query preprocessing.
func Process(text string) Result {
	rawTokens := tokenizer.Words(text)
	total := len(rawTokens)

	stemmed := make([]string, 0, len(rawTokens))
	for _, tok := range rawTokens {
		if !tokenizer.IsWordToken(tok) {
			continue
		}
		if stopwords.Is(tok) {
			continue
		}
		stemmed = append(stemmed, stem.Word(tok))
	}
	sort.Strings(stemmed)

	counts := make([]TermCount, 0, len(stemmed))
	for _, t := range stemmed {
		if len(counts) > 0 && counts[len(counts)-1].Term == t {
			counts[len(counts)-1].Count++
			continue
		}
		counts = append(counts, TermCount{Term: t, Count: 1})
	}

	return Result{TotalTokens: total, Counts: counts}
}

// Terms returns just the deduplicated, stemmed term list from Process,
// in ascending order — the shape a query needs for matching.
func Terms(text string) []string {
	result := Process(text)
	terms := make([]string, len(result.Counts))
	for i, tc := range result.Counts {
		terms[i] = tc.Term
	}
	return terms
}

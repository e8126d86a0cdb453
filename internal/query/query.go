// Package query applies the query-side half of the text pipeline (C9):
// the same tokenize, word-filter, stopword-drop, and stem steps C2
// uses for documents, with no HTML stripping and no token-count
// output, producing the deduplicated, ascending term list a query
// matches against.
package query

import "github.com/gcbaptista/webwarcindex/internal/textpipeline"

// Terms preprocesses a raw query string into its stemmed term list.
func Terms(raw string) []string {
	return textpipeline.Terms(raw)
}

package textpipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessDropsStopwordsAndStems(t *testing.T) {
	result := Process("o gato e o cachorro correram")

	// "o", "e" are stopwords and dropped on their surface form.
	var terms []string
	for _, tc := range result.Counts {
		terms = append(terms, tc.Term)
	}
	assert.NotContains(t, terms, "o")
	assert.NotContains(t, terms, "e")
	assert.Equal(t, 6, result.TotalTokens)
}

func TestProcessDropsNonWordTokens(t *testing.T) {
	result := Process("item123 my_var 456 palavra")

	var terms []string
	for _, tc := range result.Counts {
		terms = append(terms, tc.Term)
	}
	assert.NotContains(t, terms, "item123")
	assert.NotContains(t, terms, "my_var")
	assert.NotContains(t, terms, "456")
}

func TestProcessFoldsDuplicateStems(t *testing.T) {
	result := Process("casa casas casa")

	// "casa" and "casas" should stem to the same term and be folded
	// into one entry with the combined count.
	assert.Len(t, result.Counts, 1)
	assert.Equal(t, 3, result.Counts[0].Count)
}

func TestProcessCountsSortedAscending(t *testing.T) {
	result := Process("zebra arara banana")
	for i := 1; i < len(result.Counts); i++ {
		assert.LessOrEqual(t, result.Counts[i-1].Term, result.Counts[i].Term)
	}
}

func TestProcessHTMLExtractsVisibleText(t *testing.T) {
	html := []byte(`<html><head><title>ignored titulo</title></head><body><script>ignore();</script><p>casa bonita</p></body></html>`)
	result, err := ProcessHTML(html)
	assert.NoError(t, err)

	var terms []string
	for _, tc := range result.Counts {
		terms = append(terms, tc.Term)
	}
	assert.NotContains(t, terms, "ignor")
	assert.NotContains(t, terms, "titul")
	assert.Contains(t, terms, "cas")
}

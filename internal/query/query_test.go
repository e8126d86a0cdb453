package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermsDropsStopwordsAndStems(t *testing.T) {
	terms := Terms("o gato e o cachorro")
	assert.NotContains(t, terms, "o")
	assert.NotContains(t, terms, "e")
	assert.Len(t, terms, 2)
}

func TestTermsOnlyStopwordsIsEmpty(t *testing.T) {
	terms := Terms("de a o")
	assert.Empty(t, terms)
}

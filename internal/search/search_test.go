package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/depot/internal/domain"
)

var inventory = []domain.Model{
	{ID: "llama3:8b", Name: "Llama 3 8B", Family: "Llama"},
	{ID: "llama3:70b", Name: "Llama 3 70B", Family: "Llama"},
	{ID: "phi3:mini", Name: "Phi-3 Mini", Family: "Phi"},
	{ID: "custom-notes", Name: "Notes Finetune", Family: ""},
}

func TestEmptyQueryReturnsEverything(t *testing.T) {
	results := FilterModels("  ", inventory)
	require.Len(t, results, len(inventory))
	assert.Equal(t, "llama3:8b", results[0].Model.ID, "empty query preserves inventory order")
}

func TestFilterByName(t *testing.T) {
	results := FilterModels("phi", inventory)
	require.Len(t, results, 1)
	assert.Equal(t, "phi3:mini", results[0].Model.ID)
	assert.NotEmpty(t, results[0].MatchedIndexes)
}

func TestFilterMatchesFamily(t *testing.T) {
	results := FilterModels("llama", inventory)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, "Llama", r.Model.Family)
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	results := FilterModels("LLAMA", inventory)
	assert.Len(t, results, 2)
}

func TestGenericFamilyFallback(t *testing.T) {
	// Models without a family classify as General and match on it.
	results := FilterModels("general", inventory)
	require.Len(t, results, 1)
	assert.Equal(t, "custom-notes", results[0].Model.ID)
}

func TestNoMatches(t *testing.T) {
	assert.Empty(t, FilterModels("mixtral", inventory))
}

func TestBetterMatchRanksFirst(t *testing.T) {
	results := FilterModels("notes", inventory)
	require.NotEmpty(t, results)
	assert.Equal(t, "custom-notes", results[0].Model.ID)
}

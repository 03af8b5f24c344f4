// Package search provides fuzzy filtering over the model inventory for
// the panel's filter view.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"

	"github.com/mmcdole/depot/internal/domain"
)

// Result is a filter match with metadata for highlighting
type Result struct {
	Model          domain.Model
	MatchedIndexes []int // Character positions that matched in the name
	Score          int   // Match score (higher is better)
}

// modelIndex implements sahilm/fuzzy.Source for zero-allocation matching
type modelIndex struct {
	names []string
}

func (idx modelIndex) String(i int) string { return idx.names[i] }
func (idx modelIndex) Len() int            { return len(idx.names) }

// FilterModels returns models matching query, best match first. Matching
// runs over display names with a fold-insensitive pre-check across name
// and family, so "llama" finds family members whose name doesn't carry
// the word.
func FilterModels(query string, models []domain.Model) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		results := make([]Result, len(models))
		for i, m := range models {
			results[i] = Result{Model: m}
		}
		return results
	}

	// Cheap membership pre-filter over name + family
	candidates := make([]domain.Model, 0, len(models))
	for _, m := range models {
		haystack := m.Name + " " + m.DisplayFamily()
		if fuzzy.MatchNormalizedFold(query, haystack) {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	// Ranked matching over names
	names := make([]string, len(candidates))
	for i, m := range candidates {
		names[i] = strings.ToLower(m.Name)
	}
	matches := sahilm.FindFrom(strings.ToLower(query), modelIndex{names: names})

	results := make([]Result, 0, len(candidates))
	seen := make(map[int]bool, len(matches))
	for _, match := range matches {
		seen[match.Index] = true
		results = append(results, Result{
			Model:          candidates[match.Index],
			MatchedIndexes: match.MatchedIndexes,
			Score:          match.Score,
		})
	}

	// Family-only matches carry no name positions; keep them after ranked hits
	for i, m := range candidates {
		if !seen[i] {
			results = append(results, Result{Model: m, Score: -1})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

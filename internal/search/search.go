// Package search ranks stored facts by lexical word overlap with a query.
// This is keyword matching, not semantic similarity.
package search

import (
	"sort"
	"strings"

	"github.com/ONESO-goat/CODEX/internal/memory"
)

const maxResults = 3

type Result struct {
	Fact      string
	Data      *memory.FactRecord
	Relevance float64
}

// Facts returns up to three facts ranked by the share of query words
// that appear in the fact label. An empty query yields no results rather
// than dividing by zero. Ties keep label order, so the ranking is stable.
func Facts(query string, facts map[string]*memory.FactRecord) []Result {
	queryWords := wordSet(query)
	if len(queryWords) == 0 {
		return nil
	}

	labels := make([]string, 0, len(facts))
	for label := range facts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var results []Result
	for _, label := range labels {
		overlap := 0
		for word := range wordSet(label) {
			if queryWords[word] {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}

		results = append(results, Result{
			Fact:      label,
			Data:      facts[label],
			Relevance: float64(overlap) / float64(len(queryWords)),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}

	return results
}

func wordSet(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		words[w] = true
	}
	return words
}

package parser

import (
	"sort"
	"strings"
	"sync"

	"gridshell/internal/data/embedded"
	"gridshell/internal/logger"
	"gridshell/pkg/gridtypes"
)

var (
	catalogOnce sync.Once
	catalog     []gridtypes.CommandSuggestion
)

// commandCatalog returns the canonical command catalogue, loading it from
// the embedded data on first use. A broken embed is a build defect, so a
// load failure logs and yields an empty catalogue rather than failing every
// parse.
func commandCatalog() []gridtypes.CommandSuggestion {
	catalogOnce.Do(func() {
		loaded, err := embedded.LoadCommandCatalog()
		if err != nil {
			logger.Error("failed to load command catalogue", "error", err)
			return
		}
		catalog = loaded
	})
	return catalog
}

// Suggest returns the canonical command templates matching a partial input.
// Matching is a case-insensitive substring test over the template, its
// description, and its example. An empty partial returns the full
// catalogue; no match returns an empty slice.
func Suggest(partial string) []gridtypes.CommandSuggestion {
	entries := commandCatalog()
	partial = strings.ToLower(strings.TrimSpace(partial))
	if partial == "" {
		result := make([]gridtypes.CommandSuggestion, len(entries))
		copy(result, entries)
		return result
	}

	result := []gridtypes.CommandSuggestion{}
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Command), partial) ||
			strings.Contains(strings.ToLower(entry.Description), partial) ||
			strings.Contains(strings.ToLower(entry.Example), partial) {
			result = append(result, entry)
		}
	}
	return result
}

// rankSuggestions scores catalogue entries by word overlap with an
// unrecognized command and returns up to limit templates, best first.
// Entries with no overlapping words are excluded.
func rankSuggestions(command string, limit int) []string {
	words := strings.Fields(strings.ToLower(command))
	if len(words) == 0 {
		return nil
	}

	type scored struct {
		template string
		score    int
		index    int
	}
	var candidates []scored
	for i, entry := range commandCatalog() {
		haystack := strings.ToLower(entry.Command + " " + entry.Description + " " + entry.Example)
		score := 0
		for _, word := range words {
			if strings.Contains(haystack, word) {
				score++
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{template: entry.Command, score: score, index: i})
		}
	}

	// Stable ranking: higher score first, catalogue order breaks ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].index < candidates[j].index
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	result := make([]string, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, c.template)
	}
	return result
}

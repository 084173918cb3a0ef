package engine

import (
	"github.com/clinicops/visitsplit/internal/model"
)

// Summarize tallies a run's already-decided classifications. Strictly
// arithmetic: no thresholds, no decisions.
func Summarize(res Result, groups model.Groups) model.SummaryStats {
	stats := model.SummaryStats{
		TotalRows:   len(res.Matches),
		PerProvider: make(map[string]int, len(groups.Providers)),
		EmptyInput:  res.EmptyInput,
	}

	for _, m := range res.Matches {
		switch m.Confidence {
		case model.ConfidenceExact:
			stats.MatchedExact++
		case model.ConfidenceFuzzy:
			stats.MatchedFuzzy++
		case model.ConfidenceUnmatched:
			stats.Unmatched++
			if m.Ambiguous {
				stats.Ambiguous++
			}
		}
	}

	for key, g := range groups.Providers {
		stats.PerProvider[key] = len(g.Records)
	}
	stats.UnmappedRows = len(groups.Unmapped.Records)

	return stats
}

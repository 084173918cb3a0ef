package model

import "fmt"

// SummaryStats holds the match-quality tallies for one processing run.
// Derived, recomputed each run, never persisted.
type SummaryStats struct {
	TotalRows    int
	MatchedExact int
	MatchedFuzzy int
	Unmatched    int
	// Ambiguous counts unmatched rows that were downgraded because multiple
	// roster candidates tied near the threshold. Subset of Unmatched.
	Ambiguous    int
	UnmappedRows int
	PerProvider  map[string]int
	// EmptyInput is set when the appointment input had no rows at all.
	EmptyInput bool
}

// Matched returns the number of rows paired with a roster entry.
func (s SummaryStats) Matched() int {
	return s.MatchedExact + s.MatchedFuzzy
}

// MatchRate returns the matched fraction in percent, 0 for an empty run.
func (s SummaryStats) MatchRate() float64 {
	if s.TotalRows == 0 {
		return 0
	}
	return 100 * float64(s.Matched()) / float64(s.TotalRows)
}

// Validate checks the tally invariant: every row lands in exactly one
// confidence tier.
func (s SummaryStats) Validate() error {
	if got := s.MatchedExact + s.MatchedFuzzy + s.Unmatched; got != s.TotalRows {
		return fmt.Errorf("tier counts sum to %d, want total %d", got, s.TotalRows)
	}
	if s.Ambiguous > s.Unmatched {
		return fmt.Errorf("ambiguous count %d exceeds unmatched count %d", s.Ambiguous, s.Unmatched)
	}
	return nil
}

// Diagnostics carries the data-quality findings of a run. None of these are
// fatal; the run always completes.
type Diagnostics struct {
	// QuarantinedRoster lists roster rows whose name could not be decomposed
	// into surname and given parts.
	QuarantinedRoster []RosterEntry
	// DuplicateRosterKeys lists normalized keys that appeared on more than
	// one roster row. The first occurrence wins.
	DuplicateRosterKeys []string
}

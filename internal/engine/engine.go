// Package engine implements the reconciliation core: matching appointment
// rows against the patient roster, partitioning them by provider, and
// tallying match quality.
package engine

import (
	"log/slog"

	"github.com/clinicops/visitsplit/internal/match"
	"github.com/clinicops/visitsplit/internal/model"
	"github.com/clinicops/visitsplit/internal/normalize"
)

// Result is the full output of one reconciliation pass.
type Result struct {
	// Matches holds one entry per appointment row, in schedule order.
	Matches     []model.MatchResult
	Diagnostics model.Diagnostics
	// EmptyInput is set when the appointment input had no rows. Not an
	// error; the caller decides whether to treat it as fatal.
	EmptyInput bool
}

// Reconciler matches appointment rows against a roster. Reconcile is a pure
// function of its inputs so identical runs are reproducible.
type Reconciler struct {
	matcher *match.Matcher
	// OnProgress, when set, is called after each appointment row. Used by
	// the CLI to drive a progress bar; it must not mutate inputs.
	OnProgress func(done, total int)
}

// New creates a reconciler with the given matcher tuning.
func New(cfg match.Config) *Reconciler {
	return &Reconciler{matcher: match.New(cfg)}
}

// Reconcile produces one MatchResult per appointment row, order preserved.
// Data-quality problems never abort the run: undecomposable roster rows are
// quarantined, duplicate roster keys are first-wins with a diagnostic, and
// rows with empty patient names are unmatched without invoking the matcher.
func (r *Reconciler) Reconcile(appointments []model.AppointmentRecord, roster []model.RosterEntry) Result {
	candidates, diags := indexRoster(roster)

	res := Result{
		Matches:     make([]model.MatchResult, 0, len(appointments)),
		Diagnostics: diags,
		EmptyInput:  len(appointments) == 0,
	}

	for i, appt := range appointments {
		res.Matches = append(res.Matches, r.reconcileOne(appt, candidates))
		if r.OnProgress != nil {
			r.OnProgress(i+1, len(appointments))
		}
	}
	return res
}

func (r *Reconciler) reconcileOne(appt model.AppointmentRecord, candidates []match.Candidate) model.MatchResult {
	result := model.MatchResult{
		Appointment: appt,
		Confidence:  model.ConfidenceUnmatched,
	}

	name := normalize.ParseName(appt.RawPatientName)
	result.OrderInferred = name.OrderInferred
	if name.IsEmpty() {
		// Degenerate zero-length comparisons are never meaningful.
		return result
	}

	outcome := r.matcher.Best(name, candidates)
	result.Confidence = outcome.Confidence
	result.Score = outcome.Score
	result.Ambiguous = outcome.Ambiguous
	result.Roster = outcome.Entry
	return result
}

// indexRoster normalizes roster entries into matcher candidates.
// Undecomposable names are quarantined; entries whose normalized key was
// already seen are dropped first-wins and reported as duplicates.
func indexRoster(roster []model.RosterEntry) ([]match.Candidate, model.Diagnostics) {
	var diags model.Diagnostics
	candidates := make([]match.Candidate, 0, len(roster))
	seen := make(map[string]bool, len(roster))

	for _, entry := range roster {
		name := normalize.ParseName(entry.RawName)
		if !name.Complete() {
			slog.Warn("quarantined roster row: name not decomposable",
				"raw_name", entry.RawName)
			diags.QuarantinedRoster = append(diags.QuarantinedRoster, entry)
			continue
		}
		key := name.Key()
		if seen[key] {
			slog.Warn("duplicate roster key, first occurrence wins",
				"key", key, "raw_name", entry.RawName)
			diags.DuplicateRosterKeys = append(diags.DuplicateRosterKeys, key)
			continue
		}
		seen[key] = true
		candidates = append(candidates, match.Candidate{Entry: entry, Name: name})
	}
	return candidates, diags
}

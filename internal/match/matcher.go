// Package match scores similarity between normalized patient names and picks
// the best roster candidate under an explicit threshold and tie-break policy.
package match

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/clinicops/visitsplit/internal/model"
	"github.com/clinicops/visitsplit/internal/normalize"
)

// Config holds the matcher's tuning knobs. Passed explicitly so runs are
// reproducible with varied thresholds.
type Config struct {
	// Threshold is the minimum combined score a fuzzy match must reach.
	Threshold float64
	// TieEpsilon is the score window within which two candidates are
	// considered indistinguishable.
	TieEpsilon float64
	// SurnameWeight is the surname share of the combined score. Surname
	// mismatches are more disqualifying than given-name mismatches.
	SurnameWeight float64
}

// DefaultConfig returns the default matcher tuning.
func DefaultConfig() Config {
	return Config{
		Threshold:     0.85,
		TieEpsilon:    0.02,
		SurnameWeight: 0.7,
	}
}

// Candidate is a roster entry paired with its precomputed name key.
type Candidate struct {
	Entry model.RosterEntry
	Name  normalize.Name
}

// Outcome is the matcher's decision for one target name.
type Outcome struct {
	Entry      *model.RosterEntry
	Confidence model.Confidence
	Score      float64
	Ambiguous  bool
}

// Matcher scores a target name against roster candidates. The candidate
// slice is prepared by the caller, so a blocking or prefix index can narrow
// it without changing this contract.
type Matcher struct {
	cfg Config
}

// New creates a matcher with the given tuning.
func New(cfg Config) *Matcher {
	return &Matcher{cfg: cfg}
}

// Best picks the winning candidate for target, or none.
//
// Identical surname and given keys win outright as an exact match. Otherwise
// the highest combined score wins as a fuzzy match when it clears the
// threshold and is the unique maximum; candidates tied within TieEpsilon of
// the maximum downgrade the row to unmatched with the ambiguous flag set.
func (m *Matcher) Best(target normalize.Name, candidates []Candidate) Outcome {
	if target.IsEmpty() || len(candidates) == 0 {
		return Outcome{Confidence: model.ConfidenceUnmatched}
	}

	best := -1.0
	bestIdx := -1
	contenders := 0
	scores := make([]float64, len(candidates))

	for i := range candidates {
		c := &candidates[i]
		if c.Name.Surname == target.Surname && c.Name.Given == target.Given {
			return Outcome{
				Entry:      &c.Entry,
				Confidence: model.ConfidenceExact,
				Score:      1.0,
			}
		}
		scores[i] = m.score(target, c.Name)
		if scores[i] > best {
			best = scores[i]
			bestIdx = i
		}
	}

	if best < m.cfg.Threshold {
		return Outcome{Confidence: model.ConfidenceUnmatched, Score: best}
	}

	for _, s := range scores {
		if s >= best-m.cfg.TieEpsilon {
			contenders++
		}
	}
	if contenders > 1 {
		// Never silently pick one of several near-equal candidates.
		return Outcome{
			Confidence: model.ConfidenceUnmatched,
			Score:      best,
			Ambiguous:  true,
		}
	}

	return Outcome{
		Entry:      &candidates[bestIdx].Entry,
		Confidence: model.ConfidenceFuzzy,
		Score:      best,
	}
}

// score combines per-part similarity as a weighted average.
func (m *Matcher) score(a, b normalize.Name) float64 {
	s := similarity(a.Surname, b.Surname)
	g := givenSimilarity(a.Given, b.Given)
	return m.cfg.SurnameWeight*s + (1-m.cfg.SurnameWeight)*g
}

// givenSimilarity treats one given key prefixing the other as a full match:
// schedules often carry "Jo" or "Joseph" for a roster "Jos".
func givenSimilarity(a, b string) float64 {
	if a != "" && b != "" && (strings.HasPrefix(a, b) || strings.HasPrefix(b, a)) {
		return 1.0
	}
	return similarity(a, b)
}

// similarity is the Levenshtein ratio of two strings in [0,1].
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	d := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(d)/float64(longest)
}

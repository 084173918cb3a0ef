package model

import "fmt"

// Confidence indicates how an appointment row was matched to the roster.
type Confidence string

// Confidence tier constants.
const (
	// ConfidenceExact means the normalized name keys were identical.
	ConfidenceExact Confidence = "EXACT"
	// ConfidenceFuzzy means the match cleared the similarity threshold.
	ConfidenceFuzzy Confidence = "FUZZY"
	// ConfidenceUnmatched means no roster entry was accepted.
	ConfidenceUnmatched Confidence = "UNMATCHED"
)

// MatchResult pairs an appointment row with its roster match, if any.
// Created by the reconciler, read-only downstream.
type MatchResult struct {
	Appointment AppointmentRecord
	Roster      *RosterEntry
	Confidence  Confidence
	Score       float64
	// Ambiguous is set when two or more roster candidates were statistically
	// indistinguishable and the row was downgraded to unmatched.
	Ambiguous bool
	// OrderInferred is set when the appointment name carried no comma and
	// surname position was guessed.
	OrderInferred bool
}

// Matched reports whether the row was paired with a roster entry.
func (m MatchResult) Matched() bool {
	return m.Confidence == ConfidenceExact || m.Confidence == ConfidenceFuzzy
}

// Validate checks internal consistency of a match result.
func (m MatchResult) Validate() error {
	if m.Score < 0 || m.Score > 1 {
		return fmt.Errorf("score must be between 0.0 and 1.0, got %.2f", m.Score)
	}
	switch m.Confidence {
	case ConfidenceExact, ConfidenceFuzzy:
		if m.Roster == nil {
			return fmt.Errorf("%s result requires a roster entry", m.Confidence)
		}
		if m.Ambiguous {
			return fmt.Errorf("%s result cannot be ambiguous", m.Confidence)
		}
	case ConfidenceUnmatched:
		if m.Roster != nil {
			return fmt.Errorf("unmatched result cannot carry a roster entry")
		}
	default:
		return fmt.Errorf("unknown confidence tier %q", m.Confidence)
	}
	return nil
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicops/visitsplit/internal/match"
	"github.com/clinicops/visitsplit/internal/model"
)

func TestSummarizeCountsTiers(t *testing.T) {
	res := Result{
		Matches: []model.MatchResult{
			{Confidence: model.ConfidenceExact},
			{Confidence: model.ConfidenceExact},
			{Confidence: model.ConfidenceFuzzy},
			{Confidence: model.ConfidenceUnmatched},
			{Confidence: model.ConfidenceUnmatched, Ambiguous: true},
		},
	}
	groups := model.Groups{
		Providers: map[string]*model.ProviderGroup{
			"Lee":   {Provider: "Lee", Records: res.Matches[:3]},
			"Patel": {Provider: "Patel", Records: nil},
		},
		Unmapped: &model.ProviderGroup{Provider: model.UnmappedKey, Records: res.Matches[3:]},
	}

	stats := Summarize(res, groups)

	assert.Equal(t, 5, stats.TotalRows)
	assert.Equal(t, 2, stats.MatchedExact)
	assert.Equal(t, 1, stats.MatchedFuzzy)
	assert.Equal(t, 2, stats.Unmatched)
	assert.Equal(t, 1, stats.Ambiguous)
	assert.Equal(t, 2, stats.UnmappedRows)
	assert.Equal(t, 3, stats.PerProvider["Lee"])
	assert.Equal(t, 0, stats.PerProvider["Patel"])
	require.NoError(t, stats.Validate())
}

func TestSummarizeEmptyRun(t *testing.T) {
	res := Result{EmptyInput: true}
	groups := model.Groups{
		Providers: map[string]*model.ProviderGroup{},
		Unmapped:  &model.ProviderGroup{Provider: model.UnmappedKey},
	}

	stats := Summarize(res, groups)

	assert.True(t, stats.EmptyInput)
	assert.Zero(t, stats.TotalRows)
	assert.Zero(t, stats.Matched())
	assert.Zero(t, stats.MatchRate())
	require.NoError(t, stats.Validate())
}

// End-to-end over the whole core: reconcile, group, summarize, and check the
// tier invariant holds.
func TestPipelineInvariant(t *testing.T) {
	r := New(match.DefaultConfig())

	roster := []model.RosterEntry{
		{RawName: "Smith, John", Code: "A1", Insurance: "Acme"},
		{RawName: "Smith, Jhon", Code: "A2", Insurance: "Acme"},
		{RawName: "Jones, David", Code: "B1", Insurance: "Umbrella"},
	}
	appointments := []model.AppointmentRecord{
		appt("John Smith", "Dr. Lee"),   // exact, despite the Jhon near-twin
		appt("David Jones", "Dr. Lee"),  // exact
		appt("Dave Jones", "Dr. Patel"), // fuzzy
		appt("Jon Smith", "Dr. Lee"),    // ambiguous tie between John and Jhon
		appt("Stranger Danger", "Dr. Unknown"),
		appt("", "Dr. Lee"),
	}
	mapping := model.ProviderMapping{
		"Dr. Lee":   "Lee",
		"Dr. Patel": "Patel",
	}

	res := r.Reconcile(appointments, roster)
	groups := Group(res.Matches, mapping)
	stats := Summarize(res, groups)

	require.NoError(t, stats.Validate())
	assert.Equal(t, len(appointments), stats.TotalRows)
	assert.Equal(t, len(appointments), groups.TotalRecords())
	assert.Equal(t, 2, stats.MatchedExact)
	assert.Equal(t, 1, stats.MatchedFuzzy)
	assert.Equal(t, 3, stats.Unmatched)
	assert.Equal(t, 1, stats.Ambiguous)
	assert.GreaterOrEqual(t, stats.UnmappedRows, 1)
	assert.NotContains(t, stats.PerProvider, "Unknown")
}

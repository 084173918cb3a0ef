package report

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/clinicops/visitsplit/internal/model"
)

func leeGroup() model.ProviderGroup {
	return model.ProviderGroup{
		Provider: "Lee",
		Records: []model.MatchResult{
			{
				Appointment: model.AppointmentRecord{
					Time:           time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC),
					RawPatientName: "john smith",
					RawStatus:      "Seen",
					Status:         model.StatusCompleted,
				},
				Roster:     &model.RosterEntry{RawName: "Smith, John", Code: "A1", Insurance: "Acme"},
				Confidence: model.ConfidenceExact,
				Score:      1.0,
			},
			{
				Appointment: model.AppointmentRecord{
					RawTime:        "sometime",
					RawPatientName: "Mary Jones",
					RawStatus:      "No Show",
					Status:         model.StatusNoShow,
				},
				Confidence: model.ConfidenceUnmatched,
			},
		},
	}
}

func TestWriteProviderWorkbookLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProviderWorkbook(&buf, leeGroup()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	get := func(cell string) string {
		v, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		return v
	}

	// Row 1: matched, completed visit. Status stays blank, roster
	// attributes fill insurance and codes.
	assert.Equal(t, "Smith, John", get("A1"))
	assert.Equal(t, "Acme", get("B1"))
	assert.Equal(t, "11/03/2025", get("C1"))
	assert.Equal(t, "", get("D1"))
	assert.Equal(t, "A1", get("G1"))

	// Row 2: unmatched no-show. No insurance or codes, raw time and status
	// carried through.
	assert.Equal(t, "Jones, Mary", get("A2"))
	assert.Equal(t, "", get("B2"))
	assert.Equal(t, "sometime", get("C2"))
	assert.Equal(t, "No Show", get("D2"))
	assert.Equal(t, "", get("G2"))
}

func TestRenderSummary(t *testing.T) {
	stats := model.SummaryStats{
		TotalRows:    10,
		MatchedExact: 6,
		MatchedFuzzy: 2,
		Unmatched:    2,
		Ambiguous:    1,
		UnmappedRows: 1,
		PerProvider:  map[string]int{"Lee": 7, "Patel": 2},
	}
	diags := model.Diagnostics{
		QuarantinedRoster:   []model.RosterEntry{{RawName: "UNKNOWN"}},
		DuplicateRosterKeys: []string{"smith, john"},
	}
	now := time.Date(2025, 11, 30, 18, 0, 0, 0, time.UTC)

	text := RenderSummary(stats, diags, "11_2025", now)

	assert.Contains(t, text, "PROVIDER VISIT PROCESSING SUMMARY")
	assert.Contains(t, text, "Generated: 2025-11-30 18:00:00")
	assert.Contains(t, text, "Total appointments processed: 10")
	assert.Contains(t, text, "Matched to roster: 8/10 (80.0%)")
	assert.Contains(t, text, "exact: 6  fuzzy: 2  unmatched: 2 (ambiguous: 1)")
	assert.Contains(t, text, "Rows with unmapped providers: 1")
	assert.Contains(t, text, "Unparseable roster rows quarantined: 1")
	assert.Contains(t, text, "Duplicate roster keys (first occurrence used): 1")
	assert.Contains(t, text, "Lee_visits_11_2025.xlsx")
	assert.Contains(t, text, "Unmapped_visits_11_2025.xlsx")
	assert.Contains(t, text, "processing_summary_11_2025.txt")
}

func TestRenderSummaryEmptyInput(t *testing.T) {
	text := RenderSummary(model.SummaryStats{EmptyInput: true}, model.Diagnostics{}, "11_2025", time.Now())
	assert.Contains(t, text, "No appointment rows were found")
}

func TestWriteArchive(t *testing.T) {
	lee := leeGroup()
	groups := model.Groups{
		Providers: map[string]*model.ProviderGroup{
			"Lee":   &lee,
			"Patel": {Provider: "Patel"},
		},
		Unmapped: &model.ProviderGroup{Provider: model.UnmappedKey},
	}
	stats := model.SummaryStats{
		TotalRows:    2,
		MatchedExact: 1,
		Unmatched:    1,
		PerProvider:  map[string]int{"Lee": 2, "Patel": 0},
	}

	var buf bytes.Buffer
	err := WriteArchive(&buf, groups, stats, model.Diagnostics{}, "11_2025", time.Now())
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{
		"Lee_visits_11_2025.xlsx",
		"processing_summary_11_2025.txt",
	}, names, "zero-visit providers and the empty unmapped bucket get no workbook")
}

func TestArchiveNames(t *testing.T) {
	assert.Equal(t, "Lee_visits_11_2025.xlsx", WorkbookName("Lee", "11_2025"))
	assert.Equal(t, "processing_summary_11_2025.txt", SummaryName("11_2025"))
	assert.Equal(t, "visits_11_2025.zip", ArchiveName("11_2025"))
}

// Package ingest parses the appointment schedule CSV and the patient roster
// workbook into the fixed record shapes the engine consumes. Source-format
// flexibility (header aliases, sheet names) stops here.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/clinicops/visitsplit/internal/common"
	"github.com/clinicops/visitsplit/internal/model"
)

// Header aliases accepted for each required schedule column, in canonical
// form (lowercased, non-alphanumerics stripped).
var headerAliases = map[string][]string{
	"time":     {"appointmenttime", "time", "appointmentdate", "visitdate", "date"},
	"patient":  {"patient", "patientname", "name"},
	"provider": {"seenby", "provider", "providername", "doctor"},
	"status":   {"appointmentstatus", "status", "visitstatus"},
}

// Timestamp layouts tried in order when parsing the schedule's time column.
var timeLayouts = []string{
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
}

// ReadAppointments parses the schedule CSV. The header row is resolved
// case-insensitively against known aliases; unknown columns are carried
// through as opaque extras.
func ReadAppointments(r io.Reader) ([]model.AppointmentRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule header: %w", err)
	}

	cols, err := resolveHeader(header)
	if err != nil {
		return nil, err
	}

	var records []model.AppointmentRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read schedule row %d: %w", len(records)+2, err)
		}
		records = append(records, parseRow(header, cols, row))
	}
	return records, nil
}

// columns holds the resolved index of each required schedule column.
type columns struct {
	time     int
	patient  int
	provider int
	status   int
}

func resolveHeader(header []string) (columns, error) {
	byCanonical := make(map[string]int, len(header))
	for i, h := range header {
		byCanonical[canonicalHeader(h)] = i
	}

	cols := columns{time: -1, patient: -1, provider: -1, status: -1}
	lookup := func(role string) int {
		for _, alias := range headerAliases[role] {
			if i, ok := byCanonical[alias]; ok {
				return i
			}
		}
		return -1
	}

	cols.time = lookup("time")
	cols.patient = lookup("patient")
	cols.provider = lookup("provider")
	cols.status = lookup("status")

	for role, idx := range map[string]int{
		"patient":  cols.patient,
		"provider": cols.provider,
	} {
		if idx < 0 {
			return cols, fmt.Errorf("%w: no %s column in schedule header %v",
				common.ErrMissingColumn, role, header)
		}
	}
	// Time and status are optional: records without them still reconcile.
	return cols, nil
}

func canonicalHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseRow(header []string, cols columns, row []string) model.AppointmentRecord {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := model.AppointmentRecord{
		RawTime:         cell(cols.time),
		RawPatientName:  cell(cols.patient),
		RawProviderName: cell(cols.provider),
		RawStatus:       cell(cols.status),
	}
	rec.Status = model.ParseVisitStatus(rec.RawStatus)
	rec.Time = parseTime(rec.RawTime)

	for i, h := range header {
		if i == cols.time || i == cols.patient || i == cols.provider || i == cols.status {
			continue
		}
		if v := cell(i); v != "" {
			if rec.Extras == nil {
				rec.Extras = make(map[string]string)
			}
			rec.Extras[strings.TrimSpace(h)] = v
		}
	}
	return rec
}

// parseTime tries the known layouts; an unparseable value yields the zero
// time and the raw string is kept for display.
func parseTime(raw string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

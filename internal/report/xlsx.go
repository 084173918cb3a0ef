// Package report renders provider workbooks, the run summary, and the
// delivery archive from the engine's outputs. The engine itself never
// touches files; everything here is presentation.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/clinicops/visitsplit/internal/model"
	"github.com/clinicops/visitsplit/internal/normalize"
)

// Output column positions, 1-based. The layout is fixed by the receiving
// billing workflow: name, insurance, visit date, status, and codes in
// column seven.
const (
	colName      = 1
	colInsurance = 2
	colDate      = 3
	colStatus    = 4
	colCodes     = 7
)

// WriteProviderWorkbook renders one provider's visits as a headerless
// worksheet, one row per visit in schedule order.
func WriteProviderWorkbook(w io.Writer, group model.ProviderGroup) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	for i, rec := range group.Records {
		row := i + 1
		cells := map[int]string{
			colName:   displayName(rec.Appointment.RawPatientName),
			colDate:   visitDate(rec.Appointment),
			colStatus: statusLabel(rec.Appointment),
		}
		if rec.Roster != nil {
			cells[colInsurance] = rec.Roster.Insurance
			cells[colCodes] = rec.Roster.Code
		}
		for col, val := range cells {
			if val == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return fmt.Errorf("failed to address cell %d,%d: %w", col, row, err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook for %s: %w", group.Provider, err)
	}
	return nil
}

// displayName renders the patient name as title-cased "Last, First",
// falling back to the raw string when normalization found nothing usable.
func displayName(raw string) string {
	name := normalize.ParseName(raw)
	if name.IsEmpty() {
		return strings.TrimSpace(raw)
	}
	return name.Display()
}

func visitDate(appt model.AppointmentRecord) string {
	if appt.Time.IsZero() {
		return appt.RawTime
	}
	return appt.Time.Format("01/02/2006")
}

// statusLabel blanks the ordinary completed status so only exceptions
// (cancellations, no-shows, pending visits) stand out on the report.
func statusLabel(appt model.AppointmentRecord) string {
	if strings.EqualFold(strings.TrimSpace(appt.RawStatus), "seen") {
		return ""
	}
	return appt.RawStatus
}

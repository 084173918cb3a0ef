package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/clinicops/visitsplit/internal/common"
	"github.com/clinicops/visitsplit/internal/model"
)

// DefaultRosterSheet is the worksheet the roster workbook keeps active
// patients on.
const DefaultRosterSheet = "Active"

// ReadRoster parses the patient roster worksheet. The sheet is headerless
// with columns Name ("Last, First"), Code, Insurance by position; a leading
// header row is tolerated and skipped.
func ReadRoster(r io.Reader, sheet string) ([]model.RosterEntry, error) {
	if sheet == "" {
		sheet = DefaultRosterSheet
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", common.ErrSheetNotFound, sheet, err)
	}

	var entries []model.RosterEntry
	for i, row := range rows {
		entry := model.RosterEntry{
			RawName:   rosterCell(row, 0),
			Code:      rosterCell(row, 1),
			Insurance: rosterCell(row, 2),
		}
		if entry.RawName == "" && entry.Code == "" && entry.Insurance == "" {
			continue
		}
		if i == 0 && strings.EqualFold(entry.RawName, "name") {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func rosterCell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

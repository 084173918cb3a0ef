package report

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/clinicops/visitsplit/internal/model"
)

// WriteArchive packages every non-empty provider workbook plus the summary
// text into a single zip. Providers with zero visits this period get no
// workbook; they still appear in the summary.
func WriteArchive(w io.Writer, groups model.Groups, stats model.SummaryStats, diags model.Diagnostics, period string, now time.Time) error {
	zw := zip.NewWriter(w)

	writeGroup := func(g *model.ProviderGroup) error {
		if len(g.Records) == 0 {
			return nil
		}
		var buf bytes.Buffer
		if err := WriteProviderWorkbook(&buf, *g); err != nil {
			return err
		}
		entry, err := zw.Create(WorkbookName(g.Provider, period))
		if err != nil {
			return fmt.Errorf("failed to create archive entry for %s: %w", g.Provider, err)
		}
		if _, err := entry.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write archive entry for %s: %w", g.Provider, err)
		}
		return nil
	}

	for _, key := range groups.ProviderKeys() {
		if err := writeGroup(groups.Providers[key]); err != nil {
			return err
		}
	}
	if err := writeGroup(groups.Unmapped); err != nil {
		return err
	}

	entry, err := zw.Create(SummaryName(period))
	if err != nil {
		return fmt.Errorf("failed to create summary entry: %w", err)
	}
	if _, err := io.WriteString(entry, RenderSummary(stats, diags, period, now)); err != nil {
		return fmt.Errorf("failed to write summary entry: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return nil
}

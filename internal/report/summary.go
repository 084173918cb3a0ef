package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/clinicops/visitsplit/internal/model"
)

// RenderSummary formats the run's match-quality summary as plain text. The
// same text ships inside the archive and prints to the terminal.
func RenderSummary(stats model.SummaryStats, diags model.Diagnostics, period string, now time.Time) string {
	var b strings.Builder
	rule := strings.Repeat("=", 60)
	thin := strings.Repeat("-", 50)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "PROVIDER VISIT PROCESSING SUMMARY")
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b)

	if stats.EmptyInput {
		fmt.Fprintln(&b, "No appointment rows were found in the input.")
		return b.String()
	}

	fmt.Fprintf(&b, "Total appointments processed: %d\n", stats.TotalRows)
	fmt.Fprintf(&b, "Matched to roster: %d/%d (%.1f%%)\n", stats.Matched(), stats.TotalRows, stats.MatchRate())
	fmt.Fprintf(&b, "  exact: %d  fuzzy: %d  unmatched: %d (ambiguous: %d)\n",
		stats.MatchedExact, stats.MatchedFuzzy, stats.Unmatched, stats.Ambiguous)
	if stats.UnmappedRows > 0 {
		fmt.Fprintf(&b, "Rows with unmapped providers: %d\n", stats.UnmappedRows)
	}
	if n := len(diags.QuarantinedRoster); n > 0 {
		fmt.Fprintf(&b, "Unparseable roster rows quarantined: %d\n", n)
	}
	if n := len(diags.DuplicateRosterKeys); n > 0 {
		fmt.Fprintf(&b, "Duplicate roster keys (first occurrence used): %d\n", n)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Per-provider row counts:")
	fmt.Fprintln(&b, thin)
	fmt.Fprintf(&b, "%-20s %s\n", "Provider", "Rows")
	fmt.Fprintln(&b, thin)
	for _, key := range sortedKeys(stats.PerProvider) {
		fmt.Fprintf(&b, "%-20s %d\n", key, stats.PerProvider[key])
	}
	if stats.UnmappedRows > 0 {
		fmt.Fprintf(&b, "%-20s %d\n", model.UnmappedKey, stats.UnmappedRows)
	}
	fmt.Fprintln(&b, thin)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Generated files:")
	for _, key := range sortedKeys(stats.PerProvider) {
		if stats.PerProvider[key] > 0 {
			fmt.Fprintf(&b, "  - %s\n", WorkbookName(key, period))
		}
	}
	if stats.UnmappedRows > 0 {
		fmt.Fprintf(&b, "  - %s\n", WorkbookName(model.UnmappedKey, period))
	}
	fmt.Fprintf(&b, "  - %s\n", SummaryName(period))

	return b.String()
}

// WorkbookName is the archive filename for one provider's report.
func WorkbookName(provider, period string) string {
	return fmt.Sprintf("%s_visits_%s.xlsx", provider, period)
}

// SummaryName is the archive filename for the summary text.
func SummaryName(period string) string {
	return fmt.Sprintf("processing_summary_%s.txt", period)
}

// ArchiveName is the delivery zip filename for a period.
func ArchiveName(period string) string {
	return fmt.Sprintf("visits_%s.zip", period)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

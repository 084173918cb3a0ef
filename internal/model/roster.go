package model

// RosterEntry represents one patient row from the roster workbook.
// RawName is expected in "Last, First" form; entries whose name cannot be
// decomposed into a surname part and a given-name part are quarantined by
// the reconciler, never silently dropped.
type RosterEntry struct {
	RawName   string
	Code      string
	Insurance string
}

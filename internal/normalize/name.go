// Package normalize canonicalizes raw patient names into comparable
// surname/given keys. Keys are used only for comparison; Display renders the
// report form.
package normalize

import (
	"strings"
	"unicode"
)

// suffixes are generational and professional name suffixes stripped from
// both name parts before comparison.
var suffixes = map[string]bool{
	"jr": true, "sr": true,
	"ii": true, "iii": true, "iv": true, "v": true,
	"md": true, "phd": true, "psyd": true, "do": true,
}

// Name is a canonical name key: lowercased, whitespace-collapsed,
// punctuation-stripped (internal hyphens kept), surname-first.
type Name struct {
	Surname string
	Given   string
	// OrderInferred is set when the source string had no comma and the last
	// whitespace token was assumed to be the surname. Lower trust.
	OrderInferred bool
}

// ParseName canonicalizes a raw name string. It never fails: the result is
// best-effort and may have empty parts.
func ParseName(raw string) Name {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Name{}
	}

	var n Name
	var surname, given string
	if before, after, found := strings.Cut(raw, ","); found {
		surname, given = before, after
	} else {
		fields := strings.Fields(raw)
		if len(fields) == 1 {
			surname = fields[0]
		} else {
			surname = fields[len(fields)-1]
			given = strings.Join(fields[:len(fields)-1], " ")
			n.OrderInferred = true
		}
	}

	// Parenthetical surname annotations like "Russell (Kwon)" keep only the
	// part before the parenthesis.
	if i := strings.IndexByte(surname, '('); i >= 0 {
		surname = surname[:i]
	}

	n.Surname = stripSuffixes(canonical(surname))
	n.Given = stripSuffixes(canonical(given))
	return n
}

// canonical lowercases, drops punctuation except hyphens internal to a
// token, and collapses whitespace.
func canonical(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
		// Everything else (periods, apostrophes, parens) is dropped.
	}
	fields := strings.Fields(b.String())
	for i, f := range fields {
		fields[i] = strings.Trim(f, "-")
	}
	out := strings.Join(fields, " ")
	return strings.TrimSpace(out)
}

func stripSuffixes(part string) string {
	fields := strings.Fields(part)
	for len(fields) > 0 && suffixes[fields[len(fields)-1]] {
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

// IsEmpty reports whether no usable key survived normalization.
func (n Name) IsEmpty() bool {
	return n.Surname == "" && n.Given == ""
}

// Complete reports whether both a surname and a given part survived, the
// roster decomposability requirement.
func (n Name) Complete() bool {
	return n.Surname != "" && n.Given != ""
}

// GivenToken returns the first token of the given-name key.
func (n Name) GivenToken() string {
	if i := strings.IndexByte(n.Given, ' '); i >= 0 {
		return n.Given[:i]
	}
	return n.Given
}

// Key returns the comparison key in "surname, given" form. Two names refer
// to the same identity under exact equivalence iff their keys are equal.
func (n Name) Key() string {
	return n.Surname + ", " + n.Given
}

// Display renders the name in title-cased "Last, First" report form.
// Parsing the display form again yields the same keys.
func (n Name) Display() string {
	last := titleWords(n.Surname)
	first := titleWords(n.Given)
	switch {
	case last != "" && first != "":
		return last + ", " + first
	case last != "":
		return last
	default:
		return first
	}
}

func titleWords(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = capitalize(f)
	}
	return strings.Join(fields, " ")
}

// capitalize upper-cases the first letter of a word and of every hyphenated
// segment, so "smith-jones" renders as "Smith-Jones".
func capitalize(word string) string {
	segs := strings.Split(word, "-")
	for i, seg := range segs {
		r := []rune(seg)
		if len(r) > 0 {
			r[0] = unicode.ToUpper(r[0])
		}
		segs[i] = string(r)
	}
	return strings.Join(segs, "-")
}

// Package libpostal cross-checks parsed addresses against libpostal's
// statistical parser. The cgo binding is only compiled with -tags libpostal;
// without it Parse returns ErrUnavailable and Compare still works on
// components obtained elsewhere.
package libpostal

import (
	"errors"
	"regexp"
	"strings"

	"github.com/streetsweeper/internal/address"
	"github.com/streetsweeper/internal/reference"
)

// ErrUnavailable is returned by Parse when the binary was built without libpostal.
var ErrUnavailable = errors.New("libpostal support not compiled in (build with -tags libpostal)")

// Component is one labelled span from libpostal, e.g. {"road", "n gravenstein highway"}.
type Component struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Diff is a field where the two parsers disagree. An empty side means that
// parser found nothing for the field.
type Diff struct {
	Field  string `json:"field"`
	Ours   string `json:"ours"`
	Theirs string `json:"theirs"`
}

var rePunct = regexp.MustCompile(`[^\w\s#-]`)

// Components flattens libpostal output to label -> value. Repeated labels
// are joined with a space.
func Components(comps []Component) map[string]string {
	out := make(map[string]string)
	for _, c := range comps {
		if prev, ok := out[c.Label]; ok {
			out[c.Label] = prev + " " + c.Value
			continue
		}
		out[c.Label] = c.Value
	}
	return out
}

// Compare reports the fields on which a and libpostal's components differ
// after both sides are canonicalised with the same tables.
func Compare(t *reference.Tables, a address.Address, comps []Component) []Diff {
	theirs := Components(comps)

	var diffs []Diff
	check := func(field, ours, other string) {
		if canonical(t, ours) != canonical(t, other) {
			diffs = append(diffs, Diff{Field: field, Ours: ours, Theirs: other})
		}
	}

	street := strings.Join(nonEmpty(a.Prefix, a.Street, a.StreetType, a.Suffix), " ")
	unit := strings.Join(nonEmpty(a.UnitPrefix, a.Unit), " ")

	if a.IsIntersection() {
		// libpostal labels both streets of an intersection as road.
		second := strings.Join(nonEmpty(a.Prefix2, a.Street2, a.StreetType2, a.Suffix2), " ")
		check("road", street+" "+second, stripConnector(theirs["road"]))
	} else {
		check("house_number", a.Number, theirs["house_number"])
		check("road", street, theirs["road"])
		check("unit", unit, theirs["unit"])
	}
	check("city", a.City, theirs["city"])
	check("state", stateCode(t, a.State), stateCode(t, theirs["state"]))
	check("postcode", a.FullPostalCode(), theirs["postcode"])

	return diffs
}

// canonical lower-cases s, drops punctuation and maps every street type and
// directional token to its abbreviation.
func canonical(t *reference.Tables, s string) string {
	words := strings.Fields(strings.ToLower(rePunct.ReplaceAllString(s, "")))
	for i, w := range words {
		if abbr, ok := t.StreetTypeAbbr(w); ok {
			words[i] = abbr
			continue
		}
		if abbr, ok := t.DirectionalAbbr(w); ok {
			words[i] = strings.ToLower(abbr)
		}
	}
	return strings.Join(words, " ")
}

func stateCode(t *reference.Tables, s string) string {
	if code, ok := t.StateCode(s); ok {
		return code
	}
	return s
}

var reConnector = regexp.MustCompile(`(?i)\s+(?:and|at|&|@)\s+`)

func stripConnector(s string) string {
	return reConnector.ReplaceAllString(s, " ")
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

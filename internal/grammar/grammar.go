// Package grammar composes the address patterns from the reference tables.
//
// Each top-level shape is compiled as an ordered list of candidates, one per
// street alternative. Callers try the candidates in order and take the first
// whole-pattern match, so the alternatives keep their priority regardless of
// how the regexp engine would rank them inside a single alternation.
package grammar

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/streetsweeper/internal/reference"
)

const (
	numberPattern   = `(?P<number>\d+-?\d*)`
	fractionPattern = `\d+/\d+`
	cornerPattern   = `(?:\band\b|\bat\b|&|@)`
	zipPattern      = `(?:(?P<postal_code>\d{5})(?:-?(?P<postal_code_ext>\d{4}))?)`
	poStreetPattern = `(?P<street>p\.?o\.?\s?(?:box|#)?\s\d\d*[-a-z]*)`
)

// Grammar is immutable once built and safe for concurrent use.
type Grammar struct {
	street       Candidates
	address      Candidates
	po           Candidates
	informal     Candidates
	intersection Candidates
	corner       *regexp.Regexp
	typeIn       map[string]*regexp.Regexp
}

type namedPattern struct {
	name    string
	pattern string
}

// fragments shared by every top-level pattern
type parts struct {
	dir        string
	streetType string
	unit       string
	place      string
}

// Build compiles every pattern. Any compile failure or unknown capture name
// is returned here, once, at startup.
func Build(t *reference.Tables) (*Grammar, error) {
	p := newParts(t)
	g := &Grammar{typeIn: make(map[string]*regexp.Regexp)}

	var err error
	if g.corner, err = regexp.Compile(`(?i)` + cornerPattern); err != nil {
		return nil, fmt.Errorf("compile corner: %w", err)
	}

	streets := p.streets("")
	streets2 := p.streets("2")
	anyStreet2 := make([]string, len(streets2))
	for i, s := range streets2 {
		anyStreet2[i] = s.pattern
	}
	street2 := `(?:` + strings.Join(anyStreet2, `|`) + `)`

	for _, s := range streets {
		street := `(?:` + s.pattern + `)`

		if err := g.street.add("street/"+s.name, `(?i)`+street); err != nil {
			return nil, err
		}

		address := `(?i)\A[^\w#]*` + numberPattern + `\W*(?:` + fractionPattern + `\W*)?` +
			street + `\W+(?:` + p.unit + `\W+)?` + p.place + `\W*\z`
		if err := g.address.add("address/"+s.name, address); err != nil {
			return nil, err
		}

		informal := `(?i)\A\s*(?:` + p.unit + `(?:\W+|\z))?(?:` + numberPattern + `)?\W*(?:` + fractionPattern + `\W*)?` +
			street + `(?:[^#\w]+|\z)(?:` + p.unit + `(?:\W+|\z))?(?:` + p.place + `)?`
		if err := g.informal.add("informal/"+s.name, informal); err != nil {
			return nil, err
		}

		intersection := `(?i)\A\W*` + street + `\W*?\s+` + cornerPattern + `\s+` + street2 +
			`(?:\W+` + p.place + `)?\W*\z`
		if err := g.intersection.add("intersection/"+s.name, intersection); err != nil {
			return nil, err
		}
	}

	po := `(?i)\A` + poStreetPattern + `\W*` + p.place + `\W*\z`
	if err := g.po.add("po", po); err != nil {
		return nil, err
	}

	for _, st := range t.StreetTypes {
		abbr := strings.ToLower(st.Abbr)
		if _, ok := g.typeIn[abbr]; ok {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + alternation(t.StreetTypeSpellings(abbr)) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compile street type %q: %w", abbr, err)
		}
		g.typeIn[abbr] = re
	}

	return g, nil
}

func (c *Candidates) add(name, pattern string) error {
	m, err := compile(name, pattern)
	if err != nil {
		return err
	}
	*c = append(*c, m)
	return nil
}

func newParts(t *reference.Tables) parts {
	var dir []string
	dir = append(dir, t.DirectionWords()...)
	for _, code := range t.DirectionCodes() {
		var dotted strings.Builder
		for _, r := range code {
			dotted.WriteRune(r)
			dotted.WriteByte('.')
		}
		dir = append(dir, dotted.String(), code)
	}

	state := `\b` + alternation(t.StateWords()) + `\b`
	cityState := `(?:(?P<city>[^\d,]+?)\W+(?P<state>` + state + `))`

	numbered := `(?:` + strings.Join(t.NumberedUnitPatterns(), `|`) + `)`
	unnumbered := `(?:` + strings.Join(t.UnnumberedUnitPatterns(), `|`) + `)`

	return parts{
		dir:        alternation(dir),
		streetType: alternation(t.StreetTypeWords()),
		unit: `(?:(?P<unit_prefix>` + numbered + `)(?:\W+(?P<unit>[\w-]+)|(?P<unit>[0-9_-][\w-]*))` +
			`|(?P<unit_prefix>#)\W*(?P<unit>[\w-]+)` +
			`|(?P<unit_prefix>` + unnumbered + `)\b)`,
		place: `(?:` + cityState + `\W*)?(?:` + zipPattern + `)?`,
	}
}

// streets returns the street alternatives in priority order. sfx is appended
// to every capture name so a second street clause can be told apart.
func (p parts) streets(sfx string) []namedPattern {
	prefix := `(?P<prefix` + sfx + `>` + p.dir + `)\W+`
	typ := `(?P<street_type` + sfx + `>` + p.streetType + `)\b`
	suffix := `(?P<suffix` + sfx + `>` + p.dir + `)\b`
	name := func(body string) string {
		return `(?P<street` + sfx + `>` + body + `)`
	}

	numbered := name(`[^,]*\d`) + `(?:[^\w,]*` + suffix + `)`
	typed := name(`[^,]+`) + `(?:[^\w,]+` + typ + `)(?:[^\w,]+` + suffix + `)?`
	generic := name(`[^,]+?`) + `(?:[^\w,]+` + typ + `)?(?:[^\w,]+` + suffix + `)?`

	return []namedPattern{
		// 14168 W River Rd: the name itself looks like a street type
		{"prefix-name-type", prefix + name(`[^\d]+`) + `\W+` + typ},
		// 100 South Street
		{"directional-name", name(p.dir) + `\W+` + typ},
		{"prefix-numbered", prefix + numbered},
		{"prefix-typed", prefix + typed},
		{"prefix-generic", prefix + generic},
		{"numbered", numbered},
		{"typed", typed},
		{"generic", generic},
	}
}

func alternation(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return `(?:` + strings.Join(quoted, `|`) + `)`
}

// Street is the unanchored street clause, used to find a street type
// embedded in an already captured street name.
func (g *Grammar) Street() Candidates { return g.street }

// Address is the standard "number street [unit] place" shape.
func (g *Grammar) Address() Candidates { return g.address }

// POAddress is the PO Box shape.
func (g *Grammar) POAddress() Candidates { return g.po }

// Informal allows the unit before or after the street and does not need to
// reach the end of the text.
func (g *Grammar) Informal() Candidates { return g.informal }

// Intersection is two street clauses joined by a connector.
func (g *Grammar) Intersection() Candidates { return g.intersection }

// HasCorner reports whether text contains an intersection connector.
func (g *Grammar) HasCorner(text string) bool {
	return g.corner.MatchString(text)
}

// TypeAppearsIn reports whether any spelling of the street type abbr occurs
// as a whole word in street.
func (g *Grammar) TypeAppearsIn(abbr, street string) bool {
	re, ok := g.typeIn[strings.ToLower(abbr)]
	return ok && re.MatchString(street)
}

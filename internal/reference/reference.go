// Package reference holds the read-only lookup tables used to recognise and
// canonicalise address fragments: street types, directionals, secondary unit
// designators and states.
package reference

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// StreetType maps a spelled-out suffix to its USPS abbreviation.
type StreetType struct {
	Name string
	Abbr string
}

// Directional maps a compass word to its abbreviation.
type Directional struct {
	Name string
	Abbr string
}

// UnitPrefix is a secondary unit designator. Pattern is a regular expression
// fragment matched case-insensitively against the whole prefix token.
type UnitPrefix struct {
	Pattern string
	Abbr    string
}

// State is a US state or territory.
type State struct {
	Name string
	Code string
	FIPS string
}

type unitMatcher struct {
	re   *regexp.Regexp
	abbr string
}

// Tables is built once and never mutated, so it is safe for concurrent use.
type Tables struct {
	StreetTypes     []StreetType
	Directionals    []Directional
	NumberedUnits   []UnitPrefix
	UnnumberedUnits []UnitPrefix
	States          []State

	streetTypes  map[string]string   // lower spelling -> lower abbr
	spellings    map[string][]string // lower abbr -> name and abbr spellings
	directionals map[string]string   // lower name or abbr -> upper abbr
	directions   map[string]string   // upper abbr -> lower name
	stateCodes   map[string]string   // lower name or code -> upper code
	statesByCode map[string]State
	units        []unitMatcher
}

// New indexes and validates the given tables.
func New(streetTypes []StreetType, directionals []Directional, numbered, unnumbered []UnitPrefix, states []State) (*Tables, error) {
	t := &Tables{
		StreetTypes:     streetTypes,
		Directionals:    directionals,
		NumberedUnits:   numbered,
		UnnumberedUnits: unnumbered,
		States:          states,
		streetTypes:     make(map[string]string),
		spellings:       make(map[string][]string),
		directionals:    make(map[string]string),
		directions:      make(map[string]string),
		stateCodes:      make(map[string]string),
		statesByCode:    make(map[string]State),
	}

	for _, st := range streetTypes {
		name := strings.ToLower(strings.TrimSpace(st.Name))
		abbr := strings.ToLower(strings.TrimSpace(st.Abbr))
		if name == "" || abbr == "" {
			return nil, fmt.Errorf("street type %q: empty name or abbreviation", st.Name)
		}
		for _, spelling := range []string{name, abbr} {
			if prev, ok := t.streetTypes[spelling]; ok && prev != abbr {
				return nil, fmt.Errorf("street type %q maps to both %q and %q", spelling, prev, abbr)
			}
			if _, ok := t.streetTypes[spelling]; !ok {
				t.streetTypes[spelling] = abbr
				t.spellings[abbr] = append(t.spellings[abbr], spelling)
			}
		}
	}

	for _, d := range directionals {
		name := strings.ToLower(d.Name)
		abbr := strings.ToUpper(d.Abbr)
		if name == "" || abbr == "" {
			return nil, fmt.Errorf("directional %q: empty name or abbreviation", d.Name)
		}
		for _, key := range []string{name, strings.ToLower(abbr)} {
			if prev, ok := t.directionals[key]; ok && prev != abbr {
				return nil, fmt.Errorf("directional %q maps to both %q and %q", key, prev, abbr)
			}
			t.directionals[key] = abbr
		}
		t.directions[abbr] = name
	}

	for _, list := range [][]UnitPrefix{numbered, unnumbered} {
		for _, u := range list {
			re, err := regexp.Compile(`(?i)\A(?:` + u.Pattern + `)\z`)
			if err != nil {
				return nil, fmt.Errorf("unit prefix %q: %w", u.Abbr, err)
			}
			t.units = append(t.units, unitMatcher{re: re, abbr: u.Abbr})
		}
	}

	for _, s := range states {
		code := strings.ToUpper(s.Code)
		if len(code) != 2 {
			return nil, fmt.Errorf("state %q: code %q is not two letters", s.Name, s.Code)
		}
		if _, ok := t.statesByCode[code]; ok {
			return nil, fmt.Errorf("duplicate state code %q", code)
		}
		for _, key := range []string{strings.ToLower(s.Name), strings.ToLower(code)} {
			if prev, ok := t.stateCodes[key]; ok && prev != code {
				return nil, fmt.Errorf("state %q maps to both %q and %q", key, prev, code)
			}
			t.stateCodes[key] = code
		}
		t.statesByCode[code] = State{Name: s.Name, Code: code, FIPS: s.FIPS}
	}

	return t, nil
}

// Default returns the USPS tables shipped with the package.
func Default() (*Tables, error) {
	return New(defaultStreetTypes, defaultDirectionals, defaultNumberedUnits, defaultUnnumberedUnits, defaultStates)
}

// StreetTypeAbbr returns the lower-case abbreviation for a street type
// spelling (full or abbreviated).
func (t *Tables) StreetTypeAbbr(s string) (string, bool) {
	abbr, ok := t.streetTypes[strings.ToLower(s)]
	return abbr, ok
}

// StreetTypeSpellings returns every spelling that canonicalises to abbr.
func (t *Tables) StreetTypeSpellings(abbr string) []string {
	return t.spellings[strings.ToLower(abbr)]
}

// StreetTypeWords lists every known spelling, longest first.
func (t *Tables) StreetTypeWords() []string {
	words := make([]string, 0, len(t.streetTypes))
	for w := range t.streetTypes {
		words = append(words, w)
	}
	return longestFirst(words)
}

// DirectionalAbbr canonicalises "north", "n", "N" to "N".
func (t *Tables) DirectionalAbbr(s string) (string, bool) {
	abbr, ok := t.directionals[strings.ToLower(s)]
	return abbr, ok
}

// DirectionName expands a direction code to its lower-case word.
func (t *Tables) DirectionName(code string) (string, bool) {
	name, ok := t.directions[strings.ToUpper(code)]
	return name, ok
}

// DirectionWords lists directional names, longest first.
func (t *Tables) DirectionWords() []string {
	words := make([]string, 0, len(t.Directionals))
	for _, d := range t.Directionals {
		words = append(words, strings.ToLower(d.Name))
	}
	return longestFirst(words)
}

// DirectionCodes lists directional abbreviations, longest first.
func (t *Tables) DirectionCodes() []string {
	codes := make([]string, 0, len(t.Directionals))
	for _, d := range t.Directionals {
		codes = append(codes, strings.ToUpper(d.Abbr))
	}
	return longestFirst(codes)
}

// StateCode canonicalises a state name or code to its upper-case code.
func (t *Tables) StateCode(s string) (string, bool) {
	code, ok := t.stateCodes[strings.ToLower(strings.Join(strings.Fields(s), " "))]
	return code, ok
}

// StateName returns the proper-case name for a state code.
func (t *Tables) StateName(code string) (string, bool) {
	s, ok := t.statesByCode[strings.ToUpper(code)]
	return s.Name, ok
}

// StateFIPS returns the two-digit FIPS code for a state code.
func (t *Tables) StateFIPS(code string) (string, bool) {
	s, ok := t.statesByCode[strings.ToUpper(code)]
	return s.FIPS, ok
}

// StateWords lists state names and codes, longest first.
func (t *Tables) StateWords() []string {
	words := make([]string, 0, len(t.stateCodes))
	for w := range t.stateCodes {
		words = append(words, w)
	}
	return longestFirst(words)
}

// UnitAbbr canonicalises a unit prefix token. The first pattern that matches
// the whole token wins.
func (t *Tables) UnitAbbr(prefix string) (string, bool) {
	for _, u := range t.units {
		if u.re.MatchString(prefix) {
			return u.abbr, true
		}
	}
	return "", false
}

// NumberedUnitPatterns returns the patterns of prefixes that need a value.
func (t *Tables) NumberedUnitPatterns() []string {
	return patterns(t.NumberedUnits)
}

// UnnumberedUnitPatterns returns the patterns of stand-alone prefixes.
func (t *Tables) UnnumberedUnitPatterns() []string {
	return patterns(t.UnnumberedUnits)
}

func patterns(units []UnitPrefix) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Pattern
	}
	return out
}

// longestFirst sorts so regexp alternations prefer the longer spelling.
func longestFirst(words []string) []string {
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	return words
}

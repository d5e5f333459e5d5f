package grammar

import (
	"fmt"
	"regexp"
	"strings"
)

type group struct {
	index int
	field Field
}

// Matcher is one compiled candidate pattern.
type Matcher struct {
	name   string
	re     *regexp.Regexp
	groups []group
}

func compile(name, pattern string) (*Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}

	m := &Matcher{name: name, re: re}
	for i, sub := range re.SubexpNames() {
		if sub == "" {
			continue
		}
		f, ok := FieldByName(sub)
		if !ok {
			return nil, fmt.Errorf("compile %s: unknown capture %q", name, sub)
		}
		m.groups = append(m.groups, group{index: i, field: f})
	}
	return m, nil
}

// Name identifies the candidate in traces.
func (m *Matcher) Name() string {
	return m.name
}

// Match returns the fragments captured by the pattern.
func (m *Matcher) Match(text string) (Fragments, bool) {
	f, _, ok := m.match(text)
	return f, ok
}

func (m *Matcher) match(text string) (Fragments, int, bool) {
	loc := m.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, 0, false
	}

	frags := make(Fragments)
	for _, g := range m.groups {
		start, end := loc[2*g.index], loc[2*g.index+1]
		if start < 0 {
			continue
		}
		// A house number must be followed by a non-digit.
		if g.field == Number && (end >= len(text) || isDigit(text[end])) {
			return nil, 0, false
		}
		if _, seen := frags[g.field]; seen {
			continue
		}
		value := text[start:end]
		if strings.TrimSpace(value) == "" {
			continue
		}
		frags[g.field] = value
	}
	return frags, loc[0], true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Candidates is an ordered list of alternative patterns for one shape.
type Candidates []*Matcher

// First returns the fragments of the first candidate that matches, together
// with the candidate's name.
func (c Candidates) First(text string) (Fragments, string, bool) {
	for _, m := range c {
		if frags, _, ok := m.match(text); ok {
			return frags, m.name, true
		}
	}
	return nil, "", false
}

// Leftmost returns the match that starts earliest in text. Ties go to the
// earlier candidate.
func (c Candidates) Leftmost(text string) (Fragments, bool) {
	var (
		best      Fragments
		bestStart = -1
	)
	for _, m := range c {
		frags, start, ok := m.match(text)
		if !ok {
			continue
		}
		if bestStart < 0 || start < bestStart {
			best, bestStart = frags, start
		}
		if start == 0 {
			break
		}
	}
	return best, bestStart >= 0
}

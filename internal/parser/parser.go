// Package parser turns free-form US address text into address records.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mozillazg/go-unidecode"

	"github.com/streetsweeper/internal/address"
	"github.com/streetsweeper/internal/debug"
	"github.com/streetsweeper/internal/grammar"
	"github.com/streetsweeper/internal/normalize"
	"github.com/streetsweeper/internal/reference"
)

// ErrNoMatch is returned when no address shape matches the input.
var ErrNoMatch = errors.New("no address match")

// Shape selects which address grammar to try.
type Shape int

const (
	// ShapeAuto tries intersection when a connector is present, otherwise
	// PO Box, standard and informal in that order.
	ShapeAuto Shape = iota
	ShapeStandard
	ShapePOBox
	ShapeInformal
	ShapeIntersection
)

var shapeNames = map[Shape]string{
	ShapeAuto:         "auto",
	ShapeStandard:     "standard",
	ShapePOBox:        "po",
	ShapeInformal:     "informal",
	ShapeIntersection: "intersection",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// ShapeByName resolves "auto", "standard", "po", "informal" or
// "intersection". The empty string means auto.
func ShapeByName(name string) (Shape, error) {
	if name == "" {
		return ShapeAuto, nil
	}
	for s, n := range shapeNames {
		if n == name {
			return s, nil
		}
	}
	return ShapeAuto, fmt.Errorf("unknown shape %q", name)
}

// Parser is safe for concurrent use once constructed.
type Parser struct {
	grammar    *grammar.Grammar
	tables     *reference.Tables
	normalizer *normalize.Normalizer
	log        *debug.Logger
}

// New creates a parser over a built grammar and the tables it was built from.
func New(g *grammar.Grammar, t *reference.Tables) *Parser {
	return &Parser{
		grammar:    g,
		tables:     t,
		normalizer: normalize.New(t, g),
	}
}

// NewDefault builds the grammar from the default USPS tables.
func NewDefault() (*Parser, error) {
	tables, err := reference.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load reference tables: %w", err)
	}
	g, err := grammar.Build(tables)
	if err != nil {
		return nil, fmt.Errorf("failed to build grammar: %w", err)
	}
	return New(g, tables), nil
}

// SetLogger enables match tracing. Call it before sharing the parser.
func (p *Parser) SetLogger(l *debug.Logger) {
	p.log = l
	p.normalizer.Log = l
}

// Tables exposes the reference data the parser canonicalizes against.
func (p *Parser) Tables() *reference.Tables {
	return p.tables
}

// Parse picks the shape automatically. If the text contains an intersection
// connector only the intersection grammar is tried. The informal fallback
// must find a house number, either digits or a spelled-out "One".."Twenty"
// leading the street, so bare place names such as "Main Street Springfield"
// are not records.
func (p *Parser) Parse(text string, opts normalize.Options) (address.Address, bool) {
	text = transliterate(text)
	if p.grammar.HasCorner(text) {
		return p.parse(text, ShapeIntersection, opts)
	}
	for _, shape := range []Shape{ShapePOBox, ShapeStandard, ShapeInformal} {
		a, ok := p.parse(text, shape, opts)
		if !ok {
			continue
		}
		if shape == ShapeInformal && !hasHouseNumber(a) {
			p.log.Printf("%s: %q has no house number", shape, text)
			return address.Address{}, false
		}
		return a, true
	}
	return address.Address{}, false
}

// ParseAddress parses a standard "number street [unit] city state zip" address.
func (p *Parser) ParseAddress(text string, opts normalize.Options) (address.Address, bool) {
	return p.parse(transliterate(text), ShapeStandard, opts)
}

// ParsePOAddress parses a PO Box address.
func (p *Parser) ParsePOAddress(text string, opts normalize.Options) (address.Address, bool) {
	return p.parse(transliterate(text), ShapePOBox, opts)
}

// ParseInformalAddress parses loosely ordered text where the unit may come
// first and the match does not have to cover the whole input.
func (p *Parser) ParseInformalAddress(text string, opts normalize.Options) (address.Address, bool) {
	return p.parse(transliterate(text), ShapeInformal, opts)
}

// ParseIntersection parses "street and street [city state zip]".
func (p *Parser) ParseIntersection(text string, opts normalize.Options) (address.Address, bool) {
	return p.parse(transliterate(text), ShapeIntersection, opts)
}

// ParseShape runs one shape, or auto dispatch, and reports a miss as
// ErrNoMatch.
func (p *Parser) ParseShape(text string, shape Shape, opts normalize.Options) (address.Address, error) {
	var (
		a  address.Address
		ok bool
	)
	switch shape {
	case ShapeAuto:
		a, ok = p.Parse(text, opts)
	case ShapeStandard:
		a, ok = p.ParseAddress(text, opts)
	case ShapePOBox:
		a, ok = p.ParsePOAddress(text, opts)
	case ShapeInformal:
		a, ok = p.ParseInformalAddress(text, opts)
	case ShapeIntersection:
		a, ok = p.ParseIntersection(text, opts)
	default:
		return address.Address{}, fmt.Errorf("parse: unknown shape %d", int(shape))
	}
	if !ok {
		return address.Address{}, fmt.Errorf("parse %s: %w", shape, ErrNoMatch)
	}
	return a, nil
}

func (p *Parser) parse(text string, shape Shape, opts normalize.Options) (address.Address, bool) {
	var candidates grammar.Candidates
	switch shape {
	case ShapeStandard:
		candidates = p.grammar.Address()
	case ShapePOBox:
		candidates = p.grammar.POAddress()
	case ShapeInformal:
		candidates = p.grammar.Informal()
	case ShapeIntersection:
		candidates = p.grammar.Intersection()
	default:
		return address.Address{}, false
	}

	frags, name, ok := candidates.First(text)
	if !ok {
		p.log.Printf("%s: no match for %q", shape, text)
		return address.Address{}, false
	}

	// Informal text with neither a house number nor a street type is
	// just words.
	if shape == ShapeInformal && frags[grammar.Number] == "" && frags[grammar.StreetType] == "" {
		p.log.Printf("%s: %s matched %q without number or street type", shape, name, text)
		return address.Address{}, false
	}

	p.log.Printf("%s: %s matched %q", shape, name, text)
	return p.normalizer.Normalize(frags, opts), true
}

var numberWords = map[string]bool{
	"one": true, "two": true, "three": true, "four": true, "five": true,
	"six": true, "seven": true, "eight": true, "nine": true, "ten": true,
	"eleven": true, "twelve": true, "thirteen": true, "fourteen": true, "fifteen": true,
	"sixteen": true, "seventeen": true, "eighteen": true, "nineteen": true, "twenty": true,
}

// hasHouseNumber reports whether a carries a digit house number or a street
// that opens with a spelled-out one, as in "One East 161st St".
func hasHouseNumber(a address.Address) bool {
	if a.Number != "" {
		return true
	}
	first, _, _ := strings.Cut(strings.TrimSpace(a.Prefix+" "+a.Street), " ")
	return numberWords[strings.ToLower(first)]
}

func transliterate(text string) string {
	return unidecode.Unidecode(text)
}

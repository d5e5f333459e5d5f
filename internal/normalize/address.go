package normalize

import (
	"regexp"
	"strings"

	"github.com/streetsweeper/internal/address"
	"github.com/streetsweeper/internal/debug"
	"github.com/streetsweeper/internal/grammar"
	"github.com/streetsweeper/internal/reference"
)

// Characters kept in a captured fragment; everything else is stripped.
var reStrip = regexp.MustCompile(`[^\w\s\-#&]`)

// Tokens upper-cased instead of capitalized.
var upperTokens = map[string]bool{
	"po": true,
	"ne": true,
	"nw": true,
	"se": true,
	"sw": true,
}

// Options controls optional normalization behaviour.
type Options struct {
	// AvoidRedundantStreetType drops a street type that already appears
	// as a word in the street name.
	AvoidRedundantStreetType bool
}

// Normalizer turns raw fragments into a canonical address.Address.
type Normalizer struct {
	tables  *reference.Tables
	grammar *grammar.Grammar
	Log     *debug.Logger
}

// New creates a normalizer over the given tables and grammar.
func New(t *reference.Tables, g *grammar.Grammar) *Normalizer {
	return &Normalizer{tables: t, grammar: g}
}

// Normalize canonicalizes the fragments of one match.
func (n *Normalizer) Normalize(frags grammar.Fragments, opts Options) address.Address {
	in := make(map[grammar.Field]string, len(frags))
	for field, value := range frags {
		if value = sanitize(value); value != "" {
			in[field] = value
		}
	}

	// Street types hidden in the street name ("State Highway 116").
	redundant := false
	if street, ok := in[grammar.Street]; ok && in[grammar.StreetType] == "" {
		if m, ok := n.grammar.Street().Leftmost(street); ok {
			if typ := sanitize(m[grammar.StreetType]); typ != "" {
				n.Log.Printf("inferred street type %q from %q", typ, street)
				in[grammar.StreetType] = typ
				redundant = true
			}
		}
	}

	unitCanonical := false
	if prefix, ok := in[grammar.UnitPrefix]; ok {
		if abbr, ok := n.tables.UnitAbbr(prefix); ok {
			in[grammar.UnitPrefix] = abbr
			unitCanonical = true
		}
	}

	for _, field := range []grammar.Field{grammar.StreetType, grammar.StreetType2} {
		if abbr, ok := n.tables.StreetTypeAbbr(in[field]); ok {
			in[field] = abbr
		}
	}
	for _, field := range []grammar.Field{grammar.Prefix, grammar.Suffix, grammar.Prefix2, grammar.Suffix2} {
		if abbr, ok := n.tables.DirectionalAbbr(in[field]); ok {
			in[field] = abbr
		}
	}
	if code, ok := n.tables.StateCode(in[grammar.State]); ok {
		in[grammar.State] = code
	}

	if opts.AvoidRedundantStreetType {
		for _, pair := range [][2]grammar.Field{
			{grammar.Street, grammar.StreetType},
			{grammar.Street2, grammar.StreetType2},
		} {
			street, typ := in[pair[0]], in[pair[1]]
			if street != "" && typ != "" && n.grammar.TypeAppearsIn(typ, street) {
				delete(in, pair[1])
			}
		}
	}

	if city, ok := in[grammar.City]; ok {
		in[grammar.City] = n.expandCityDirectional(city)
	}

	titled := []grammar.Field{grammar.Street, grammar.StreetType, grammar.Street2, grammar.StreetType2, grammar.City}
	if !unitCanonical {
		titled = append(titled, grammar.UnitPrefix)
	}
	for _, field := range titled {
		if v, ok := in[field]; ok {
			in[field] = titleCase(v)
		}
	}

	if in[grammar.Street2] != "" {
		n.unifyStreetTypes(in)
	}

	return address.Address{
		Number:              in[grammar.Number],
		Prefix:              in[grammar.Prefix],
		Street:              in[grammar.Street],
		StreetType:          in[grammar.StreetType],
		Suffix:              in[grammar.Suffix],
		UnitPrefix:          in[grammar.UnitPrefix],
		Unit:                in[grammar.Unit],
		City:                in[grammar.City],
		State:               in[grammar.State],
		PostalCode:          in[grammar.PostalCode],
		PostalCodeExt:       in[grammar.PostalCodeExt],
		Street2:             in[grammar.Street2],
		StreetType2:         in[grammar.StreetType2],
		Prefix2:             in[grammar.Prefix2],
		Suffix2:             in[grammar.Suffix2],
		RedundantStreetType: redundant,
	}
}

func sanitize(s string) string {
	return strings.TrimSpace(reStrip.ReplaceAllString(strings.TrimSpace(s), ""))
}

// expandCityDirectional replaces a leading direction code with its lower-case
// table word, so "E San Jose" becomes "east San Jose" here and "East San Jose"
// after title-casing. A lone directional is left alone.
func (n *Normalizer) expandCityDirectional(city string) string {
	tokens := strings.Fields(city)
	if len(tokens) < 2 {
		return city
	}
	if name, ok := n.tables.DirectionName(tokens[0]); ok {
		tokens[0] = name
	}
	return strings.Join(tokens, " ")
}

// unifyStreetTypes gives both streets of an intersection the same singular
// type when one is missing or they differ only by a plural ending.
func (n *Normalizer) unifyStreetTypes(in map[grammar.Field]string) {
	t1, t2 := in[grammar.StreetType], in[grammar.StreetType2]

	var unified string
	switch {
	case t1 != "" && t2 == "":
		unified = n.singular(t1)
	case t1 == "" && t2 != "":
		unified = n.singular(t2)
	case t1 != "" && t2 != "":
		s1, s2 := n.singular(t1), n.singular(t2)
		if !strings.EqualFold(s1, s2) {
			return
		}
		unified = s1
	default:
		return
	}

	in[grammar.StreetType] = unified
	in[grammar.StreetType2] = unified
}

func (n *Normalizer) singular(streetType string) string {
	for _, ending := range []string{"s", "es"} {
		if len(streetType) <= len(ending) || !strings.HasSuffix(strings.ToLower(streetType), ending) {
			continue
		}
		if abbr, ok := n.tables.StreetTypeAbbr(streetType[:len(streetType)-len(ending)]); ok {
			return titleCase(abbr)
		}
	}
	return streetType
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		lower := strings.ToLower(w)
		if upperTokens[lower] {
			words[i] = strings.ToUpper(w)
			continue
		}
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}

//go:build libpostal

package libpostal

import (
	postal "github.com/openvenues/gopostal/parser"
)

// Available reports whether Parse calls into libpostal.
const Available = true

// Parse runs libpostal's address parser over text.
func Parse(text string) ([]Component, error) {
	parsed := postal.ParseAddress(text)
	comps := make([]Component, 0, len(parsed))
	for _, c := range parsed {
		comps = append(comps, Component{Label: c.Label, Value: c.Value})
	}
	return comps, nil
}

// Package address defines the parsed address record and its display forms.
package address

import (
	"fmt"
	"strings"
)

// Address is a parsed US address. Absent components are empty strings.
// The record is a value: it is built once by the normalizer and never
// modified afterwards.
type Address struct {
	Number              string `json:"number,omitempty"`
	Prefix              string `json:"prefix,omitempty"`
	Street              string `json:"street,omitempty"`
	StreetType          string `json:"street_type,omitempty"`
	Suffix              string `json:"suffix,omitempty"`
	UnitPrefix          string `json:"unit_prefix,omitempty"`
	Unit                string `json:"unit,omitempty"`
	City                string `json:"city,omitempty"`
	State               string `json:"state,omitempty"`
	PostalCode          string `json:"postal_code,omitempty"`
	PostalCodeExt       string `json:"postal_code_ext,omitempty"`
	Street2             string `json:"street2,omitempty"`
	StreetType2         string `json:"street_type2,omitempty"`
	Prefix2             string `json:"prefix2,omitempty"`
	Suffix2             string `json:"suffix2,omitempty"`
	RedundantStreetType bool   `json:"redundant_street_type"`
}

// IsIntersection reports whether the record describes two crossing streets.
func (a Address) IsIntersection() bool {
	return a.Street2 != ""
}

// FullPostalCode returns "12345" or "12345-6789".
func (a Address) FullPostalCode() string {
	if a.PostalCode == "" {
		return ""
	}
	if a.PostalCodeExt != "" {
		return a.PostalCode + "-" + a.PostalCodeExt
	}
	return a.PostalCode
}

// StreetAddress1 is the number and street. For an intersection it is the
// same as Line1.
func (a Address) StreetAddress1() string {
	if a.IsIntersection() {
		return a.Line1()
	}
	streetType := a.StreetType
	if a.RedundantStreetType {
		streetType = ""
	}
	return join(" ", a.Number, a.Prefix, a.Street, streetType, a.Suffix)
}

// StreetAddress2 is the unit designator, e.g. "Ste 500" or "# 3206".
func (a Address) StreetAddress2() string {
	switch {
	case a.UnitPrefix != "":
		return join(" ", a.UnitPrefix, a.Unit)
	case a.Unit != "":
		return "# " + a.Unit
	}
	return ""
}

// Line1 is the first mailing line.
func (a Address) Line1() string {
	if a.IsIntersection() {
		return join(" ",
			a.Prefix, a.Street, a.StreetType, a.Suffix,
			"and",
			a.Prefix2, a.Street2, a.StreetType2, a.Suffix2)
	}
	return join(" ", a.StreetAddress1(), a.StreetAddress2())
}

// Line2 is "City, ST 12345-6789" with absent parts left out.
func (a Address) Line2() string {
	return join(" ", join(", ", a.City, a.State), a.FullPostalCode())
}

// FullStreetAddress joins the non-empty lines with ", ".
func (a Address) FullStreetAddress() string {
	return join(", ", a.Line1(), a.Line2())
}

func (a Address) String() string {
	return a.FullStreetAddress()
}

// Part names accepted by Format.
const (
	PartLine1          = "line1"
	PartLine2          = "line2"
	PartStreetAddress1 = "street_address_1"
	PartStreetAddress2 = "street_address_2"
	PartCityStateZip   = "city_state_zip"
	PartFull           = "full"
)

// Format renders one named part of the address.
func (a Address) Format(part string) (string, error) {
	switch part {
	case PartLine1:
		return a.Line1(), nil
	case PartLine2, PartCityStateZip:
		return a.Line2(), nil
	case PartStreetAddress1:
		return a.StreetAddress1(), nil
	case PartStreetAddress2:
		return a.StreetAddress2(), nil
	case PartFull, "":
		return a.FullStreetAddress(), nil
	}
	return "", fmt.Errorf("unknown address part %q", part)
}

// Fields returns the present components keyed by their snake_case names.
func (a Address) Fields() map[string]string {
	all := map[string]string{
		"number":          a.Number,
		"prefix":          a.Prefix,
		"street":          a.Street,
		"street_type":     a.StreetType,
		"suffix":          a.Suffix,
		"unit_prefix":     a.UnitPrefix,
		"unit":            a.Unit,
		"city":            a.City,
		"state":           a.State,
		"postal_code":     a.PostalCode,
		"postal_code_ext": a.PostalCodeExt,
		"street2":         a.Street2,
		"street_type2":    a.StreetType2,
		"prefix2":         a.Prefix2,
		"suffix2":         a.Suffix2,
	}
	fields := make(map[string]string, len(all))
	for k, v := range all {
		if v != "" {
			fields[k] = v
		}
	}
	return fields
}

// join concatenates the non-empty parts with sep.
func join(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

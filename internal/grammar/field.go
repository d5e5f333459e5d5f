package grammar

// Field identifies a captured address fragment. Capture group names in the
// compiled patterns must resolve to one of these.
type Field int

const (
	Number Field = iota
	Prefix
	Street
	StreetType
	Suffix
	UnitPrefix
	Unit
	City
	State
	PostalCode
	PostalCodeExt
	Street2
	StreetType2
	Prefix2
	Suffix2
)

var fieldNames = [...]string{
	Number:        "number",
	Prefix:        "prefix",
	Street:        "street",
	StreetType:    "street_type",
	Suffix:        "suffix",
	UnitPrefix:    "unit_prefix",
	Unit:          "unit",
	City:          "city",
	State:         "state",
	PostalCode:    "postal_code",
	PostalCodeExt: "postal_code_ext",
	Street2:       "street2",
	StreetType2:   "street_type2",
	Prefix2:       "prefix2",
	Suffix2:       "suffix2",
}

var fieldsByName = func() map[string]Field {
	m := make(map[string]Field, len(fieldNames))
	for f, name := range fieldNames {
		m[name] = Field(f)
	}
	return m
}()

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// FieldByName resolves a capture group name.
func FieldByName(name string) (Field, bool) {
	f, ok := fieldsByName[name]
	return f, ok
}

// Fragments holds the raw captured text per field. Fields that were not
// captured, or captured only whitespace, are absent.
type Fragments map[Field]string

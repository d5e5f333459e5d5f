package parser

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetsweeper/internal/address"
	"github.com/streetsweeper/internal/normalize"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewDefault()
	require.NoError(t, err)
	return p
}

func TestParseAddresses(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		input string
		line1 string
		line2 string
	}{
		{"1005 Gravenstein Hwy 95472", "1005 Gravenstein Hwy", "95472"},
		{"1005 Gravenstein Hwy, 95472", "1005 Gravenstein Hwy", "95472"},
		{"1005 Gravenstein Hwy N, 95472", "1005 Gravenstein Hwy N", "95472"},
		{"1005 Gravenstein Highway North, 95472", "1005 Gravenstein Hwy N", "95472"},
		{"1005 N Gravenstein Highway, Sebastopol, CA", "1005 N Gravenstein Hwy", "Sebastopol, CA"},
		{"1005 N Gravenstein Highway, Suite 500, Sebastopol, CA", "1005 N Gravenstein Hwy Ste 500", "Sebastopol, CA"},
		{"1005 N Gravenstein Hwy Suite 500 Sebastopol, CA", "1005 N Gravenstein Hwy Ste 500", "Sebastopol, CA"},
		{"1005 N Gravenstein Highway, Sebastopol, CA, 95472", "1005 N Gravenstein Hwy", "Sebastopol, CA 95472"},
		{"1005 N Gravenstein Highway Sebastopol CA 95472", "1005 N Gravenstein Hwy", "Sebastopol, CA 95472"},
		{"1005 Gravenstein Hwy N Sebastopol CA", "1005 Gravenstein Hwy N", "Sebastopol, CA"},
		{"1005 Gravenstein Hwy, N Sebastopol CA", "1005 Gravenstein Hwy", "North Sebastopol, CA"},
		{"115 Broadway San Francisco CA", "115 Broadway", "San Francisco, CA"},
		{"7800 Mill Station Rd, Sebastopol, CA 95472", "7800 Mill Station Rd", "Sebastopol, CA 95472"},
		{"7800 Mill Station Rd Sebastopol CA 95472", "7800 Mill Station Rd", "Sebastopol, CA 95472"},
		{"1005 State Highway 116 Sebastopol CA 95472", "1005 State Highway 116", "Sebastopol, CA 95472"},
		{"1600 Pennsylvania Ave. Washington DC", "1600 Pennsylvania Ave", "Washington, DC"},
		{"1600 Pennsylvania Avenue Washington DC", "1600 Pennsylvania Ave", "Washington, DC"},
		{"48S 400E, Salt Lake City UT", "48 S 400 E", "Salt Lake City, UT"},
		{"550 S 400 E #3206, Salt Lake City UT 84111", "550 S 400 E # 3206", "Salt Lake City, UT 84111"},
		{"6641 N 2200 W Apt D304 Park City, UT 84098", "6641 N 2200 W Apt D304", "Park City, UT 84098"},
		{"100 South St, Philadelphia, PA", "100 South St", "Philadelphia, PA"},
		{"100 S.E. Washington Ave, Minneapolis, MN", "100 SE Washington Ave", "Minneapolis, MN"},
		{"3813 1/2 Some Road, Los Angeles, CA", "3813 Some Rd", "Los Angeles, CA"},
		{"1 First St, e San Jose CA", "1 First St", "East San Jose, CA"},
		{"lt42 99 Some Road, Some City LA", "99 Some Rd Lot 42", "Some City, LA"},
		{"36401 County Road 43, Eaton, CO 80615", "36401 County Road 43", "Eaton, CO 80615"},
		{"1234 COUNTY HWY 60E, Town, CO 12345", "1234 County Hwy 60 E", "Town, CO 12345"},
		{"'45 Quaker Ave, Ste 105'", "45 Quaker Ave Ste 105", ""},
		{"2730 S Veitch St Apt 207, Arlington, VA 22206", "2730 S Veitch St Apt 207", "Arlington, VA 22206"},
		{"2730 S Veitch St #207, Arlington, VA 22206", "2730 S Veitch St # 207", "Arlington, VA 22206"},
		{"44 Canal Center Plaza Suite 500, Alexandria, VA 22314", "44 Canal Center Plz Ste 500", "Alexandria, VA 22314"},
		{"One East 161st Street, Bronx, NY 10451", "One East 161st St", "Bronx, NY 10451"},
		{"One East 161st Street Suite 10, Bronx, NY 10451", "One East 161st St Ste 10", "Bronx, NY 10451"},
		{"P.O. Box 280568 Queens Village, New York 11428", "PO Box 280568", "Queens Village, NY 11428"},
		{"PO BOX 280568 Queens Village, New York 11428", "PO Box 280568", "Queens Village, NY 11428"},
		{"PO 280568 Queens Village, New York 11428", "PO 280568", "Queens Village, NY 11428"},
		{"Two Pennsylvania Plaza New York, NY 10121-0091", "Two Pennsylvania Plz", "New York, NY 10121-0091"},
		{"1400 CONNECTICUT AVE NW, WASHINGTON, DC 20036", "1400 Connecticut Ave NW", "Washington, DC 20036"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			a, ok := p.Parse(tt.input, normalize.Options{})
			require.True(t, ok, "expected a match")
			assert.Equal(t, tt.line1, a.Line1())
			assert.Equal(t, tt.line2, a.Line2())
			assert.False(t, a.IsIntersection())
		})
	}
}

func TestParseComponents(t *testing.T) {
	p := newTestParser(t)

	a, ok := p.Parse("1005 N Gravenstein Highway, Suite 500, Sebastopol, CA 95472-1234", normalize.Options{})
	require.True(t, ok)
	assert.Equal(t, address.Address{
		Number:        "1005",
		Prefix:        "N",
		Street:        "Gravenstein",
		StreetType:    "Hwy",
		UnitPrefix:    "Ste",
		Unit:          "500",
		City:          "Sebastopol",
		State:         "CA",
		PostalCode:    "95472",
		PostalCodeExt: "1234",
	}, a)

	a, ok = p.Parse("One East 161st Street Suite 10, Bronx, NY 10451", normalize.Options{})
	require.True(t, ok)
	assert.Equal(t, "One East 161st St", a.StreetAddress1())
	assert.Equal(t, "Ste 10", a.StreetAddress2())

	a, ok = p.Parse("1005 State Highway 116 Sebastopol CA 95472", normalize.Options{})
	require.True(t, ok)
	assert.Equal(t, "State Highway 116", a.Street)
	assert.Equal(t, "Hwy", a.StreetType)
	assert.True(t, a.RedundantStreetType)

	a, ok = p.Parse("1005 Gravenstein Highway North, 95472", normalize.Options{})
	require.True(t, ok)
	assert.Equal(t, "Gravenstein", a.Street)
	assert.Equal(t, "Hwy", a.StreetType)
	assert.Equal(t, "N", a.Suffix)
}

func TestParseZipAndParts(t *testing.T) {
	p := newTestParser(t)

	a, ok := p.Parse("7800 Mill Station Rd Sebastopol CA 95472-1234", normalize.Options{})
	require.True(t, ok)
	assert.Equal(t, "7800 Mill Station Rd, Sebastopol, CA 95472-1234", a.String())
	assert.Equal(t, "95472-1234", a.FullPostalCode())

	a, ok = p.Parse("7800 Mill Station Rd Sebastopol CA 95472", normalize.Options{})
	require.True(t, ok)
	assert.Equal(t, "95472", a.FullPostalCode())

	a, ok = p.Parse("7800 Mill Station Rd Sebastopol CA", normalize.Options{})
	require.True(t, ok)
	assert.Equal(t, "", a.FullPostalCode())

	a, ok = p.Parse("7800 Mill Station Rd, Apt. 7B, Sebastopol, CA 95472", normalize.Options{})
	require.True(t, ok)
	assert.Equal(t, "7800 Mill Station Rd", a.StreetAddress1())
	assert.Equal(t, "Apt 7B", a.StreetAddress2())

	a, ok = p.Parse("7800 Mill Station Rd, Apartment. 7B, Sebastopol, CA 95472", normalize.Options{})
	require.True(t, ok)
	assert.Equal(t, "Apt 7B", a.StreetAddress2())

	a, ok = p.Parse("PO 7800 Sebastopol CA 95472-1234", normalize.Options{})
	require.True(t, ok)
	assert.Equal(t, "PO 7800", a.Line1())
	assert.Equal(t, "Sebastopol, CA 95472-1234", a.Line2())
}

func TestParseIntersections(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		input string
		line1 string
		line2 string
	}{
		{"Mission & Valencia San Francisco CA", "Mission and Valencia", "San Francisco, CA"},
		{"Mission & Valencia, San Francisco CA", "Mission and Valencia", "San Francisco, CA"},
		{"Mission St and Valencia St San Francisco CA", "Mission St and Valencia St", "San Francisco, CA"},
		{"Mission St & Valencia St San Francisco CA", "Mission St and Valencia St", "San Francisco, CA"},
		{"Hollywood Blvd and Vine St Los Angeles, CA", "Hollywood Blvd and Vine St", "Los Angeles, CA"},
		{"Mission and Valencia Sts San Francisco CA", "Mission St and Valencia St", "San Francisco, CA"},
		{"Mission and Valencia Sts. San Francisco CA", "Mission St and Valencia St", "San Francisco, CA"},
		{"Mission and Valencia Streets San Francisco CA", "Mission St and Valencia St", "San Francisco, CA"},
		{"Mission Avenue and Valencia Street San Francisco CA", "Mission Ave and Valencia St", "San Francisco, CA"},
		{"Mission & Valencia", "Mission and Valencia", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			a, ok := p.Parse(tt.input, normalize.Options{})
			require.True(t, ok, "expected a match")
			assert.True(t, a.IsIntersection())
			assert.Equal(t, tt.line1, a.Line1())
			assert.Equal(t, tt.line1, a.StreetAddress1())
			assert.Equal(t, tt.line2, a.Line2())
		})
	}

	a, ok := p.Parse("Mission and Valencia Streets San Francisco CA", normalize.Options{})
	require.True(t, ok)
	assert.Equal(t, "St", a.StreetType)
	assert.Equal(t, "St", a.StreetType2)
}

func TestParseInformalAddress(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		input string
		line1 string
		line2 string
	}{
		{"#42 233 S Wacker Dr 60606", "233 S Wacker Dr # 42", "60606"},
		{"Apt. 42, 233 S Wacker Dr 60606", "233 S Wacker Dr Apt 42", "60606"},
		{"2730 S Veitch St #207", "2730 S Veitch St # 207", ""},
		{"321 S. Washington", "321 S Washington", ""},
		{"233 S Wacker Dr lobby 60606", "233 S Wacker Dr Lbby", "60606"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			a, ok := p.ParseInformalAddress(tt.input, normalize.Options{})
			require.True(t, ok, "expected a match")
			assert.Equal(t, tt.line1, a.Line1())
			assert.Equal(t, tt.line2, a.Line2())
		})
	}
}

func TestParseNoMatch(t *testing.T) {
	p := newTestParser(t)

	for _, input := range []string{
		"", "   ", "hello world", "!!!",
		"Main Street Springfield",
		"Apt 4 Elm St",
		"Broadway Ave, New York NY",
	} {
		t.Run(input, func(t *testing.T) {
			_, ok := p.Parse(input, normalize.Options{})
			assert.False(t, ok)
		})
	}

	// The direct informal entry point still accepts a typed street without
	// a number.
	a, ok := p.ParseInformalAddress("Main Street Springfield", normalize.Options{})
	require.True(t, ok)
	assert.Equal(t, "", a.Number)

	_, ok = p.ParsePOAddress("1005 Gravenstein Hwy 95472", normalize.Options{})
	assert.False(t, ok)
	_, ok = p.ParseAddress("P.O. Box 280568", normalize.Options{})
	assert.False(t, ok)
	_, ok = p.ParseIntersection("1005 Gravenstein Hwy 95472", normalize.Options{})
	assert.False(t, ok)
}

func TestParseAvoidRedundantStreetType(t *testing.T) {
	p := newTestParser(t)

	a, ok := p.Parse("1005 State Highway 116 Sebastopol CA 95472", normalize.Options{AvoidRedundantStreetType: true})
	require.True(t, ok)
	assert.Equal(t, "", a.StreetType)
	assert.Equal(t, "1005 State Highway 116", a.Line1())
}

func TestParseTransliterates(t *testing.T) {
	p := newTestParser(t)

	a, ok := p.Parse("1005 Gravenstéin Hwy, Sébastopol, CA 95472", normalize.Options{})
	require.True(t, ok)
	assert.Equal(t, "Gravenstein", a.Street)
	assert.Equal(t, "Sebastopol", a.City)
}

func TestParseShape(t *testing.T) {
	p := newTestParser(t)

	a, err := p.ParseShape("2730 S Veitch St #207", ShapeInformal, normalize.Options{})
	require.NoError(t, err)
	assert.Equal(t, "2730 S Veitch St # 207", a.Line1())

	_, err = p.ParseShape("hello world", ShapeAuto, normalize.Options{})
	assert.True(t, errors.Is(err, ErrNoMatch))

	_, err = p.ParseShape("Mission & Valencia", ShapePOBox, normalize.Options{})
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Contains(t, err.Error(), "po")

	_, err = p.ParseShape("Mission & Valencia", Shape(42), normalize.Options{})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoMatch))
}

func TestShapeByName(t *testing.T) {
	tests := []struct {
		name    string
		want    Shape
		wantErr bool
	}{
		{"", ShapeAuto, false},
		{"auto", ShapeAuto, false},
		{"standard", ShapeStandard, false},
		{"po", ShapePOBox, false},
		{"informal", ShapeInformal, false},
		{"intersection", ShapeIntersection, false},
		{"county", ShapeAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShapeByName(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustShape(t, got.String()))
		})
	}
}

func mustShape(t *testing.T, name string) Shape {
	t.Helper()
	s, err := ShapeByName(name)
	require.NoError(t, err)
	return s
}

func TestParseRoundTrip(t *testing.T) {
	p := newTestParser(t)

	for _, input := range []string{
		"1005 N Gravenstein Highway Sebastopol CA 95472",
		"1005 N Gravenstein Highway, Suite 500, Sebastopol, CA 95472-1234",
		"550 S 400 E #3206, Salt Lake City UT 84111",
		"P.O. Box 280568 Queens Village, New York 11428",
		"lt42 99 Some Road, Some City LA",
		"Mission & Valencia San Francisco CA",
		"Mission Avenue and Valencia Street San Francisco CA",
	} {
		t.Run(input, func(t *testing.T) {
			first, ok := p.Parse(input, normalize.Options{})
			require.True(t, ok, "expected a match")

			full := first.FullStreetAddress()
			second, ok := p.Parse(full, normalize.Options{})
			require.True(t, ok, "expected %q to parse again", full)

			assert.Equal(t, first.Line1(), second.Line1())
			assert.Equal(t, first.Line2(), second.Line2())
			assert.Equal(t, full, second.FullStreetAddress())
		})
	}
}

func TestParseConcurrent(t *testing.T) {
	p := newTestParser(t)

	inputs := []string{
		"1005 N Gravenstein Highway Sebastopol CA 95472",
		"550 S 400 E #3206, Salt Lake City UT 84111",
		"P.O. Box 280568 Queens Village, New York 11428",
		"lt42 99 Some Road, Some City LA",
		"Mission & Valencia San Francisco CA",
		"One East 161st Street Suite 10, Bronx, NY 10451",
		"hello world",
	}

	type result struct {
		a  address.Address
		ok bool
	}
	want := make([]result, len(inputs))
	for i, input := range inputs {
		want[i].a, want[i].ok = p.Parse(input, normalize.Options{})
	}

	const workers = 8
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for round := 0; round < 20; round++ {
				for i := range inputs {
					// Stagger the order so goroutines hit different inputs at once.
					idx := (i + w + round) % len(inputs)
					a, ok := p.Parse(inputs[idx], normalize.Options{})
					if ok != want[idx].ok || a != want[idx].a {
						t.Errorf("worker %d: %q parsed to %+v (%v), want %+v (%v)",
							w, inputs[idx], a, ok, want[idx].a, want[idx].ok)
						return
					}
				}
			}
		}(w)
	}
	wg.Wait()
}

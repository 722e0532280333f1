// Package scale maps population and density values onto the ten-color
// choropleth bands and builds the legend.
package scale

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kartenwerk/gemeindekarte/internal/geo"
)

// Mode selects which feature value drives the coloring.
type Mode string

const (
	ModePopulation Mode = "pop"
	ModeDensity    Mode = "density"
)

// UnknownColor marks features without a usable value. It is distinct from
// all ten data colors.
const UnknownColor = "#9e9e9e"

// colors is the fixed ten-band ramp, lightest to darkest.
var colors = [10]string{
	"#ffffcc", "#ffeda0", "#fed976", "#feb24c", "#fd8d3c",
	"#fc4e2a", "#e31a1c", "#bd0026", "#800026", "#4a0019",
}

var (
	popBreaks     = [9]float64{5000, 10000, 20000, 30000, 40000, 50000, 60000, 80000, 100000}
	densityBreaks = [9]float64{50, 100, 200, 400, 800, 1200, 2000, 3000, 4000}
)

func breaksFor(m Mode) [9]float64 {
	if m == ModeDensity {
		return densityBreaks
	}
	return popBreaks
}

// Value extracts the feature value a mode colors by. nil means unknown.
func Value(m Mode, f *geo.Feature) *float64 {
	if m == ModeDensity {
		return f.Density
	}
	if f.Pop == nil {
		return nil
	}
	v := float64(*f.Pop)
	return &v
}

// Color picks the band for a value. Breakpoints are inclusive upper bounds:
// a population of exactly 5000 lands in the first band, 5001 in the second.
// Unknown or negative values get the neutral gray.
func Color(m Mode, v *float64) string {
	if v == nil || *v < 0 {
		return UnknownColor
	}

	breaks := breaksFor(m)
	for i, b := range breaks {
		if *v <= b {
			return colors[i]
		}
	}
	return colors[len(colors)-1]
}

// Entry is one legend row.
type Entry struct {
	Color string
	Label string
}

// german renders numbers with dot-grouped thousands ("5.000").
var german = message.NewPrinter(language.German)

// FormatNumber renders a value rounded to the nearest integer with German
// thousands separators.
func FormatNumber(v float64) string {
	return german.Sprintf("%d", int64(math.Round(v)))
}

// Legend enumerates the bands of a mode with localized labels matching the
// breakpoints used by Color.
func Legend(m Mode) []Entry {
	breaks := breaksFor(m)
	entries := make([]Entry, 0, len(colors))

	prev := int64(0)
	for i, b := range breaks {
		upper := int64(b)
		var label string
		if i == 0 {
			label = german.Sprintf("≤ %d", upper)
		} else {
			label = german.Sprintf("%d – %d", prev+1, upper)
		}
		entries = append(entries, Entry{Color: colors[i], Label: label})
		prev = upper
	}

	entries = append(entries, Entry{
		Color: colors[len(colors)-1],
		Label: german.Sprintf("> %d", int64(breaks[len(breaks)-1])),
	})
	return entries
}

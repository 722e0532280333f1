package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartenwerk/gemeindekarte/internal/geo"
)

func fv(v float64) *float64 { return &v }

func TestColorInclusiveUpperBounds(t *testing.T) {
	// A population of exactly 5000 sits in the first band, 5001 in the
	// second.
	assert.Equal(t, colors[0], Color(ModePopulation, fv(5000)))
	assert.Equal(t, colors[1], Color(ModePopulation, fv(5001)))
	assert.Equal(t, colors[8], Color(ModePopulation, fv(100000)))
	assert.Equal(t, colors[9], Color(ModePopulation, fv(100001)))
	assert.Equal(t, colors[0], Color(ModePopulation, fv(0)))
}

func TestColorDensityMode(t *testing.T) {
	assert.Equal(t, colors[0], Color(ModeDensity, fv(50)))
	assert.Equal(t, colors[1], Color(ModeDensity, fv(51)))
	assert.Equal(t, colors[9], Color(ModeDensity, fv(4001)))
}

func TestColorUnknown(t *testing.T) {
	assert.Equal(t, UnknownColor, Color(ModePopulation, nil))
	assert.Equal(t, UnknownColor, Color(ModePopulation, fv(-1)))

	for _, c := range colors {
		assert.NotEqual(t, UnknownColor, c, "the neutral gray is distinct from every data color")
	}
}

func TestValue(t *testing.T) {
	p := int64(1200)
	d := 300.0
	f := geo.Feature{Pop: &p, Density: &d}

	v := Value(ModePopulation, &f)
	require.NotNil(t, v)
	assert.Equal(t, 1200.0, *v)

	v = Value(ModeDensity, &f)
	require.NotNil(t, v)
	assert.Equal(t, 300.0, *v)

	empty := geo.Feature{}
	assert.Nil(t, Value(ModePopulation, &empty))
	assert.Nil(t, Value(ModeDensity, &empty))
}

func TestFormatNumberGermanGrouping(t *testing.T) {
	assert.Equal(t, "5.000", FormatNumber(5000))
	assert.Equal(t, "1.512.491", FormatNumber(1512491))
	assert.Equal(t, "401", FormatNumber(400.7), "rounded to the nearest integer")
	assert.Equal(t, "12", FormatNumber(12))
}

func TestLegend(t *testing.T) {
	entries := Legend(ModePopulation)
	require.Len(t, entries, 10)

	assert.Equal(t, colors[0], entries[0].Color)
	assert.Equal(t, "≤ 5.000", entries[0].Label)
	assert.Equal(t, "5.001 – 10.000", entries[1].Label)
	assert.Equal(t, "80.001 – 100.000", entries[8].Label)
	assert.Equal(t, "> 100.000", entries[9].Label)

	density := Legend(ModeDensity)
	require.Len(t, density, 10)
	assert.Equal(t, "≤ 50", density[0].Label)
	assert.Equal(t, "3.001 – 4.000", density[8].Label)
	assert.Equal(t, "> 4.000", density[9].Label)
}

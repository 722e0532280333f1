package processor

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawFeature(props geojson.Properties) *geojson.Feature {
	f := geojson.NewFeature(orb.Point{10.0, 51.0})
	f.Properties = props
	return f
}

func TestBuildCountyIndex(t *testing.T) {
	kreise := []*geojson.Feature{
		rawFeature(geojson.Properties{"ARS": "01051", "GEN": "Dithmarschen", "BEZ": "Kreis"}),
		rawFeature(geojson.Properties{"ARS": "09162", "GEN": "München", "BEZ": "Kreisfreie Stadt"}),
		rawFeature(geojson.Properties{"ARS": "", "GEN": "Kaputt"}),   // no key
		rawFeature(geojson.Properties{"ARS": "05111", "GEN": ""}),    // no name
	}

	idx := BuildCountyIndex(kreise)
	require.Len(t, idx, 2)
	assert.Equal(t, County{Name: "Dithmarschen", Classification: "Kreis"}, idx["01051"])
	assert.Equal(t, County{Name: "München", Classification: "Kreisfreie Stadt"}, idx["09162"])
}

func TestBuildGemeindenJoin(t *testing.T) {
	counties := map[string]County{
		"01051": {Name: "Dithmarschen", Classification: "Kreis"},
		"09162": {Name: "München", Classification: "Kreisfreie Stadt"},
		"08111": {Name: "Stuttgart", Classification: "Stadtkreis"},
	}

	gemeinden := []*geojson.Feature{
		rawFeature(geojson.Properties{
			"AGS": "01051044", "ARS": "010510044044", "GEN": "Heide",
			"EWZ": "21,852", "KFL": 31.95,
		}),
		rawFeature(geojson.Properties{
			// Numeric AGS dropped its leading zero upstream.
			"AGS": float64(9162000), "ARS": "091620000000", "GEN": "München",
			"EWZ": float64(1512491), "KFL": 310.7,
		}),
		rawFeature(geojson.Properties{
			"AGS": "08111000", "ARS": "081110000000", "GEN": "Stuttgart",
			"EWZ": "632,865", "KFL": "207.33",
		}),
		rawFeature(geojson.Properties{
			// Unknown county key, unparsable population.
			"AGS": "16056000", "ARS": "160560000000", "GEN": "Eisenach",
			"EWZ": "unbekannt",
		}),
		rawFeature(geojson.Properties{"GEN": "Namenlos"}), // no AGS, skipped
	}

	c := BuildGemeinden(gemeinden, counties)
	require.Len(t, c.Features, 4)

	heide := c.Features[0]
	assert.Equal(t, "01051044", heide.AGS)
	assert.Equal(t, "Dithmarschen", heide.County)
	require.NotNil(t, heide.Pop)
	assert.Equal(t, int64(21852), *heide.Pop)
	require.NotNil(t, heide.Density)
	assert.InDelta(t, 21852.0/31.95, *heide.Density, 1e-9)

	muc := c.Features[1]
	assert.Equal(t, "09162000", muc.AGS, "numeric identifier is zero-padded back to 8 chars")
	assert.Equal(t, "München", muc.County, "kreisfreie Stadt is its own county")

	stuttgart := c.Features[2]
	assert.Equal(t, "Stuttgart", stuttgart.County, "Stadtkreis counts as kreisfrei")
	require.NotNil(t, stuttgart.AreaKm2)
	assert.InDelta(t, 207.33, *stuttgart.AreaKm2, 1e-9)

	eisenach := c.Features[3]
	assert.Empty(t, eisenach.County, "unknown county key leaves the field empty")
	assert.Nil(t, eisenach.Pop)
	assert.Nil(t, eisenach.Density)
}

func TestMissingARSNeverJoins(t *testing.T) {
	// A county without an ARS must not be indexed at all; padding an empty
	// key would file it under "00000".
	kreise := []*geojson.Feature{
		rawFeature(geojson.Properties{"GEN": "Geisterkreis", "BEZ": "Kreis"}),
	}
	assert.Empty(t, BuildCountyIndex(kreise))

	// A municipality without an ARS must not resolve a county either, even
	// if something managed to occupy the all-zero key.
	gemeinden := []*geojson.Feature{
		rawFeature(geojson.Properties{"AGS": "01001000", "GEN": "Flensburg"}),
	}
	counties := map[string]County{
		"00000": {Name: "Geisterkreis", Classification: "Kreis"},
	}

	c := BuildGemeinden(gemeinden, counties)
	require.Len(t, c.Features, 1)
	assert.Empty(t, c.Features[0].County)
}

func TestDensityReproducible(t *testing.T) {
	// Density must be derivable from the stored pop/area alone.
	gemeinden := []*geojson.Feature{
		rawFeature(geojson.Properties{
			"AGS": "01001000", "ARS": "010010000000", "GEN": "Flensburg",
			"EWZ": float64(92550), "KFL": float64(56.73),
		}),
	}

	c := BuildGemeinden(gemeinden, nil)
	require.Len(t, c.Features, 1)
	f := c.Features[0]
	require.NotNil(t, f.Density)
	assert.Equal(t, float64(*f.Pop) / *f.AreaKm2, *f.Density)
}

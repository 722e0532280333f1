// Package processor turns raw WFS features into the static files the map
// viewer loads.
package processor

import (
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	"github.com/kartenwerk/gemeindekarte/internal/geo"
)

// Property names used by the BKG VG250 administrative area datasets.
const (
	propName = "GEN" // display name
	propBez  = "BEZ" // classification, e.g. "Kreisfreie Stadt"
	propAGS  = "AGS"
	propARS  = "ARS"
	propPop  = "EWZ" // population
	propArea = "KFL" // cadastral area in km2
)

const (
	agsWidth       = 8  // municipality AGS
	arsWidth       = 12 // municipality ARS
	countyKeyWidth = 5  // county-level ARS prefix
)

// County carries the fields joined onto municipalities.
type County struct {
	Name           string
	Classification string
}

// BuildCountyIndex maps the 5-character ARS of every county feature to its
// name and classification.
func BuildCountyIndex(feats []*geojson.Feature) map[string]County {
	idx := make(map[string]County, len(feats))
	for _, f := range feats {
		// Reject before padding: padding an empty ARS would fabricate a
		// "00000" key that keyless municipalities then join against.
		ars := geo.StringProp(f.Properties, propARS)
		name := geo.StringProp(f.Properties, propName)
		if ars == "" || name == "" {
			continue
		}

		ars = geo.PadID(ars, countyKeyWidth)
		if len(ars) > countyKeyWidth {
			ars = ars[:countyKeyWidth]
		}

		idx[ars] = County{
			Name:           name,
			Classification: geo.StringProp(f.Properties, propBez),
		}
	}
	return idx
}

// kreisfrei reports whether a county classification marks an independent
// city, which is its own county-equivalent.
func kreisfrei(bez string) bool {
	b := strings.ToLower(bez)
	return strings.Contains(b, "kreisfrei") || strings.Contains(b, "stadtkreis")
}

// BuildGemeinden joins county names onto raw municipality features and
// computes population density. The county is found by truncating the
// municipality's 12-character ARS to the 5-character county key; kreisfreie
// cities get their own name as county.
func BuildGemeinden(feats []*geojson.Feature, counties map[string]County) geo.Collection {
	c := geo.Collection{Features: make([]geo.Feature, 0, len(feats))}

	for _, raw := range feats {
		ags := geo.StringProp(raw.Properties, propAGS)
		name := geo.StringProp(raw.Properties, propName)
		if ags == "" || name == "" {
			log.Warn().
				Str("ags", ags).
				Str("name", name).
				Msg("Skipping feature without identifier or name")
			continue
		}

		f := geo.Feature{
			AGS:      geo.PadID(ags, agsWidth),
			Name:     name,
			Kind:     geo.KindGemeinde,
			Geometry: raw.Geometry,
		}

		if rawARS := geo.StringProp(raw.Properties, propARS); rawARS != "" {
			ars := geo.PadID(rawARS, arsWidth)
			if county, ok := counties[ars[:countyKeyWidth]]; ok {
				if kreisfrei(county.Classification) {
					f.County = name
				} else {
					f.County = county.Name
				}
			}
		}

		if v, ok := raw.Properties[propPop]; ok {
			if n, ok := geo.ParseNumber(v); ok && n >= 0 {
				p := int64(n)
				f.Pop = &p
			}
		}
		if v, ok := raw.Properties[propArea]; ok {
			if n, ok := geo.ParseNumber(v); ok && n > 0 {
				a := n
				f.AreaKm2 = &a
			}
		}
		f.ComputeDensity()

		c.Features = append(c.Features, f)
	}

	return c
}

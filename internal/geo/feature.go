// Package geo defines the feature schema shared by the producer, the
// splitter and the presentation layer, and the coercion applied to loosely
// typed GeoJSON at the load boundary.
package geo

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Kind distinguishes the two feature datasets.
type Kind string

const (
	KindGemeinde Kind = "gemeinde"
	KindOrtsteil Kind = "ortsteil"
)

// Feature is one municipality or one sub-municipal district. Optional
// statistics are pointers; nil means unknown.
type Feature struct {
	AGS      string
	Name     string
	County   string
	Pop      *int64
	AreaKm2  *float64
	Density  *float64
	Kind     Kind
	Rank     int // presentation only, never persisted; 0 = unranked
	Geometry orb.Geometry
}

// Collection is an ordered sequence of features. Order is insertion order
// from the source; the presentation layer re-sorts copies for display.
type Collection struct {
	Features []Feature
}

// ComputeDensity fills Density from Pop and AreaKm2 when it is missing.
// The producer calls it once; the presentation layer calls it again for
// externally maintained data that ships without the field.
func (f *Feature) ComputeDensity() {
	if f.Density != nil || f.Pop == nil || f.AreaKm2 == nil || *f.AreaKm2 <= 0 {
		return
	}
	d := float64(*f.Pop) / *f.AreaKm2
	f.Density = &d
}

// StatePrefix returns the two leading identifier characters, the federal
// state code for German administrative identifiers.
func (f *Feature) StatePrefix() string {
	if len(f.AGS) < 2 {
		return f.AGS
	}
	return f.AGS[:2]
}

// PadID left-pads an identifier with zeros to the given width. Sources emit
// identifiers as numbers now and then, which drops leading zeros.
func PadID(id string, width int) string {
	id = strings.TrimSpace(id)
	for len(id) < width {
		id = "0" + id
	}
	return id
}

// ParseNumber coerces a raw JSON property value that is either already
// numeric or a comma-grouped numeric string ("1,234,567"). A value that
// cannot be parsed reports ok=false and is treated as absent upstream.
func ParseNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// StringProp reads a property as a string, stringifying integral numeric
// values so numeric identifiers survive.
func StringProp(props geojson.Properties, key string) string {
	switch v := props[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// DecodeCollection parses a GeoJSON feature collection and coerces it into
// the typed schema. Features carrying no identifier and no name are dropped;
// malformed numeric fields become absent values.
func DecodeCollection(data []byte, fallback Kind) (Collection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return Collection{}, err
	}
	return FromFeatureCollection(fc, fallback), nil
}

// FromFeatureCollection coerces already parsed GeoJSON features.
func FromFeatureCollection(fc *geojson.FeatureCollection, fallback Kind) Collection {
	c := Collection{Features: make([]Feature, 0, len(fc.Features))}
	for _, raw := range fc.Features {
		f, ok := convert(raw, fallback)
		if !ok {
			continue
		}
		c.Features = append(c.Features, f)
	}
	return c
}

func convert(raw *geojson.Feature, fallback Kind) (Feature, bool) {
	props := raw.Properties

	f := Feature{Kind: fallback, Geometry: raw.Geometry}
	if k := Kind(StringProp(props, "kind")); k == KindGemeinde || k == KindOrtsteil {
		f.Kind = k
	}

	id := StringProp(props, "ags")
	if id == "" {
		id = StringProp(props, "id")
	}
	if id == "" {
		if s, ok := raw.ID.(string); ok {
			id = s
		}
	}
	f.AGS = id
	f.Name = StringProp(props, "name")
	if f.AGS == "" && f.Name == "" {
		return Feature{}, false
	}

	f.County = StringProp(props, "county")
	if f.County == "" {
		f.County = StringProp(props, "parent")
	}

	if v, ok := props["pop"]; ok {
		if n, ok := ParseNumber(v); ok && n >= 0 {
			p := int64(n)
			f.Pop = &p
		}
	}
	if v, ok := props["area_km2"]; ok {
		if n, ok := ParseNumber(v); ok && n > 0 {
			a := n
			f.AreaKm2 = &a
		}
	}
	if v, ok := props["density"]; ok {
		if n, ok := ParseNumber(v); ok && n >= 0 {
			d := n
			f.Density = &d
		}
	}

	return f, true
}

// ToFeatureCollection converts back to GeoJSON for serialization. Rank is a
// presentation artifact and never persisted.
func (c Collection) ToFeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range c.Features {
		f := &c.Features[i]

		gf := geojson.NewFeature(f.Geometry)
		gf.Properties = geojson.Properties{
			"ags":  f.AGS,
			"name": f.Name,
			"kind": string(f.Kind),
		}
		if f.County != "" {
			gf.Properties["county"] = f.County
		}
		if f.Pop != nil {
			gf.Properties["pop"] = *f.Pop
		}
		if f.AreaKm2 != nil {
			gf.Properties["area_km2"] = *f.AreaKm2
		}
		if f.Density != nil {
			gf.Properties["density"] = *f.Density
		}
		fc.Append(gf)
	}
	return fc
}

// Encode marshals the collection as a GeoJSON document.
func (c Collection) Encode() ([]byte, error) {
	return json.Marshal(c.ToFeatureCollection())
}

// Package atlas holds the presentation state and its derived views. Every
// view is recomputed from the inputs on each call; nothing is cached, so a
// projection can never drift from the state that produced it.
package atlas

import (
	"sort"

	"github.com/paulmach/orb"

	"github.com/kartenwerk/gemeindekarte/internal/geo"
	"github.com/kartenwerk/gemeindekarte/internal/scale"
)

// boundsPadding widens a fitted bound by 20% per side.
const boundsPadding = 0.2

// State owns the two loaded datasets and the UI inputs. Toggling a dataset
// off hides it from every view but keeps the data, so re-enabling needs no
// new fetch.
type State struct {
	Gemeinden geo.Collection
	Ortsteile geo.Collection

	Query         string
	ShowGemeinden bool
	ShowOrtsteile bool
	Mode          scale.Mode
}

// Merged concatenates both datasets into a fresh slice and fills in any
// missing densities. The underlying collections stay untouched.
func (s *State) Merged() []geo.Feature {
	out := make([]geo.Feature, 0, len(s.Gemeinden.Features)+len(s.Ortsteile.Features))
	out = append(out, s.Gemeinden.Features...)
	out = append(out, s.Ortsteile.Features...)
	for i := range out {
		out[i].ComputeDensity()
	}
	return out
}

// Rank stable-sorts by population descending, unknown population last, and
// assigns dense ranks 1..N over the known-population subset. Ties keep
// their original relative order; unknown population is never ranked.
func Rank(feats []geo.Feature) []geo.Feature {
	out := make([]geo.Feature, len(feats))
	copy(out, feats)

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Pop, out[j].Pop
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		default:
			return *pi > *pj
		}
	})

	rank := 0
	for i := range out {
		if out[i].Pop == nil {
			out[i].Rank = 0
			continue
		}
		rank++
		out[i].Rank = rank
	}

	return out
}

// Ranked is the merged sequence with ranks assigned.
func (s *State) Ranked() []geo.Feature {
	return Rank(s.Merged())
}

// ByKind filters the ranked sequence down to one dataset, order preserved.
func (s *State) ByKind(k geo.Kind) []geo.Feature {
	ranked := s.Ranked()
	out := make([]geo.Feature, 0, len(ranked))
	for _, f := range ranked {
		if f.Kind == k {
			out = append(out, f)
		}
	}
	return out
}

// Visible returns the ranked features of every enabled layer, for the map.
func (s *State) Visible() []geo.Feature {
	ranked := s.Ranked()
	out := make([]geo.Feature, 0, len(ranked))
	for _, f := range ranked {
		if f.Kind == geo.KindGemeinde && !s.ShowGemeinden {
			continue
		}
		if f.Kind == geo.KindOrtsteil && !s.ShowOrtsteile {
			continue
		}
		out = append(out, f)
	}
	return out
}

// ActiveKind decides which dataset the searchable list targets. Exactly one
// dataset is active: gemeinden take precedence when both layers are visible.
func (s *State) ActiveKind() (geo.Kind, bool) {
	switch {
	case s.ShowGemeinden:
		return geo.KindGemeinde, true
	case s.ShowOrtsteile:
		return geo.KindOrtsteil, true
	default:
		return "", false
	}
}

// ActiveList is the searchable list: the active dataset filtered by the
// query, still in population-descending order with ranks retained.
func (s *State) ActiveList() []geo.Feature {
	kind, ok := s.ActiveKind()
	if !ok {
		return nil
	}
	return Filter(s.ByKind(kind), s.Query)
}

// FitBounds returns the padded geometric bound of the first feature
// matching a non-empty query, for the map to fit.
func (s *State) FitBounds() (orb.Bound, bool) {
	if s.Query == "" {
		return orb.Bound{}, false
	}
	list := s.ActiveList()
	if len(list) == 0 || list[0].Geometry == nil {
		return orb.Bound{}, false
	}
	return PadBound(list[0].Geometry.Bound(), boundsPadding), true
}

// PadBound expands a bound by the given factor per side.
func PadBound(b orb.Bound, factor float64) orb.Bound {
	dx := (b.Max[0] - b.Min[0]) * factor
	dy := (b.Max[1] - b.Min[1]) * factor
	return orb.Bound{
		Min: orb.Point{b.Min[0] - dx, b.Min[1] - dy},
		Max: orb.Point{b.Max[0] + dx, b.Max[1] + dy},
	}
}

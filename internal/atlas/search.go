package atlas

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/kartenwerk/gemeindekarte/internal/geo"
)

// Normalize lowercases, folds German umlauts to their ae/oe/ue/ss spellings
// and strips remaining combining marks, so "muenchen" matches "München" and
// "Lübeck" matches "lubeck" as well as "luebeck".
func Normalize(s string) string {
	var folded strings.Builder
	folded.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'ä':
			folded.WriteString("ae")
		case 'ö':
			folded.WriteString("oe")
		case 'ü':
			folded.WriteString("ue")
		case 'ß':
			folded.WriteString("ss")
		default:
			folded.WriteRune(r)
		}
	}

	var out strings.Builder
	out.Grow(folded.Len())
	for _, r := range norm.NFD.String(folded.String()) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// Filter applies a case- and diacritic-insensitive substring match over
// name, county and identifier. An empty query passes everything through
// unchanged.
func Filter(feats []geo.Feature, query string) []geo.Feature {
	q := Normalize(strings.TrimSpace(query))
	if q == "" {
		return feats
	}

	out := make([]geo.Feature, 0, len(feats))
	for _, f := range feats {
		if strings.Contains(Normalize(f.Name), q) ||
			strings.Contains(Normalize(f.County), q) ||
			strings.Contains(f.AGS, q) {
			out = append(out, f)
		}
	}
	return out
}

package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartenwerk/gemeindekarte/internal/geo"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"München", "muenchen"},
		{"GRÖSSENWAHN", "groessenwahn"},
		{"Straße", "strasse"},
		{"Lübeck", "luebeck"},
		{"Châteaux", "chateaux"}, // combining marks stripped
		{"plain", "plain"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestFilter(t *testing.T) {
	feats := []geo.Feature{
		{AGS: "09162000", Name: "München", County: "München"},
		{AGS: "09184137", Name: "Garching", County: "München"},
		{AGS: "01001000", Name: "Flensburg", County: "Flensburg"},
	}

	t.Run("diacritic insensitive name match", func(t *testing.T) {
		got := Filter(feats, "muenchen")
		require.Len(t, got, 2, "matches name and county")
		assert.Equal(t, "München", got[0].Name)
		assert.Equal(t, "Garching", got[1].Name)
	})

	t.Run("identifier match", func(t *testing.T) {
		got := Filter(feats, "09184")
		require.Len(t, got, 1)
		assert.Equal(t, "Garching", got[0].Name)
	})

	t.Run("empty query returns everything", func(t *testing.T) {
		assert.Len(t, Filter(feats, ""), 3)
		assert.Len(t, Filter(feats, "   "), 3)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, Filter(feats, "hamburg"))
	})
}

package processor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartenwerk/gemeindekarte/internal/geo"
)

func testCollection() geo.Collection {
	mk := func(ags, name string) geo.Feature {
		return geo.Feature{
			AGS:      ags,
			Name:     name,
			Kind:     geo.KindGemeinde,
			Geometry: orb.Point{10.0, 51.0},
		}
	}
	return geo.Collection{Features: []geo.Feature{
		mk("09162000", "München"),
		mk("01001000", "Flensburg"),
		mk("09184137", "Garching"),
		mk("01051044", "Heide"),
		mk("16056000", "Eisenach"),
	}}
}

func TestPartition(t *testing.T) {
	parts := Partition(testCollection())

	require.Len(t, parts, 3)
	assert.Equal(t, []string{"01", "09", "16"}, SortedKeys(parts))

	// Order within each partition follows input order.
	bayern := parts["09"]
	require.Len(t, bayern.Features, 2)
	assert.Equal(t, "München", bayern.Features[0].Name)
	assert.Equal(t, "Garching", bayern.Features[1].Name)
}

func TestPartitionRoundTrip(t *testing.T) {
	original := testCollection()
	parts := Partition(original)

	// Reassembling all partitions in sorted key order yields the original
	// multiset, order preserved within each partition.
	var reassembled []string
	for _, key := range SortedKeys(parts) {
		for _, f := range parts[key].Features {
			reassembled = append(reassembled, f.AGS)
		}
	}
	assert.ElementsMatch(t,
		[]string{"09162000", "01001000", "09184137", "01051044", "16056000"},
		reassembled)
	assert.Equal(t,
		[]string{"01001000", "01051044", "09162000", "09184137", "16056000"},
		reassembled)
}

func TestWriteChunks(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chunks")
	require.NoError(t, WriteChunks(dir, testCollection()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"de-01.geojson", "de-09.geojson", "de-16.geojson"}, names)

	data, err := os.ReadFile(filepath.Join(dir, "de-09.geojson"))
	require.NoError(t, err)
	c, err := geo.DecodeCollection(data, geo.KindGemeinde)
	require.NoError(t, err)
	require.Len(t, c.Features, 2)
	assert.Equal(t, "München", c.Features[0].Name)
	assert.Equal(t, "Garching", c.Features[1].Name)
}

func TestSaveWritesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "gemeinden.geojson")
	require.NoError(t, Save(path, testCollection()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	c, err := geo.DecodeCollection(data, geo.KindGemeinde)
	require.NoError(t, err)
	assert.Len(t, c.Features, 5)

	// The temp file used for the atomic rename must be gone.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

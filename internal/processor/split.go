package processor

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/kartenwerk/gemeindekarte/internal/geo"
)

// Partition groups a collection by the two leading identifier characters,
// preserving input order within each group.
func Partition(c geo.Collection) map[string]geo.Collection {
	parts := make(map[string]geo.Collection)
	for _, f := range c.Features {
		key := f.StatePrefix()
		part := parts[key]
		part.Features = append(part.Features, f)
		parts[key] = part
	}
	return parts
}

// SortedKeys returns partition keys in ascending order.
func SortedKeys(parts map[string]geo.Collection) []string {
	keys := make([]string, 0, len(parts))
	for k := range parts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ChunkFile returns the chunk file name for one partition key.
func ChunkFile(key string) string {
	return "de-" + key + ".geojson"
}

// WriteChunks writes one file per partition into dir, creating it if
// needed, and logs per-group feature counts.
func WriteChunks(dir string, c geo.Collection) error {
	parts := Partition(c)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, key := range SortedKeys(parts) {
		part := parts[key]
		path := filepath.Join(dir, ChunkFile(key))
		if err := Save(path, part); err != nil {
			return err
		}

		log.Info().
			Str("key", key).
			Int("features", len(part.Features)).
			Str("path", path).
			Msg("Chunk written")
	}

	return nil
}

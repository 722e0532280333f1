package atlas

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/kartenwerk/gemeindekarte/internal/geo"
	"github.com/kartenwerk/gemeindekarte/internal/processor"
)

// StateCodes lists the 16 German federal state prefixes the chunked
// municipality files are keyed by.
var StateCodes = []string{
	"01", "02", "03", "04", "05", "06", "07", "08",
	"09", "10", "11", "12", "13", "14", "15", "16",
}

// LoadDataset reads one collection from a local file or an HTTP URL.
func LoadDataset(ctx context.Context, client *http.Client, location string, kind geo.Kind) (geo.Collection, error) {
	var data []byte
	var err error

	if strings.HasPrefix(location, "http") {
		data, err = fetch(ctx, client, location)
	} else {
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return geo.Collection{}, err
	}

	return geo.DecodeCollection(data, kind)
}

// LoadChunked loads all per-state chunks concurrently and concatenates them
// in state-code order regardless of completion order, so the merged
// ordering is deterministic. A failed chunk degrades to an empty collection
// instead of aborting the load.
func LoadChunked(ctx context.Context, client *http.Client, base string, kind geo.Kind) geo.Collection {
	chunks := make([]geo.Collection, len(StateCodes))

	g, ctx := errgroup.WithContext(ctx)
	for i, code := range StateCodes {
		i, code := i, code
		g.Go(func() error {
			c, err := LoadDataset(ctx, client, joinLocation(base, processor.ChunkFile(code)), kind)
			if err != nil {
				log.Warn().
					Err(err).
					Str("chunk", processor.ChunkFile(code)).
					Msg("Chunk unavailable, continuing without it")
				return nil
			}
			chunks[i] = c
			return nil
		})
	}
	// Goroutines never return errors; failures already degraded per chunk.
	_ = g.Wait()

	var out geo.Collection
	for _, c := range chunks {
		out.Features = append(out.Features, c.Features...)
	}
	return out
}

func joinLocation(base, name string) string {
	if strings.HasPrefix(base, "http") {
		return strings.TrimRight(base, "/") + "/" + name
	}
	return filepath.Join(base, name)
}

func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

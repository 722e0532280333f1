package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/kartenwerk/gemeindekarte/internal/atlas"
	"github.com/kartenwerk/gemeindekarte/internal/config"
	"github.com/kartenwerk/gemeindekarte/internal/geo"
	"github.com/kartenwerk/gemeindekarte/internal/logger"
	"github.com/kartenwerk/gemeindekarte/internal/scale"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string `short:"c" long:"config"  env:"CONFIG_FILE"  description:"Path to configuration file" default:"config.yaml"`
	Query       string `short:"q" long:"query"   env:"QUERY"        description:"Search filter (name, county or identifier)"`
	Mode        string `short:"m" long:"mode"    env:"COLOR_MODE"   description:"Color mode" choice:"pop" choice:"density" default:"pop"`
	Limit       int    `short:"n" long:"limit"   env:"LIST_LIMIT"   description:"Maximum list rows to print, 0 for all" default:"25"`
	Timeout     int    `short:"t" long:"timeout" env:"HTTP_TIMEOUT" description:"HTTP timeout in seconds" default:"30"`
	NoGemeinden bool   `long:"no-gemeinden" description:"Hide the municipality dataset"`
	NoOrtsteile bool   `long:"no-ortsteile" description:"Hide the district dataset"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	client := &http.Client{Timeout: time.Duration(opts.Timeout) * time.Second}
	ctx := context.Background()

	state := &atlas.State{
		Query:         opts.Query,
		ShowGemeinden: !opts.NoGemeinden,
		ShowOrtsteile: !opts.NoOrtsteile,
		Mode:          scale.Mode(opts.Mode),
	}

	// Every load failure degrades to an empty dataset; the list stays
	// usable with whatever arrived.
	log.Info().Msg("Loading datasets")
	if cfg.Data.Chunks != "" {
		state.Gemeinden = atlas.LoadChunked(ctx, client, cfg.Data.Chunks, geo.KindGemeinde)
	} else {
		state.Gemeinden = loadOrEmpty(ctx, client, cfg.Data.Gemeinden, geo.KindGemeinde)
	}
	state.Ortsteile = loadOrEmpty(ctx, client, cfg.Data.Ortsteile, geo.KindOrtsteil)

	log.Info().
		Int("gemeinden", len(state.Gemeinden.Features)).
		Int("ortsteile", len(state.Ortsteile.Features)).
		Msg("Datasets loaded")

	render(state, opts.Limit)
}

func loadOrEmpty(ctx context.Context, client *http.Client, location string, kind geo.Kind) geo.Collection {
	c, err := atlas.LoadDataset(ctx, client, location, kind)
	if err != nil {
		log.Warn().Err(err).Str("location", location).Msg("Dataset unavailable, continuing without it")
		return geo.Collection{}
	}
	return c
}

func render(state *atlas.State, limit int) {
	list := state.ActiveList()
	if len(list) == 0 {
		fmt.Println("no data")
		return
	}

	fmt.Printf("%-5s  %-28s  %-28s  %12s  %10s  %s\n",
		"RANG", "NAME", "KREIS", "EINWOHNER", "EW/KM2", "FARBE")
	for i, f := range list {
		if limit > 0 && i >= limit {
			fmt.Printf("... %d more\n", len(list)-limit)
			break
		}
		fmt.Printf("%-5s  %-28s  %-28s  %12s  %10s  %s\n",
			fmtRank(f.Rank),
			clip(f.Name, 28),
			clip(f.County, 28),
			fmtInt(f.Pop),
			fmtFloat(f.Density),
			scale.Color(state.Mode, scale.Value(state.Mode, &f)))
	}

	fmt.Println()
	fmt.Println("Legende:")
	for _, e := range scale.Legend(state.Mode) {
		fmt.Printf("  %s  %s\n", e.Color, e.Label)
	}

	if b, ok := state.FitBounds(); ok {
		fmt.Printf("\nKartenausschnitt: [%.5f, %.5f] - [%.5f, %.5f]\n",
			b.Min[0], b.Min[1], b.Max[0], b.Max[1])
	}
}

func fmtRank(r int) string {
	if r == 0 {
		return "—"
	}
	return strconv.Itoa(r)
}

func fmtInt(v *int64) string {
	if v == nil {
		return "—"
	}
	return scale.FormatNumber(float64(*v))
}

func fmtFloat(v *float64) string {
	if v == nil {
		return "—"
	}
	return scale.FormatNumber(*v)
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

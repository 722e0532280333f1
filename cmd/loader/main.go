package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/kartenwerk/gemeindekarte/internal/config"
	"github.com/kartenwerk/gemeindekarte/internal/logger"
	"github.com/kartenwerk/gemeindekarte/internal/processor"
	"github.com/kartenwerk/gemeindekarte/internal/wfs"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"  env:"CONFIG_FILE"  description:"Path to configuration file" default:"config.yaml"`
	Output     string `short:"o" long:"output"  env:"OUTPUT_FILE"  description:"Output file path (overrides config)"`
	Timeout    int    `short:"t" long:"timeout" env:"HTTP_TIMEOUT" description:"HTTP timeout in seconds" default:"60"`
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
	if cfg.WFS.Endpoint == "" || cfg.WFS.GemeindenType == "" || cfg.WFS.KreiseType == "" {
		log.Fatal().Msg("WFS endpoint and resource type names must be configured")
	}

	output := cfg.Data.Gemeinden
	if opts.Output != "" {
		output = opts.Output
	}

	client := &wfs.Client{
		Endpoint: cfg.WFS.Endpoint,
		HTTP: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
			},
			Timeout: time.Duration(opts.Timeout) * time.Second,
		},
	}

	log.Info().
		Str("endpoint", cfg.WFS.Endpoint).
		Str("gemeinden", cfg.WFS.GemeindenType).
		Str("kreise", cfg.WFS.KreiseType).
		Msg("Starting producer")

	// The two datasets download concurrently; each fetches its own pages
	// sequentially in order.
	var gemeinden, kreise []*geojson.Feature
	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		var err error
		gemeinden, err = client.FetchAll(ctx, cfg.WFS.GemeindenType, cfg.WFS.GemeindenPerPage)
		return err
	})
	g.Go(func() error {
		var err error
		kreise, err = client.FetchAll(ctx, cfg.WFS.KreiseType, cfg.WFS.KreisePerPage)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Fetch failed, no output written")
	}

	counties := processor.BuildCountyIndex(kreise)
	collection := processor.BuildGemeinden(gemeinden, counties)

	if err := processor.Save(output, collection); err != nil {
		log.Fatal().Err(err).Str("path", output).Msg("Failed to write output")
	}

	log.Info().
		Int("features", len(collection.Features)).
		Int("counties", len(counties)).
		Str("path", output).
		Msg("Producer finished successfully")
}

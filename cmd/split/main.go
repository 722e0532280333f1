package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/kartenwerk/gemeindekarte/internal/geo"
	"github.com/kartenwerk/gemeindekarte/internal/logger"
	"github.com/kartenwerk/gemeindekarte/internal/processor"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input  string `short:"i" long:"in"  env:"INPUT_FILE" description:"Input feature collection"      default:"data/gemeinden.geojson"`
	Output string `short:"o" long:"out" env:"OUTPUT_DIR" description:"Output directory for chunks"   default:"data/chunks"`
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

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		log.Fatal().Err(err).Str("path", opts.Input).Msg("Failed to read input")
	}

	collection, err := geo.DecodeCollection(data, geo.KindGemeinde)
	if err != nil {
		log.Fatal().Err(err).Str("path", opts.Input).Msg("Failed to parse input")
	}

	if err := processor.WriteChunks(opts.Output, collection); err != nil {
		log.Fatal().Err(err).Str("dir", opts.Output).Msg("Failed to write chunks")
	}

	log.Info().
		Int("features", len(collection.Features)).
		Str("dir", opts.Output).
		Msg("Split finished successfully")
}

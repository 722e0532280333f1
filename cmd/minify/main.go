package main

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"

	"github.com/kartenwerk/gemeindekarte/internal/logger"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	AssetsDir string `short:"a" long:"assets" env:"ASSETS_DIR" description:"Directory holding the viewer sources" default:"assets"`
	Template  string `short:"T" long:"template" env:"PAGE_TEMPLATE" description:"Page template file name" default:"index.html.tpl"`
	Output    string `short:"o" long:"output" env:"OUTPUT_FILE" description:"Bundled page to write" default:"assets/index.html"`
}

// page holds the minified sources the template inlines.
type page struct {
	CSS string
	JS  string
	SVG string
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

	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/javascript", js.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)

	var data page
	assets := []struct {
		file string
		mime string
		dst  *string
	}{
		{"style.css", "text/css", &data.CSS},
		{"app.js", "text/javascript", &data.JS},
		{"marker.svg", "image/svg+xml", &data.SVG},
	}

	for _, a := range assets {
		path := filepath.Join(opts.AssetsDir, a.file)
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Fatal().Err(err).Str("asset", path).Msg("Failed to read asset")
		}

		minified, err := m.String(a.mime, string(raw))
		if err != nil {
			log.Fatal().Err(err).Str("asset", path).Msg("Failed to minify asset")
		}
		*a.dst = minified

		log.Debug().
			Str("asset", a.file).
			Int("raw", len(raw)).
			Int("minified", len(minified)).
			Msg("Asset minified")
	}

	tplPath := filepath.Join(opts.AssetsDir, opts.Template)
	tplRaw, err := os.ReadFile(tplPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", tplPath).Msg("Failed to read page template")
	}

	tmpl, err := template.New("index").Parse(string(tplRaw))
	if err != nil {
		log.Fatal().Err(err).Str("path", tplPath).Msg("Failed to parse page template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Fatal().Err(err).Msg("Failed to render page")
	}

	final, err := m.String("text/html", buf.String())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to minify page")
	}

	if err := os.WriteFile(opts.Output, []byte(final), 0644); err != nil {
		log.Fatal().Err(err).Str("path", opts.Output).Msg("Failed to write bundled page")
	}

	log.Info().
		Str("path", opts.Output).
		Int("bytes", len(final)).
		Msg("Viewer bundled successfully")
}

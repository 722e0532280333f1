// Package config handles configuration loading and shared data structures.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	WFS  WFS  `yaml:"wfs"`
	Data Data `yaml:"data"`
}

// WFS describes the remote paginated feature service the producer reads.
type WFS struct {
	Endpoint         string `yaml:"endpoint"`
	GemeindenType    string `yaml:"gemeinden_type"`
	KreiseType       string `yaml:"kreise_type"`
	GemeindenPerPage int    `yaml:"gemeinden_per_page,omitempty"`
	KreisePerPage    int    `yaml:"kreise_per_page,omitempty"`
}

// Data locates the static files the presentation layer loads. Gemeinden may
// be a single file or, when Chunks is set, a directory or URL prefix holding
// per-state chunk files (de-01.geojson .. de-16.geojson).
type Data struct {
	Gemeinden string `yaml:"gemeinden,omitempty"`
	Chunks    string `yaml:"chunks,omitempty"`
	Ortsteile string `yaml:"ortsteile,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.WFS.GemeindenPerPage <= 0 {
		c.WFS.GemeindenPerPage = 1000
	}
	if c.WFS.KreisePerPage <= 0 {
		c.WFS.KreisePerPage = 200
	}
	if c.Data.Gemeinden == "" {
		c.Data.Gemeinden = "data/gemeinden.geojson"
	}
	if c.Data.Ortsteile == "" {
		c.Data.Ortsteile = "data/ortsteile.geojson"
	}
}

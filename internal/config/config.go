// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	Scraping ScrapingConfig `yaml:"scraping"`
	Geocode  GeocodeConfig  `yaml:"geocode"`
	Export   ExportConfig   `yaml:"export"`
	Database DatabaseConfig `yaml:"database"`
}

type AppConfig struct {
	Name string `yaml:"name"`
	Env  string `yaml:"env"`
	Port int    `yaml:"port"`
}

type ScrapingConfig struct {
	Justiz JustizConfig `yaml:"justiz"`
}

// JustizConfig describes the source page of the judicial registry. The full
// search URL is server + basepath + search.
type JustizConfig struct {
	Server         string `yaml:"server"`
	Basepath       string `yaml:"basepath"`
	Search         string `yaml:"search"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// BaseURL returns the scheme+host prefix shared by the search page and the
// per-notice document links.
func (c JustizConfig) BaseURL() string {
	return "https://" + c.Server + c.Basepath
}

// SearchURL returns the full URL of the notice table page.
func (c JustizConfig) SearchURL() string {
	return c.BaseURL() + c.Search
}

// Timeout returns the request timeout, with a bounded default.
func (c JustizConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type GeocodeConfig struct {
	Dataset string `yaml:"dataset"`
}

type ExportConfig struct {
	CSVPath string `yaml:"csv_path"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// Load reads a YAML config file and applies environment overrides. DATABASE_URL
// takes precedence over the yaml value so secrets can stay out of the file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := &Config{}
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Database.URL = dsn
	}

	return cfg, nil
}

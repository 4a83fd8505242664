package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/beatanemeth/ai-engeneering-study-mcp/internal/insights"
)

// Config locates the prepared dataset files. Defaults match the layout
// produced by the data preparation step; a config.yaml next to the binary or
// the INSIGHTHUB_DATA_DIR variable can override them.
type Config struct {
	DataDir  string           `yaml:"data_dir"`
	Datasets insights.Sources `yaml:"datasets"`
}

// LoadConfig reads .env (local development convenience), then the optional
// YAML manifest, then environment overrides.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: No .env file found, relying on system environment variables.")
	}

	cfg := &Config{
		DataDir:  "data_prepared",
		Datasets: insights.DefaultSources(),
	}

	path := os.Getenv("INSIGHTHUB_CONFIG")
	explicit := path != ""
	if path == "" {
		path = "config.yaml"
	}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No manifest is fine; the defaults stand.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if dir := os.Getenv("INSIGHTHUB_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}

	// A partial manifest keeps the conventional names for what it omits.
	defaults := insights.DefaultSources()
	if cfg.Datasets.Events == "" {
		cfg.Datasets.Events = defaults.Events
	}
	if cfg.Datasets.Articles == "" {
		cfg.Datasets.Articles = defaults.Articles
	}
	if cfg.Datasets.BlogPosts == "" {
		cfg.Datasets.BlogPosts = defaults.BlogPosts
	}

	return cfg, nil
}

package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds the CLI's runtime settings: where the backend lives, where
// local data goes, and how often reachability is probed.
type Config struct {
	ServerEndpointAddr  string
	DataDir             string
	OnlineCheckInterval time.Duration
}

// LoadDefaults points the client at a local development server and roots
// all durable state under ~/.storykeeper. When the home directory cannot
// be resolved the current directory serves instead.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.OnlineCheckInterval = 3 * time.Second

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	c.DataDir = filepath.Join(home, ".storykeeper")
}

// LoadConfig resolves the effective configuration. Precedence, lowest to
// highest: defaults, JSON file, flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

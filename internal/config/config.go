package config

import (
	"os"
	"time"
)

// Config holds runtime settings.
type Config struct {
	DatabasePath string
	LogLevel     string
	LogFile      string
	SaveDelay    time.Duration
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "bucketlist.db"
	c.LogLevel = "info"
	c.LogFile = ""
	c.SaveDelay = 250 * time.Millisecond
}

// Load builds a Config from defaults, the optional config file and flags
// found in args (without the program name).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

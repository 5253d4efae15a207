package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/bucketlist/internal/flagx"
	"github.com/dmitrijs2005/bucketlist/internal/timex"
)

// fileConfig is the on-disk shape. Fields left out of the file keep their
// current value.
type fileConfig struct {
	DatabasePath string          `json:"database_path" yaml:"database_path"`
	LogLevel     string          `json:"log_level" yaml:"log_level"`
	LogFile      string          `json:"log_file" yaml:"log_file"`
	SaveDelay    *timex.Duration `json:"save_delay" yaml:"save_delay"`
}

func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	if fc.SaveDelay != nil {
		cfg.SaveDelay = fc.SaveDelay.Duration
	}
	return nil
}

package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/bucketlist/internal/flagx"
)

// parseFlags overlays cfg with -d, -l, -f and -w. Other flags are ignored.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-l", "-f", "-w"})

	fs := flag.NewFlagSet("bucketlist", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, "f", cfg.LogFile, "log file (default stderr)")
	saveDelay := fs.Int("w", int(cfg.SaveDelay.Milliseconds()), "save delay (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if *saveDelay < 0 {
		return fmt.Errorf("parse flags: save delay must not be negative, got %d", *saveDelay)
	}

	cfg.SaveDelay = time.Duration(*saveDelay) * time.Millisecond
	return nil
}

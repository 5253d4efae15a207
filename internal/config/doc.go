// Package config loads runtime configuration for the bucket list app.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file given with -c or -config. Files ending in .yaml or
//     .yml are read as YAML, anything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   path to the SQLite database file (":memory:" for a throwaway list)
//	-l string   log level: debug, info, warn, error
//	-f string   log file; empty logs to stderr
//	-w int      save delay in milliseconds
//
// # File schema
//
//	{
//	  "database_path": "data/bucketlist.db",
//	  "log_level": "info",
//	  "log_file": "",
//	  "save_delay": "250ms"
//	}
//
// save_delay accepts a duration string or integer nanoseconds.
package config

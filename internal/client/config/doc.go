// Package config loads runtime configuration for the ReadDaily CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (see parseFile) selected via -c or -config.
//     Files ending in .yaml or .yml are YAML, anything else is JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-mode string  "remote" (talk to the server) or "local" (SQLite only)
//	-a string     address:port of the backend gRPC endpoint
//	-i int        online status check interval (seconds)
//	-db string    path of the local SQLite database
//	-cat string   article catalog imported on start in local mode
//	-z string     time zone defining "today" in local mode
//	-l string     log level
//
// # File schema
//
// Intervals use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	mode: local
//	server_endpoint_addr: 127.0.0.1:50051
//	online_check_interval: 3s
//	db_path: readdaily.db
//	catalog_path: catalog.json
//	time_zone: Europe/Riga
//	log_level: warn
package config

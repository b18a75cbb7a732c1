package config

import (
	"fmt"
	"time"
)

// Mode selects where the CLI keeps its state.
type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

// Config holds runtime settings for the ReadDaily CLI.
//
// Fields:
//   - Mode: remote uses the gRPC server, local keeps everything in DBPath.
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DBPath: SQLite file of the local mode.
//   - CatalogPath: JSON article catalog imported on start in local mode; optional.
//   - TimeZone: IANA zone defining "today" in local mode.
//   - LogLevel: debug, info, warn or error; logs go to stderr.
type Config struct {
	Mode                Mode
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	DBPath              string
	CatalogPath         string
	TimeZone            string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Mode = ModeRemote
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DBPath = "readdaily.db"
	c.TimeZone = "Local"
	c.LogLevel = "warn"
}

// Validate checks the mode and time zone.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeRemote, ModeLocal:
	default:
		return fmt.Errorf("unknown mode %q (want %q or %q)", c.Mode, ModeRemote, ModeLocal)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves TimeZone; empty means the machine's local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}

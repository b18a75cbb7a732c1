package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/readdaily/internal/flagx"
	"github.com/dmitrijs2005/readdaily/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk form of Config. Intervals accept strings such as
// "3s" or integer nanoseconds. Empty values leave the current setting alone.
type FileConfig struct {
	Mode                string         `json:"mode" yaml:"mode"`
	ServerEndpointAddr  string         `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	DBPath              string         `json:"db_path" yaml:"db_path"`
	CatalogPath         string         `json:"catalog_path" yaml:"catalog_path"`
	TimeZone            string         `json:"time_zone" yaml:"time_zone"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by the -c or -config flag,
// decoded as YAML for .yaml/.yml and as JSON otherwise.
//
// Panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.Mode != "" {
		cfg.Mode = Mode(fc.Mode)
	}
	if fc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = fc.ServerEndpointAddr
	}
	if fc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.DBPath != "" {
		cfg.DBPath = fc.DBPath
	}
	if fc.CatalogPath != "" {
		cfg.CatalogPath = fc.CatalogPath
	}
	if fc.TimeZone != "" {
		cfg.TimeZone = fc.TimeZone
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}

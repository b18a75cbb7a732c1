package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/flagx"
	"github.com/dmitrijs2005/readdaily/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk form of Config. Durations accept strings such as
// "30m" or integer nanoseconds. Zero values leave the current setting alone.
type FileConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	MetricsAddr                  string         `json:"metrics_addr" yaml:"metrics_addr"`
	DatabaseDSN                  string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                    string         `json:"secret_key" yaml:"secret_key"`
	LogLevel                     string         `json:"log_level" yaml:"log_level"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	TimeZone                     string         `json:"time_zone" yaml:"time_zone"`
	SessionIdleTimeout           timex.Duration `json:"session_idle_timeout" yaml:"session_idle_timeout"`
	S3RootUser                   string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                     string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	ExportURLValidity            timex.Duration `json:"export_url_validity" yaml:"export_url_validity"`
	FetchTimeout                 timex.Duration `json:"fetch_timeout" yaml:"fetch_timeout"`
	FetchRatePerSecond           float64        `json:"fetch_rate_per_second" yaml:"fetch_rate_per_second"`
	OpenAIAPIKey                 string         `json:"openai_api_key" yaml:"openai_api_key"`
	OpenAIBaseURL                string         `json:"openai_base_url" yaml:"openai_base_url"`
	OpenAIModel                  string         `json:"openai_model" yaml:"openai_model"`
	LLMTimeout                   timex.Duration `json:"llm_timeout" yaml:"llm_timeout"`
	YouTubeAPIKey                string         `json:"youtube_api_key" yaml:"youtube_api_key"`
	YouTubeChannels              []string       `json:"youtube_channels" yaml:"youtube_channels"`
	AutomationCron               string         `json:"automation_cron" yaml:"automation_cron"`
	MaxVideosPerRun              int            `json:"max_videos_per_run" yaml:"max_videos_per_run"`
	AdminEmails                  []string       `json:"admin_emails" yaml:"admin_emails"`
}

// parseFile loads configuration values from the file named by the -c or
// -config flag. Files ending in .yaml or .yml are decoded as YAML, anything
// else as JSON. Without the flag nothing is loaded.
//
// If the file cannot be read or decoded, the function panics.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.MetricsAddr, c.MetricsAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)
	setDuration(&config.RefreshTokenValidityDuration, c.RefreshTokenValidityDuration)
	setString(&config.TimeZone, c.TimeZone)
	setDuration(&config.SessionIdleTimeout, c.SessionIdleTimeout)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setDuration(&config.ExportURLValidity, c.ExportURLValidity)
	setDuration(&config.FetchTimeout, c.FetchTimeout)
	if c.FetchRatePerSecond > 0 {
		config.FetchRatePerSecond = c.FetchRatePerSecond
	}
	setString(&config.OpenAIAPIKey, c.OpenAIAPIKey)
	setString(&config.OpenAIBaseURL, c.OpenAIBaseURL)
	setString(&config.OpenAIModel, c.OpenAIModel)
	setDuration(&config.LLMTimeout, c.LLMTimeout)
	setString(&config.YouTubeAPIKey, c.YouTubeAPIKey)
	if len(c.YouTubeChannels) > 0 {
		config.YouTubeChannels = c.YouTubeChannels
	}
	setString(&config.AutomationCron, c.AutomationCron)
	if c.MaxVideosPerRun > 0 {
		config.MaxVideosPerRun = c.MaxVideosPerRun
	}
	if len(c.AdminEmails) > 0 {
		config.AdminEmails = c.AdminEmails
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}

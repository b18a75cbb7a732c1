package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseFile_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathJSON := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"endpoint_addr_grpc":              "www.example:9000",
		"database_dsn":                    "postgres://db",
		"secret_key":                      "my_secret_key",
		"access_token_validity_duration":  "1m",
		"refresh_token_validity_duration": 180000000000,
		"session_idle_timeout":            "45m",
		"time_zone":                       "Europe/Riga",
		"s3_bucket":                       "bucket",
		"youtube_channels":                []string{"UC1", "UC2"},
		"max_videos_per_run":              3,
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathJSON}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
		assert.Equal(t, "postgres://db", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 1*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 3*time.Minute, cfg.RefreshTokenValidityDuration)
		assert.Equal(t, 45*time.Minute, cfg.SessionIdleTimeout)
		assert.Equal(t, "Europe/Riga", cfg.TimeZone)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, []string{"UC1", "UC2"}, cfg.YouTubeChannels)
		assert.Equal(t, 3, cfg.MaxVideosPerRun)

		// untouched keys keep defaults
		assert.Equal(t, ":9090", cfg.MetricsAddr)
		assert.Equal(t, "us-east-1", cfg.S3Region)
		assert.Equal(t, 15*time.Second, cfg.LLMTimeout)
	})

	t.Run("loads from yaml", func(t *testing.T) {
		path := filepath.Join(dir, "cfg.yaml")
		yml := "endpoint_addr_grpc: \":7000\"\nsession_idle_timeout: 10m\nllm_timeout: 40s\nautomation_cron: \"30 5 * * *\"\nyoutube_channels:\n  - UC9\n"
		require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, ":7000", cfg.EndpointAddrGRPC)
		assert.Equal(t, 10*time.Minute, cfg.SessionIdleTimeout)
		assert.Equal(t, 40*time.Second, cfg.LLMTimeout)
		assert.Equal(t, "30 5 * * *", cfg.AutomationCron)
		assert.Equal(t, []string{"UC9"}, cfg.YouTubeChannels)
	})

	t.Run("no config flag leaves config unchanged", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddrGRPC: "defaults:1234", SecretKey: "key", AccessTokenValidityDuration: 2 * time.Minute}
		parseFile(cfg)

		assert.Equal(t, &Config{EndpointAddrGRPC: "defaults:1234", SecretKey: "key", AccessTokenValidityDuration: 2 * time.Minute}, cfg)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"testbin", "-config", bad}

		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(dir, "absent.yaml")}
		require.Panics(t, func() { parseFile(&Config{}) })
	})
}

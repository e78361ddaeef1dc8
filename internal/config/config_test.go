package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "go-proposalpdf/internal/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "PROPOSAL_PORT", "PROPOSAL_TEMPLATE", "PROPOSAL_MAXUPLOADSIZE", "PROPOSAL_RATELIMIT_RPS"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, ":8080", cfg.ListenAddress())
	assert.Equal(t, DefaultTemplate, cfg.Template)
	assert.Equal(t, int64(DefaultMaxUploadSizeBytes), cfg.UploadSizeBytes())
	assert.Equal(t, DefaultMaxImageSide, cfg.MaxImageSide)
	assert.Equal(t, int64(DefaultMaxImagePixels), cfg.MaxImagePixels)
	assert.Equal(t, DefaultRateLimitRPS, cfg.RateLimit.RPS)
	assert.Equal(t, DefaultRateLimitBurst, cfg.RateLimit.Burst)
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.False(t, cfg.Items.RejectMismatch)
	assert.Equal(t, []string{"https://*", "http://*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `address: 127.0.0.1
port: 9000
template: assets/modelo.pdf
layout: layouts/compacta.yaml
maxUploadSize: 2M
maxImageSide: 800
maxImagePixels: 1000000
rateLimit:
  rps: 1.5
  burst: 3
cors:
  allowedOrigins:
    - https://propostas.example.com
items:
  rejectMismatch: true
shutdownTimeout: 10s
logging:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddress())
	assert.Equal(t, "assets/modelo.pdf", cfg.Template)
	assert.Equal(t, "layouts/compacta.yaml", cfg.Layout)
	assert.Equal(t, int64(2*1024*1024), cfg.UploadSizeBytes())
	assert.Equal(t, 800, cfg.MaxImageSide)
	assert.Equal(t, int64(1000000), cfg.MaxImagePixels)
	assert.Equal(t, RateLimitConfig{RPS: 1.5, Burst: 3}, cfg.RateLimit)
	assert.Equal(t, []string{"https://propostas.example.com"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Items.RejectMismatch)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "port: 9000\n")

	t.Setenv("PORT", "7000")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)

	t.Setenv("PROPOSAL_PORT", "7100")
	t.Setenv("PROPOSAL_MAXUPLOADSIZE", "512K")
	t.Setenv("PROPOSAL_RATELIMIT_RPS", "0")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7100, cfg.Port)
	assert.Equal(t, int64(512*1024), cfg.UploadSizeBytes())
	assert.Zero(t, cfg.RateLimit.RPS)
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)

	tests := map[string]string{
		"bad yaml":       "port: [",
		"bad size":       "maxUploadSize: lots",
		"bad port":       "port: 70000",
		"empty template": "template: \" \"",
		"bad burst":      "rateLimit:\n  rps: 2\n  burst: 0\n",
		"bad level":      "logging:\n  level: loud\n",
		"negative side":  "maxImageSide: -1",
		"negative area":  "maxImagePixels: -1",
	}
	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, contents))
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidConfig))
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":     DefaultMaxUploadSizeBytes,
		"512":  512,
		"1B":   1,
		"256K": 256 * 1024,
		"10m":  10 * 1024 * 1024,
		"2 MB": 2 * 1024 * 1024,
		"1GB":  1024 * 1024 * 1024,
	}
	for in, want := range tests {
		got, err := ParseSize(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"MB", "12TB", "x10", "99999999999999999G"} {
		_, err := ParseSize(in)
		assert.Error(t, err, in)
	}
}

// Package config loads the proposal service configuration.
//
// Values come, in increasing precedence, from built-in defaults, an optional
// YAML file, a .env file in the working directory and PROPOSAL_* environment
// variables. PORT is honoured as well for platforms that inject it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"

	apperrors "go-proposalpdf/internal/errors"
	"go-proposalpdf/internal/logging"
)

// Defaults.
const (
	DefaultPort               = 8080
	DefaultTemplate           = "template.pdf"
	DefaultMaxUploadSize      = "10M"
	DefaultMaxUploadSizeBytes = 10 * 1024 * 1024
	DefaultMaxImageSide       = 2000
	DefaultMaxImagePixels     = 40_000_000
	DefaultRateLimitRPS       = 5.0
	DefaultRateLimitBurst     = 10
	DefaultShutdownTimeout    = 5 * time.Second
	EnvPrefix                 = "PROPOSAL"
)

// RateLimitConfig limits proposal generation. RPS of 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" yaml:"rps"`
	Burst int     `mapstructure:"burst" yaml:"burst"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins" yaml:"allowedOrigins"`
}

// ItemsConfig controls how the item table treats unequal lists.
type ItemsConfig struct {
	RejectMismatch bool `mapstructure:"rejectMismatch" yaml:"rejectMismatch"`
}

// Config defines runtime parameters for the service.
type Config struct {
	Address         string          `mapstructure:"address" yaml:"address"`
	Port            int             `mapstructure:"port" yaml:"port"`
	Template        string          `mapstructure:"template" yaml:"template"`
	Layout          string          `mapstructure:"layout" yaml:"layout,omitempty"`
	MaxUploadSize   string          `mapstructure:"maxUploadSize" yaml:"maxUploadSize"`
	MaxImageSide    int             `mapstructure:"maxImageSide" yaml:"maxImageSide"`
	MaxImagePixels  int64           `mapstructure:"maxImagePixels" yaml:"maxImagePixels"`
	RateLimit       RateLimitConfig `mapstructure:"rateLimit" yaml:"rateLimit"`
	CORS            CORSConfig      `mapstructure:"cors" yaml:"cors"`
	Items           ItemsConfig     `mapstructure:"items" yaml:"items"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdownTimeout" yaml:"shutdownTimeout"`
	Logging         logging.Config  `mapstructure:"logging" yaml:"logging"`

	uploadSizeBytes int64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("address", "")
	v.SetDefault("port", DefaultPort)
	v.SetDefault("template", DefaultTemplate)
	v.SetDefault("layout", "")
	v.SetDefault("maxUploadSize", DefaultMaxUploadSize)
	v.SetDefault("maxImageSide", DefaultMaxImageSide)
	v.SetDefault("maxImagePixels", DefaultMaxImagePixels)
	v.SetDefault("rateLimit.rps", DefaultRateLimitRPS)
	v.SetDefault("rateLimit.burst", DefaultRateLimitBurst)
	v.SetDefault("cors.allowedOrigins", []string{"https://*", "http://*"})
	v.SetDefault("items.rejectMismatch", false)
	v.SetDefault("shutdownTimeout", DefaultShutdownTimeout)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
}

// Load reads the configuration. If path is empty or the file does not exist,
// defaults and the environment are used without error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", EnvPrefix+"_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind port: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "error reading config file %s", path)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "failed to stat config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "unable to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalizes sizes and checks every value is in range.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "port must be between 1 and 65535, got %d", c.Port)
	}
	if strings.TrimSpace(c.Template) == "" {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "template path is required")
	}

	size, err := ParseSize(c.MaxUploadSize)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "invalid maxUploadSize")
	}
	if size <= 0 {
		size = DefaultMaxUploadSizeBytes
	}
	c.uploadSizeBytes = size

	if c.MaxImageSide < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "maxImageSide must not be negative")
	}
	if c.MaxImagePixels < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "maxImagePixels must not be negative")
	}
	if c.RateLimit.RPS < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "rateLimit.rps must not be negative")
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "rateLimit.burst must be positive when rateLimit.rps is set")
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "invalid logging.level")
	}
	return nil
}

// ListenAddress returns the host:port the server binds to.
func (c *Config) ListenAddress() string {
	return net.JoinHostPort(c.Address, strconv.Itoa(c.Port))
}

// UploadSizeBytes returns the configured upload size in bytes.
func (c *Config) UploadSizeBytes() int64 {
	if c.uploadSizeBytes <= 0 {
		return DefaultMaxUploadSizeBytes
	}
	return c.uploadSizeBytes
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return DefaultMaxUploadSizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if n < 0 || result/multiplier != n {
		return 0, fmt.Errorf("size out of range: %s", value)
	}
	return result, nil
}

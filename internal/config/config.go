// Package config resolves runtime settings for the optical-center server and
// CLI from defaults, an optional config file, OPTICAL_MCP_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ironsheep/optical-center-mcp/internal/imaging"
)

// EnvPrefix prefixes every environment variable, e.g. OPTICAL_MCP_LOG_LEVEL.
const EnvPrefix = "OPTICAL_MCP"

// Configuration keys.
const (
	KeyLogLevel       = "log_level"
	KeyAlphaThreshold = "alpha_threshold"
	KeyBoundaryOnly   = "boundary_only"
	KeyMaxPoints      = "max_points"
	KeyPathColor      = "path_color"
	KeyCircleColor    = "circle_color"
)

// Config holds the resolved settings.
type Config struct {
	// LogLevel is a logrus level name: panic, fatal, error, warn, info,
	// debug or trace.
	LogLevel string

	// AlphaThreshold is the default alpha a pixel must exceed to be opaque.
	AlphaThreshold uint8

	// BoundaryOnly makes opaque-pixel scans keep only outline pixels.
	BoundaryOnly bool

	// MaxPoints caps how many points image_opaque_points returns.
	MaxPoints int

	// PathColor and CircleColor are the default overlay colors.
	PathColor   string
	CircleColor string
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyAlphaThreshold, 0)
	v.SetDefault(KeyBoundaryOnly, true)
	v.SetDefault(KeyMaxPoints, 1000)
	v.SetDefault(KeyPathColor, imaging.DefaultPathColor)
	v.SetDefault(KeyCircleColor, imaging.DefaultCircleColor)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds the flags in fs whose names match configuration keys with
// dashes for underscores (e.g. --log-level to log_level). Flags that are
// absent from fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{KeyLogLevel, KeyAlphaThreshold, KeyBoundaryOnly, KeyMaxPoints, KeyPathColor, KeyCircleColor} {
		f := fs.Lookup(strings.ReplaceAll(key, "_", "-"))
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
		}
	}
	return nil
}

// ReadFile merges the config file at path into v. The format follows the
// file extension (toml, yaml, json, ...).
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Load validates the settings in v and returns them.
func Load(v *viper.Viper) (*Config, error) {
	level := v.GetString(KeyLogLevel)
	if _, err := logrus.ParseLevel(level); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}

	alpha := v.GetInt(KeyAlphaThreshold)
	if alpha < 0 || alpha > 255 {
		return nil, fmt.Errorf("invalid %s %d: must be between 0 and 255", KeyAlphaThreshold, alpha)
	}

	maxPoints := v.GetInt(KeyMaxPoints)
	if maxPoints <= 0 {
		return nil, fmt.Errorf("invalid %s %d: must be positive", KeyMaxPoints, maxPoints)
	}

	return &Config{
		LogLevel:       level,
		AlphaThreshold: uint8(alpha),
		BoundaryOnly:   v.GetBool(KeyBoundaryOnly),
		MaxPoints:      maxPoints,
		PathColor:      v.GetString(KeyPathColor),
		CircleColor:    v.GetString(KeyCircleColor),
	}, nil
}

// NewLogger returns a logrus logger writing to w at c.LogLevel.
// The server passes stderr because stdout carries protocol frames.
func (c *Config) NewLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

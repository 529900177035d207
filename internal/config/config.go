// SPDX-License-Identifier: EPL-2.0

// Package config defines the YAML configuration of the wavmark service and
// loads it from disk.
package config

import (
	"time"

	"github.com/ik5/wavmark/audio"
	"github.com/ik5/wavmark/watermark"
)

// LogLevel controls slog verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is one of the known levels.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Audio     AudioConfig     `yaml:"audio"`
	Watermark WatermarkConfig `yaml:"watermark"`
	Database  DatabaseConfig  `yaml:"database"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	ListenAddr      string        `yaml:"listen_addr"`
	LogLevel        LogLevel      `yaml:"log_level"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// AudioConfig is the descriptor allow-list.
type AudioConfig struct {
	AllowedSampleRates  []int `yaml:"allowed_sample_rates"`
	AllowedSampleWidths []int `yaml:"allowed_sample_widths"`
}

// WatermarkConfig selects the pattern. Either PatternDB or Bits may be set;
// with neither the default pattern is used.
type WatermarkConfig struct {
	PatternDB []int  `yaml:"pattern_db"`
	Bits      string `yaml:"bits"`
	OneDB     int    `yaml:"one_db"`
	ZeroDB    int    `yaml:"zero_db"`
}

// DatabaseConfig holds the catalog connection. An empty DSN disables the
// catalog endpoints.
type DatabaseConfig struct {
	PostgresDSN string `yaml:"postgres_dsn"`
}

// Default returns the configuration used when no file overrides a field.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:      "127.0.0.1:5000",
			LogLevel:        LogInfo,
			MaxUploadBytes:  100 << 20,
			AllowedOrigins:  []string{"http://localhost:3000"},
			ShutdownTimeout: 15 * time.Second,
		},
		Audio: AudioConfig{
			AllowedSampleRates:  append([]int(nil), audio.DefaultSampleRates...),
			AllowedSampleWidths: append([]int(nil), audio.DefaultSampleWidths...),
		},
		Watermark: WatermarkConfig{
			OneDB:  watermark.DefaultOneDB,
			ZeroDB: watermark.DefaultZeroDB,
		},
	}
}

// Pattern resolves the configured watermark pattern.
func (w WatermarkConfig) Pattern() (watermark.Pattern, error) {
	switch {
	case len(w.PatternDB) > 0:
		p := watermark.Pattern(w.PatternDB).Clone()
		return p, p.Validate()
	case w.Bits != "":
		return watermark.FromBits(w.Bits, w.OneDB, w.ZeroDB)
	default:
		return watermark.DefaultPattern.Clone(), nil
	}
}

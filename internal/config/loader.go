// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// supportedWidths are the sample widths a codec exists for.
var supportedWidths = []int{2, 3}

// Load reads the YAML configuration file at path and returns a validated
// [Config]. Fields missing from the file keep their [Default] values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of [Default] and
// validates the result.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_upload_bytes must be positive, got %d", cfg.Server.MaxUploadBytes))
	}
	if cfg.Server.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout must not be negative, got %s", cfg.Server.ShutdownTimeout))
	}

	if len(cfg.Audio.AllowedSampleRates) == 0 {
		errs = append(errs, errors.New("audio.allowed_sample_rates must not be empty"))
	}
	for i, rate := range cfg.Audio.AllowedSampleRates {
		if rate <= 0 {
			errs = append(errs, fmt.Errorf("audio.allowed_sample_rates[%d] must be positive, got %d", i, rate))
		}
	}

	if len(cfg.Audio.AllowedSampleWidths) == 0 {
		errs = append(errs, errors.New("audio.allowed_sample_widths must not be empty"))
	}
	for i, width := range cfg.Audio.AllowedSampleWidths {
		if !slices.Contains(supportedWidths, width) {
			errs = append(errs, fmt.Errorf("audio.allowed_sample_widths[%d] is %d; supported widths: %v", i, width, supportedWidths))
		}
	}

	if len(cfg.Watermark.PatternDB) > 0 && cfg.Watermark.Bits != "" {
		errs = append(errs, errors.New("watermark.pattern_db and watermark.bits are mutually exclusive"))
	} else if _, err := cfg.Watermark.Pattern(); err != nil {
		errs = append(errs, fmt.Errorf("watermark: %w", err))
	}

	return errors.Join(errs...)
}

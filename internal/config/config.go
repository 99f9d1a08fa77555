// Package config loads the phigaro YAML configuration and carries the
// per-run Context shared by all pipeline tasks.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chris-rands/phigaro/pkg/model"
)

// HmmerConfig configures the profile-search stage.
type HmmerConfig struct {
	Bin             string  `yaml:"bin"`
	EValueThreshold float64 `yaml:"e_value_threshold"`
	PVOGPath        string  `yaml:"pvog_path"`
	// Optional tab-separated pVOG annotation table: vog, taxonomy, class.
	PVOGAnnotations string `yaml:"pvog_annotations"`
}

// ProdigalConfig configures the gene-prediction stage.
type ProdigalConfig struct {
	Bin string `yaml:"bin"`
}

// PhigaroConfig configures the region classifier.
type PhigaroConfig struct {
	WindowLen             int     `yaml:"window_len"`
	MeanGC                float64 `yaml:"mean_gc"`
	ThresholdMinBasic     float64 `yaml:"threshold_min_basic"`
	ThresholdMaxBasic     float64 `yaml:"threshold_max_basic"`
	ThresholdMinAbs       float64 `yaml:"threshold_min_abs"`
	ThresholdMaxAbs       float64 `yaml:"threshold_max_abs"`
	ThresholdMinWithoutGC float64 `yaml:"threshold_min_without_gc"`
	ThresholdMaxWithoutGC float64 `yaml:"threshold_max_without_gc"`
	PenaltyBlack          float64 `yaml:"penalty_black"`
	PenaltyWhite          float64 `yaml:"penalty_white"`
}

// Config is the parsed YAML configuration document.
type Config struct {
	Hmmer    HmmerConfig    `yaml:"hmmer"`
	Prodigal ProdigalConfig `yaml:"prodigal"`
	Phigaro  PhigaroConfig  `yaml:"phigaro"`
}

// DefaultPath returns the conventional config location, ~/.phigaro/config.yml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".phigaro", "config.yml")
}

// Load reads and parses the YAML configuration file. A missing file is a
// configuration error: the setup script must be run first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, Errorf("config file %s not found, create it using the phigaro-setup script", path)
		}
		return nil, &Error{Msg: fmt.Sprintf("read config %s", path), Err: err}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &Error{Msg: fmt.Sprintf("parse config %s", path), Err: err}
	}
	// hmmsearch rejects -E 0, and a zero threshold would filter every
	// hit anyway.
	if cfg.Hmmer.EValueThreshold <= 0 {
		return nil, Errorf("config %s: hmmer.e_value_threshold must be positive, got %v",
			path, cfg.Hmmer.EValueThreshold)
	}
	return &cfg, nil
}

// Thresholds returns the hysteresis threshold pair for a mode.
func (c *Config) Thresholds(mode model.Mode) (min, max float64, err error) {
	switch mode {
	case model.ModeBasic:
		return c.Phigaro.ThresholdMinBasic, c.Phigaro.ThresholdMaxBasic, nil
	case model.ModeAbs:
		return c.Phigaro.ThresholdMinAbs, c.Phigaro.ThresholdMaxAbs, nil
	case model.ModeWithoutGC:
		return c.Phigaro.ThresholdMinWithoutGC, c.Phigaro.ThresholdMaxWithoutGC, nil
	}
	return 0, 0, Errorf("unknown mode %q, expected basic, abs or without_gc", mode)
}

// SampleName derives the sample base name from the input filename:
// the basename with its extension stripped.
func SampleName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

package fairshare

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for YAML decoding; interval is a duration
// string ("5s", "1m") and absent keys keep their defaults.
type fileConfig struct {
	ActiveThreshold *float64 `yaml:"active_threshold"`
	FairShare       *float64 `yaml:"fair_share"`
	WarnThreshold   *float64 `yaml:"warn_threshold"`
	Interval        string   `yaml:"interval"`
	Live            *bool    `yaml:"live"`
	EMA             *float64 `yaml:"ema"`
}

// Load reads a YAML policy file over the defaults and validates the result.
//
// Example:
//
//	active_threshold: 2.5
//	fair_share: 20
//	warn_threshold: 90
//	interval: 10s
//	live: true
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fairshare: read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("fairshare: parse config: %w", err)
	}

	cfg := Default()
	if fc.ActiveThreshold != nil {
		cfg.ActiveThreshold = *fc.ActiveThreshold
	}
	if fc.FairShare != nil {
		cfg.FairShare = fc.FairShare
	}
	if fc.WarnThreshold != nil {
		cfg.WarnThreshold = *fc.WarnThreshold
	}
	if fc.Interval != "" {
		d, err := time.ParseDuration(fc.Interval)
		if err != nil {
			return nil, fmt.Errorf("fairshare: parse interval: %w", err)
		}
		cfg.Interval = d
	}
	if fc.Live != nil {
		cfg.Live = *fc.Live
	}
	if fc.EMA != nil {
		cfg.EMA = *fc.EMA
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

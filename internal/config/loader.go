package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if SCOUTROUTE_CONFIG is set
//  3. env (prefix SCOUTROUTE_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SCOUTROUTE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SCOUTROUTE_ADDR, SCOUTROUTE_MAX_DRIVE_MINUTES, ...
	// Map env keys like SCOUTROUTE_MAX_DRIVE_MINUTES -> max_drive_minutes
	// (flat keys). Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SCOUTROUTE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "scoutroute_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the planner cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxDriveMinutes <= 0:
		return fmt.Errorf("%w: max_drive_minutes must be positive", ErrInvalidConfig)
	case c.AnchorBonusFactor < 1:
		return fmt.Errorf("%w: anchor_bonus_factor must be >= 1", ErrInvalidConfig)
	case c.DetourFactor < 1:
		return fmt.Errorf("%w: detour_factor must be >= 1", ErrInvalidConfig)
	case c.RoadSpeedKmh <= 0 || c.CruiseSpeedKmh <= 0:
		return fmt.Errorf("%w: speeds must be positive", ErrInvalidConfig)
	case c.PlanStoreCapacity <= 0:
		return fmt.Errorf("%w: plan_store_capacity must be positive", ErrInvalidConfig)
	}
	for level, w := range c.Seasons {
		if w.Start == "" || w.End == "" || w.Start > w.End {
			return fmt.Errorf("%w: season %q window %q..%q", ErrInvalidConfig, level, w.Start, w.End)
		}
	}
	return nil
}

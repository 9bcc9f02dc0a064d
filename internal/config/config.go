// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - Loading layers defaults, an optional YAML file, and env vars.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// SeasonWindow configures one level's season span and typical
// home-presence weekdays. Boundaries are MM-DD and may not cross
// year-end.
type SeasonWindow struct {
	Start        string   `koanf:"start"`
	End          string   `koanf:"end"`
	HomeWeekdays []string `koanf:"home_weekdays"`
}

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// HomeLat and HomeLng locate the scouts' home base.
	HomeLat float64 `koanf:"home_lat"`
	HomeLng float64 `koanf:"home_lng"`

	// MaxDriveMinutes is the default one-way drive radius. Operators
	// may override it per planning request.
	MaxDriveMinutes int `koanf:"max_drive_minutes"`

	// BlackoutWeekday is the weekly no-travel day.
	BlackoutWeekday string `koanf:"blackout_weekday"`

	// AnchorBonusWeekday and AnchorBonusFactor boost candidates
	// anchored on the preferred trip-start day.
	AnchorBonusWeekday string  `koanf:"anchor_bonus_weekday"`
	AnchorBonusFactor  float64 `koanf:"anchor_bonus_factor"`

	// TierWeights maps athlete tier ("1".."4") to its scoring weight.
	TierWeights map[string]float64 `koanf:"tier_weights"`

	// Drive and flight estimator parameters.
	DetourFactor        float64 `koanf:"detour_factor"`
	RoadSpeedKmh        float64 `koanf:"road_speed_kmh"`
	CruiseSpeedKmh      float64 `koanf:"cruise_speed_kmh"`
	GroundOverheadHours float64 `koanf:"ground_overhead_hours"`

	// Seasons configures per-level windows, keyed "pro", "ncaa", "hs".
	Seasons map[string]SeasonWindow `koanf:"seasons"`

	// PlanStoreCapacity bounds the in-memory plan history.
	PlanStoreCapacity int `koanf:"plan_store_capacity"`
}

// New creates a Config with defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use
// and currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9090",
		HomeLat:            33.4484, // Phoenix, AZ
		HomeLng:            -112.0740,
		MaxDriveMinutes:    180,
		BlackoutWeekday:    "sunday",
		AnchorBonusWeekday: "thursday",
		AnchorBonusFactor:  1.2,
		TierWeights: map[string]float64{
			"1": 10,
			"2": 5,
			"3": 2,
			"4": 0,
		},
		DetourFactor:        1.3,
		RoadSpeedKmh:        90,
		CruiseSpeedKmh:      800,
		GroundOverheadHours: 3,
		Seasons: map[string]SeasonWindow{
			"pro": {
				Start: "02-14", End: "03-28",
				HomeWeekdays: []string{"tuesday", "wednesday", "friday", "saturday"},
			},
			"ncaa": {
				Start: "02-14", End: "06-20",
				HomeWeekdays: []string{"friday", "saturday", "sunday"},
			},
			"hs": {
				Start: "03-01", End: "06-05",
				HomeWeekdays: []string{"tuesday", "thursday", "friday"},
			},
		},
		PlanStoreCapacity: 100,
	}
}

package app

import (
	"fmt"
	"strconv"
	"time"

	"github.com/okian/scoutroute/internal/adapters/repository"
	"github.com/okian/scoutroute/internal/config"
	"github.com/okian/scoutroute/internal/domain/candidate"
	"github.com/okian/scoutroute/internal/domain/geo"
	"github.com/okian/scoutroute/internal/domain/model"
	"github.com/okian/scoutroute/internal/domain/season"
)

// levelKeys maps configuration season keys to competitive levels.
var levelKeys = map[string]model.Level{
	"pro":  model.LevelPro,
	"ncaa": model.LevelNCAA,
	"hs":   model.LevelHS,
}

// OptionsFromConfig translates process configuration into service
// options: weekday names become time.Weekday, tier keys become ints,
// and season windows become typed windows.
func OptionsFromConfig(cfg *config.Config) ([]Option, error) {
	blackout, err := season.ParseWeekday(cfg.BlackoutWeekday)
	if err != nil {
		return nil, fmt.Errorf("blackout_weekday: %w", err)
	}
	bonusDay, err := season.ParseWeekday(cfg.AnchorBonusWeekday)
	if err != nil {
		return nil, fmt.Errorf("anchor_bonus_weekday: %w", err)
	}

	tier := make(map[int]float64, len(cfg.TierWeights))
	for key, weight := range cfg.TierWeights {
		t, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("tier_weights key %q: %w", key, err)
		}
		tier[t] = weight
	}

	opts := []Option{
		WithHome(model.Coordinates{Lat: cfg.HomeLat, Lng: cfg.HomeLng}),
		WithMaxDriveMinutes(cfg.MaxDriveMinutes),
		WithCalendar(season.NewCalendar(season.WithBlackoutWeekday(blackout))),
		WithEstimator(geo.New(
			geo.WithDetourFactor(cfg.DetourFactor),
			geo.WithRoadSpeed(cfg.RoadSpeedKmh),
			geo.WithCruiseSpeed(cfg.CruiseSpeedKmh),
			geo.WithGroundOverhead(cfg.GroundOverheadHours),
		)),
		WithWeights(candidate.Weights{
			Tier:         tier,
			BonusWeekday: bonusDay,
			BonusFactor:  cfg.AnchorBonusFactor,
		}),
		WithPlanStore(repository.NewMemoryStore(repository.WithCapacity(cfg.PlanStoreCapacity))),
	}

	for key, sw := range cfg.Seasons {
		level, ok := levelKeys[key]
		if !ok {
			return nil, fmt.Errorf("seasons: unknown level %q", key)
		}
		days := make([]time.Weekday, 0, len(sw.HomeWeekdays))
		for _, name := range sw.HomeWeekdays {
			d, err := season.ParseWeekday(name)
			if err != nil {
				return nil, fmt.Errorf("seasons.%s.home_weekdays: %w", key, err)
			}
			days = append(days, d)
		}
		w := season.Window{Start: sw.Start, End: sw.End, HomeWeekdays: days}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("seasons.%s: %w", key, err)
		}
		opts = append(opts, WithSeasonWindow(level, w))
	}
	return opts, nil
}

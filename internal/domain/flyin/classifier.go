// Package flyin accounts for every athlete still owing visits that the
// selected road trips do not cover: venues beyond the drive radius
// become fly-in candidates, athletes with no opportunities at all are
// reported unreachable.
package flyin

import (
	"sort"
	"time"

	"github.com/okian/scoutroute/internal/domain/geo"
	"github.com/okian/scoutroute/internal/domain/model"
	"github.com/okian/scoutroute/internal/domain/schedule"
	"github.com/okian/scoutroute/internal/domain/season"
)

const defaultMaxDriveMinutes = 180

// unreachableReason is the report text for athletes with zero eligible
// events anywhere in range.
const unreachableReason = "no visit opportunities found in range"

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithEstimator sets the travel-time estimator.
func WithEstimator(est *geo.Estimator) Option {
	return func(c *Classifier) {
		if est != nil {
			c.est = est
		}
	}
}

// WithHome sets the scouts' home base.
func WithHome(home model.Coordinates) Option {
	return func(c *Classifier) {
		c.home = home
	}
}

// WithMaxDriveMinutes sets the one-way drive radius.
func WithMaxDriveMinutes(minutes int) Option {
	return func(c *Classifier) {
		if minutes > 0 {
			c.maxDriveMinutes = minutes
		}
	}
}

// Classifier partitions the leftover visit opportunities of uncovered
// athletes into fly-in candidates and unreachable reports.
type Classifier struct {
	est             *geo.Estimator
	home            model.Coordinates
	maxDriveMinutes int
}

// NewClassifier creates a Classifier with default configuration.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		est:             geo.New(),
		maxDriveMinutes: defaultMaxDriveMinutes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// venueGroup accumulates one venue's leftover events.
type venueGroup struct {
	venue    model.Venue
	players  []string
	seen     map[string]struct{}
	dates    map[time.Time]struct{}
	earliest model.GameEvent
}

// Classify walks the roster's uncovered athletes and their remaining
// eligible events. Venue groups inside the drive radius are skipped:
// road-reachable athletes that simply were not selected this run are an
// expected outcome, not an error.
func (c *Classifier) Classify(roster []model.RosterPlayer, eligible []model.GameEvent, covered map[string]bool) ([]model.FlyInVisit, []model.UnvisitablePlayer) {
	uncovered := make(map[string]string) // normalized -> display name
	var uncoveredOrder []string
	for _, p := range roster {
		key := model.NormalizeName(p.Name)
		if p.VisitsRemaining() > 0 && !covered[key] {
			if _, ok := uncovered[key]; !ok {
				uncovered[key] = p.Name
				uncoveredOrder = append(uncoveredOrder, key)
			}
		}
	}
	if len(uncovered) == 0 {
		return nil, nil
	}

	groups := make(map[string]*venueGroup)
	var groupOrder []string
	hasEvents := make(map[string]bool) // uncovered athletes with any eligible event
	for _, ev := range eligible {
		for _, name := range ev.PlayerNames {
			key := model.NormalizeName(name)
			display, ok := uncovered[key]
			if !ok {
				continue
			}
			hasEvents[key] = true

			vk := schedule.VenueKey(ev.Venue.Coords)
			g, ok := groups[vk]
			if !ok {
				g = &venueGroup{
					venue:    ev.Venue,
					seen:     make(map[string]struct{}),
					dates:    make(map[time.Time]struct{}),
					earliest: ev,
				}
				groups[vk] = g
				groupOrder = append(groupOrder, vk)
			}
			if _, dup := g.seen[key]; !dup {
				g.seen[key] = struct{}{}
				g.players = append(g.players, display)
			}
			g.dates[season.Day(ev.Date)] = struct{}{}
			if season.Day(ev.Date).Before(season.Day(g.earliest.Date)) {
				g.earliest = ev
			}
		}
	}

	var visits []model.FlyInVisit
	for _, vk := range groupOrder {
		g := groups[vk]
		if c.est.DriveMinutes(c.home, g.venue.Coords) <= c.maxDriveMinutes {
			// Reachable by road; it just lost out this run.
			continue
		}
		visits = append(visits, c.visit(g))
	}
	sort.SliceStable(visits, func(i, j int) bool {
		if len(visits[i].PlayerNames) != len(visits[j].PlayerNames) {
			return len(visits[i].PlayerNames) > len(visits[j].PlayerNames)
		}
		return visits[i].Venue.Name < visits[j].Venue.Name
	})

	var unreachable []model.UnvisitablePlayer
	for _, key := range uncoveredOrder {
		if !hasEvents[key] {
			unreachable = append(unreachable, model.UnvisitablePlayer{
				Name:   uncovered[key],
				Reason: unreachableReason,
			})
		}
	}
	return visits, unreachable
}

// visit materializes one fly-in record with travel estimates and
// source/confidence passed through from the group's earliest event.
func (c *Classifier) visit(g *venueGroup) model.FlyInVisit {
	dates := make([]time.Time, 0, len(g.dates))
	for d := range g.dates {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	players := append([]string(nil), g.players...)
	sort.Strings(players)

	km := c.est.DistanceKm(c.home, g.venue.Coords)
	return model.FlyInVisit{
		Venue:                g.venue,
		PlayerNames:          players,
		Dates:                dates,
		DistanceKm:           km,
		EstimatedTravelHours: c.est.FlightHours(km),
		Source:               g.earliest.Source,
		Confidence:           g.earliest.Confidence,
	}
}

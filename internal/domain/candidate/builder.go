// Package candidate enumerates trip candidates: for every eligible
// anchor event on every eligible day, one potential itinerary bundling
// same-window nearby events within the drive radius, scored by
// tier-weighted visit value.
package candidate

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/okian/scoutroute/internal/domain/geo"
	"github.com/okian/scoutroute/internal/domain/model"
	"github.com/okian/scoutroute/internal/domain/schedule"
	"github.com/okian/scoutroute/internal/domain/season"
)

// Default builder configuration constants.
const (
	defaultMaxDriveMinutes = 180
	defaultBonusFactor     = 1.2
	// Trip window: one day before the anchor through two days after.
	windowDaysBefore = 1
	windowDaysAfter  = 2
)

// defaultTierWeights is the descending tier weight table. Tier 4
// athletes never drive scoring.
func defaultTierWeights() map[int]float64 {
	return map[int]float64{1: 10, 2: 5, 3: 2, 4: 0}
}

// Weights scores a set of athletes for one candidate trip.
type Weights struct {
	Tier         map[int]float64
	BonusWeekday time.Weekday
	BonusFactor  float64
}

// DefaultWeights returns the standard tier table with a Thursday anchor
// bonus.
func DefaultWeights() Weights {
	return Weights{
		Tier:         defaultTierWeights(),
		BonusWeekday: time.Thursday,
		BonusFactor:  defaultBonusFactor,
	}
}

// Score computes the visit value of a trip anchored on anchorDay that
// reaches players: the sum over reachable athletes still owing visits of
// tierWeight x visitsRemaining, with the preferred-weekday bonus applied
// and rounded to the nearest integer.
func (w Weights) Score(anchorDay time.Time, players []string, remaining map[string]model.RosterPlayer) int {
	raw := 0.0
	for _, name := range players {
		p, ok := remaining[model.NormalizeName(name)]
		if !ok {
			continue
		}
		raw += w.Tier[p.Tier] * float64(p.VisitsRemaining())
	}
	if anchorDay.Weekday() == w.BonusWeekday {
		raw *= w.BonusFactor
	}
	return int(math.Round(raw))
}

// RemainingByName indexes roster athletes who still owe visits by
// normalized name.
func RemainingByName(roster []model.RosterPlayer) map[string]model.RosterPlayer {
	remaining := make(map[string]model.RosterPlayer, len(roster))
	for _, p := range roster {
		if p.VisitsRemaining() > 0 {
			remaining[model.NormalizeName(p.Name)] = p
		}
	}
	return remaining
}

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithEstimator sets the travel-time estimator.
func WithEstimator(est *geo.Estimator) Option {
	return func(b *Builder) {
		if est != nil {
			b.est = est
		}
	}
}

// WithCalendar sets the blackout calendar.
func WithCalendar(cal *season.Calendar) Option {
	return func(b *Builder) {
		if cal != nil {
			b.cal = cal
		}
	}
}

// WithHome sets the scouts' home base.
func WithHome(home model.Coordinates) Option {
	return func(b *Builder) {
		b.home = home
	}
}

// WithMaxDriveMinutes sets the one-way drive radius.
func WithMaxDriveMinutes(minutes int) Option {
	return func(b *Builder) {
		if minutes > 0 {
			b.maxDriveMinutes = minutes
		}
	}
}

// WithWeights sets the visit-value scoring weights.
func WithWeights(w Weights) Option {
	return func(b *Builder) {
		if w.Tier != nil {
			b.weights = w
		}
	}
}

// Builder enumerates trip candidates over an eligible event universe.
// It is a pure computation over already-resolved in-memory data.
type Builder struct {
	est             *geo.Estimator
	cal             *season.Calendar
	home            model.Coordinates
	maxDriveMinutes int
	weights         Weights
}

// NewBuilder creates a Builder with default configuration.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		est:             geo.New(),
		cal:             season.NewCalendar(),
		maxDriveMinutes: defaultMaxDriveMinutes,
		weights:         DefaultWeights(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Weights exposes the builder's scoring weights so the selection engine
// rescoring uses the same table.
func (b *Builder) Weights() Weights {
	return b.weights
}

// MaxDriveMinutes exposes the configured drive radius.
func (b *Builder) MaxDriveMinutes() int {
	return b.maxDriveMinutes
}

// Eligible filters events down to usable visit opportunities: inside the
// planning range, not on a blackout day, carrying real coordinates, and
// reaching at least one athlete who still owes visits.
func (b *Builder) Eligible(events []model.GameEvent, remaining map[string]model.RosterPlayer, start, end time.Time) []model.GameEvent {
	start, end = season.Day(start), season.Day(end)
	var eligible []model.GameEvent
	for _, ev := range events {
		d := season.Day(ev.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		if b.cal.IsBlackout(d) {
			continue
		}
		if ev.Venue.Coords.IsZero() {
			continue
		}
		if !reachesRemaining(ev, remaining) {
			continue
		}
		eligible = append(eligible, ev)
	}
	return eligible
}

func reachesRemaining(ev model.GameEvent, remaining map[string]model.RosterPlayer) bool {
	for _, name := range ev.PlayerNames {
		if _, ok := remaining[model.NormalizeName(name)]; ok {
			return true
		}
	}
	return false
}

// Build enumerates one candidate per surviving anchor. The input events
// must already be eligible (see Eligible); remaining indexes athletes
// still owing visits.
func (b *Builder) Build(eligible []model.GameEvent, remaining map[string]model.RosterPlayer, start, end time.Time) []model.TripCandidate {
	if len(eligible) == 0 {
		return nil
	}

	// One estimate per distinct venue, memoized by rounded coordinates.
	homeDrive := make(map[string]int)
	for _, ev := range eligible {
		key := venueKey(ev.Venue.Coords)
		if _, ok := homeDrive[key]; !ok {
			homeDrive[key] = b.est.DriveMinutes(b.home, ev.Venue.Coords)
		}
	}

	byDay := make(map[string][]model.GameEvent)
	for _, ev := range eligible {
		k := season.Day(ev.Date).Format(time.DateOnly)
		byDay[k] = append(byDay[k], ev)
	}

	var candidates []model.TripCandidate
	anchored := make(map[string]struct{}) // venue x week dedup

	for _, day := range season.DatesInRange(start, end) {
		if b.cal.IsBlackout(day) {
			continue
		}
		for _, anchor := range byDay[day.Format(time.DateOnly)] {
			drive := homeDrive[venueKey(anchor.Venue.Coords)]
			if drive > b.maxDriveMinutes {
				// Beyond the radius: never a candidate, not even solo.
				continue
			}
			weekKey := anchorWeekKey(anchor.Venue.Coords, day)
			if _, ok := anchored[weekKey]; ok {
				continue
			}
			anchored[weekKey] = struct{}{}
			candidates = append(candidates, b.buildOne(anchor, day, drive, byDay, remaining))
		}
	}
	return candidates
}

// buildOne assembles the candidate for a single anchor: gather window
// events within the drive radius of the anchor venue, union athletes,
// and total up the driving.
func (b *Builder) buildOne(anchor model.GameEvent, anchorDay time.Time, homeDriveMin int, byDay map[string][]model.GameEvent, remaining map[string]model.RosterPlayer) model.TripCandidate {
	var nearby []model.NearbyEvent
	for _, day := range season.DatesInRange(anchorDay.AddDate(0, 0, -windowDaysBefore), anchorDay.AddDate(0, 0, windowDaysAfter)) {
		if b.cal.IsBlackout(day) {
			continue
		}
		for _, ev := range byDay[day.Format(time.DateOnly)] {
			if ev.ID == anchor.ID {
				continue
			}
			drive := b.est.DriveMinutes(anchor.Venue.Coords, ev.Venue.Coords)
			if drive > b.maxDriveMinutes {
				continue
			}
			nearby = append(nearby, model.NearbyEvent{Event: ev, DriveFromAnchorMinutes: drive})
		}
	}

	players := unionPlayers(anchor, nearby)

	total := homeDriveMin
	for _, n := range nearby {
		total += n.DriveFromAnchorMinutes
	}
	last := anchor.Venue.Coords
	if len(nearby) > 0 {
		last = nearby[len(nearby)-1].Event.Venue.Coords
	}
	total += b.est.DriveMinutes(last, b.home)

	return model.TripCandidate{
		AnchorEvent:          anchor,
		NearbyEvents:         nearby,
		SuggestedDays:        suggestedDays(anchor, nearby),
		DriveFromHomeMinutes: homeDriveMin,
		TotalDriveMinutes:    total,
		VenueCount:           venueCount(anchor, nearby),
		VisitValue:           b.weights.Score(anchorDay, players, remaining),
		PlayerNames:          players,
	}
}

// unionPlayers collects the distinct athletes across the anchor and all
// nearby events, preserving first-seen order.
func unionPlayers(anchor model.GameEvent, nearby []model.NearbyEvent) []string {
	seen := make(map[string]struct{})
	var players []string
	add := func(names []string) {
		for _, name := range names {
			key := model.NormalizeName(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			players = append(players, name)
		}
	}
	add(anchor.PlayerNames)
	for _, n := range nearby {
		add(n.Event.PlayerNames)
	}
	return players
}

func suggestedDays(anchor model.GameEvent, nearby []model.NearbyEvent) []time.Time {
	seen := map[time.Time]struct{}{season.Day(anchor.Date): {}}
	for _, n := range nearby {
		seen[season.Day(n.Event.Date)] = struct{}{}
	}
	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func venueCount(anchor model.GameEvent, nearby []model.NearbyEvent) int {
	seen := map[string]struct{}{venueKey(anchor.Venue.Coords): {}}
	for _, n := range nearby {
		seen[venueKey(n.Event.Venue.Coords)] = struct{}{}
	}
	return len(seen)
}

func venueKey(c model.Coordinates) string {
	return schedule.VenueKey(c)
}

// anchorWeekKey dedups anchors: a venue may anchor at most once per
// calendar week, which stops synthetic recurring events from spawning a
// near-identical candidate for every day at the same facility.
func anchorWeekKey(c model.Coordinates, day time.Time) string {
	return fmt.Sprintf("%s|%d-%02d", schedule.VenueKey(c), day.Year(), season.WeekNumber(day))
}

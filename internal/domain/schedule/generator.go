// Package schedule produces the candidate universe of visit
// opportunities for a planning run. Confirmed events arrive from
// upstream collaborators already resolved; this package fills the gaps
// with synthetic recurring-venue events for levels that lack confirmed
// schedules, then merges the two, preferring confirmed data.
package schedule

import (
	"fmt"
	"time"

	"github.com/okian/scoutroute/internal/domain/model"
	"github.com/okian/scoutroute/internal/domain/season"
)

// Resolver maps a free-text organization name to a canonical venue.
// Implementations consult operator overrides before any static table.
type Resolver interface {
	// Resolve returns the venue for rawOrg, or false if the name cannot
	// be mapped. Resolution failure is expected sparse data, not an
	// error: the athlete simply contributes no synthetic events.
	Resolve(rawOrg string) (model.Venue, bool)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(rawOrg string) (model.Venue, bool)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(rawOrg string) (model.Venue, bool) {
	return f(rawOrg)
}

// awayNote annotates low-confidence synthetic events. The wording is a
// heuristic hint, not load-bearing logic.
const awayNote = "not a typical home day; the athlete may be traveling"

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithCalendar sets the blackout calendar.
func WithCalendar(cal *season.Calendar) Option {
	return func(g *Generator) {
		if cal != nil {
			g.cal = cal
		}
	}
}

// WithWindow sets the season window for one competitive level.
func WithWindow(level model.Level, w season.Window) Option {
	return func(g *Generator) {
		g.windows[level] = w
	}
}

// WithResolver sets the organization-to-venue resolver.
func WithResolver(r Resolver) Option {
	return func(g *Generator) {
		if r != nil {
			g.resolver = r
		}
	}
}

// Generator emits synthetic visit opportunities for roster athletes
// whose levels lack confirmed schedule data.
type Generator struct {
	cal      *season.Calendar
	windows  map[model.Level]season.Window
	resolver Resolver
}

// NewGenerator creates a Generator with default season windows. The
// defaults describe a spring scouting cycle out of the American
// Southwest; callers with other geographies override per level.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		cal: season.NewCalendar(),
		windows: map[model.Level]season.Window{
			model.LevelPro: {
				Start: "02-14", End: "03-28",
				HomeWeekdays: []time.Weekday{time.Tuesday, time.Wednesday, time.Friday, time.Saturday},
			},
			model.LevelNCAA: {
				Start: "02-14", End: "06-20",
				HomeWeekdays: []time.Weekday{time.Friday, time.Saturday, time.Sunday},
			},
			model.LevelHS: {
				Start: "03-01", End: "06-05",
				HomeWeekdays: []time.Weekday{time.Tuesday, time.Thursday, time.Friday},
			},
		},
		resolver: ResolverFunc(func(string) (model.Venue, bool) {
			return model.Venue{}, false
		}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// sourceFor maps a competitive level to its synthetic event source.
func sourceFor(level model.Level) model.EventSource {
	switch level {
	case model.LevelPro:
		return model.SourceSyntheticSpringCamp
	case model.LevelNCAA:
		return model.SourceSyntheticNCAA
	default:
		return model.SourceSyntheticHS
	}
}

// Synthetic emits one event per non-blackout in-season date at each
// athlete's resolved home venue, for every athlete still owing visits.
// Athletes whose org cannot be resolved contribute zero events; they
// surface later as unreachable if nothing else covers them.
func (g *Generator) Synthetic(roster []model.RosterPlayer, start, end time.Time) []model.GameEvent {
	var events []model.GameEvent
	for _, p := range roster {
		if p.VisitsRemaining() == 0 {
			continue
		}
		w, ok := g.windows[p.Level]
		if !ok {
			continue
		}
		venue, ok := g.resolver.Resolve(p.Org)
		if !ok || venue.Coords.IsZero() {
			continue
		}
		src := sourceFor(p.Level)
		for _, d := range season.DatesInRange(start, end) {
			if g.cal.IsBlackout(d) || !w.Contains(d) {
				continue
			}
			ev := model.GameEvent{
				ID:          EventID(src, d, venue, p.Name),
				Date:        d,
				Venue:       venue,
				IsHome:      true,
				Source:      src,
				PlayerNames: []string{p.Name},
			}
			if w.IsHomeDay(d) {
				ev.Confidence = model.ConfidenceMedium
			} else {
				ev.Confidence = model.ConfidenceLow
				ev.ConfidenceNote = awayNote
			}
			events = append(events, ev)
		}
	}
	return events
}

// EventID builds the deterministic identity used for merge
// deduplication: one athlete at one venue on one date.
func EventID(src model.EventSource, date time.Time, venue model.Venue, player string) string {
	return fmt.Sprintf("%s|%s|%s|%s",
		src, date.Format(time.DateOnly), VenueKey(venue.Coords), model.NormalizeName(player))
}

// VenueKey collapses coordinates into a map key with ~100 m precision,
// so the same facility resolved through slightly different paths still
// deduplicates.
func VenueKey(c model.Coordinates) string {
	return fmt.Sprintf("%.3f,%.3f", c.Lat, c.Lng)
}

// Merge combines confirmed and synthetic events into one universe. When
// a confirmed event already describes an athlete on a date at a venue,
// the matching synthetic event is suppressed.
func Merge(confirmed, synthetic []model.GameEvent) []model.GameEvent {
	seen := make(map[string]struct{})
	for _, ev := range confirmed {
		for _, name := range ev.PlayerNames {
			seen[occupancyKey(ev, name)] = struct{}{}
		}
	}

	merged := make([]model.GameEvent, 0, len(confirmed)+len(synthetic))
	merged = append(merged, confirmed...)
	for _, ev := range synthetic {
		duplicate := false
		for _, name := range ev.PlayerNames {
			if _, ok := seen[occupancyKey(ev, name)]; ok {
				duplicate = true
				break
			}
		}
		if !duplicate {
			merged = append(merged, ev)
		}
	}
	return merged
}

// occupancyKey identifies "this athlete, this date, this venue"
// regardless of event source.
func occupancyKey(ev model.GameEvent, player string) string {
	return fmt.Sprintf("%s|%s|%s",
		ev.Date.Format(time.DateOnly), VenueKey(ev.Venue.Coords), model.NormalizeName(player))
}

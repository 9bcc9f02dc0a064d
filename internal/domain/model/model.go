// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// Level is an athlete's competitive level.
type Level string

// Competitive levels on the roster.
const (
	LevelPro  Level = "pro"
	LevelNCAA Level = "ncaa"
	LevelHS   Level = "hs"
)

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelPro, LevelNCAA, LevelHS:
		return true
	}
	return false
}

// EventSource identifies where a visit opportunity came from.
type EventSource string

// Event sources. Confirmed events arrive from upstream schedule data;
// synthetic events are generated per level from recurring venues.
const (
	SourceConfirmedPro        EventSource = "confirmed-pro"
	SourceConfirmedNCAA       EventSource = "confirmed-ncaa"
	SourceSyntheticNCAA       EventSource = "synthetic-ncaa"
	SourceSyntheticHS         EventSource = "synthetic-hs"
	SourceSyntheticSpringCamp EventSource = "synthetic-spring-training"
)

// Confirmed reports whether the source is upstream schedule data rather
// than a synthetic recurring-venue guess.
func (s EventSource) Confirmed() bool {
	return s == SourceConfirmedPro || s == SourceConfirmedNCAA
}

// Confidence grades how likely an athlete is to actually be present.
type Confidence string

// Confidence grades for synthetic events.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// PriorityStatus reports how a priority-athlete constraint was satisfied.
type PriorityStatus string

// Priority constraint outcomes.
const (
	PriorityIncluded     PriorityStatus = "included"
	PrioritySeparateTrip PriorityStatus = "separate-trip"
	PriorityUnreachable  PriorityStatus = "unreachable"
)

// Coordinates is a geographic point. The zero value is the sentinel for
// "no usable location" and must never be used as an anchor or stop.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero reports whether c is the unusable 0,0 sentinel.
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}

// Venue is a named location where visit opportunities occur.
type Venue struct {
	Name   string      `json:"name"`
	Coords Coordinates `json:"coords"`
}

// RosterPlayer is an athlete the scouts must visit. Players are loaded
// from the roster source at session start and only consumed by the
// planning core, never created or destroyed by it.
type RosterPlayer struct {
	Name            string `json:"name"`
	NormalizedName  string `json:"normalized_name"`
	Level           Level  `json:"level"`
	Org             string `json:"org"`
	Tier            int    `json:"tier"`
	VisitTarget     int    `json:"visit_target"`
	VisitsCompleted int    `json:"visits_completed"`
	LastVisitDate   string `json:"last_visit_date,omitempty"`
}

// VisitsRemaining is the number of visits still owed; never negative.
func (p RosterPlayer) VisitsRemaining() int {
	if r := p.VisitTarget - p.VisitsCompleted; r > 0 {
		return r
	}
	return 0
}

// NormalizeName canonicalizes an athlete name for identity comparisons:
// lowercase, trimmed, inner whitespace collapsed to single spaces.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// GameEvent is a single date+venue occurrence where one or more athletes
// are expected to be present. Events are regenerated every planning run;
// the upstream schedule and roster remain the unit of truth.
type GameEvent struct {
	ID             string      `json:"id"`
	Date           time.Time   `json:"date"`
	Venue          Venue       `json:"venue"`
	IsHome         bool        `json:"is_home"`
	Source         EventSource `json:"source"`
	PlayerNames    []string    `json:"player_names"`
	Confidence     Confidence  `json:"confidence,omitempty"`
	ConfidenceNote string      `json:"confidence_note,omitempty"`
	VerifyURL      string      `json:"verify_url,omitempty"`
}

// NearbyEvent annotates a window event with its drive time from the
// trip's anchor venue.
type NearbyEvent struct {
	Event                  GameEvent `json:"event"`
	DriveFromAnchorMinutes int       `json:"drive_from_anchor_minutes"`
}

// TripCandidate is one potential itinerary: an anchor event plus nearby
// events inside the trip window, with drive totals and a tier-weighted
// score. Candidates are derived data, recomputed every planning run.
type TripCandidate struct {
	AnchorEvent          GameEvent     `json:"anchor_event"`
	NearbyEvents         []NearbyEvent `json:"nearby_events"`
	SuggestedDays        []time.Time   `json:"suggested_days"`
	DriveFromHomeMinutes int           `json:"drive_from_home_minutes"`
	TotalDriveMinutes    int           `json:"total_drive_minutes"`
	VenueCount           int           `json:"venue_count"`
	VisitValue           int           `json:"visit_value"`
	PlayerNames          []string      `json:"player_names"`
}

// FlyInVisit is a venue-grouped visit opportunity beyond the drive
// radius, reported with flight+ground travel time instead of being
// bundled into a road trip.
type FlyInVisit struct {
	Venue                Venue       `json:"venue"`
	PlayerNames          []string    `json:"player_names"`
	Dates                []time.Time `json:"dates"`
	DistanceKm           float64     `json:"distance_km"`
	EstimatedTravelHours float64     `json:"estimated_travel_hours"`
	Source               EventSource `json:"source"`
	Confidence           Confidence  `json:"confidence,omitempty"`
}

// UnvisitablePlayer is an athlete with zero visit opportunities in range.
type UnvisitablePlayer struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// PriorityResult describes how one priority-athlete constraint was met.
type PriorityResult struct {
	PlayerName string         `json:"player_name"`
	Status     PriorityStatus `json:"status"`
	Reason     string         `json:"reason,omitempty"`
}

// TripPlan is the final planning output.
type TripPlan struct {
	ID                 string              `json:"id"`
	GeneratedAt        time.Time           `json:"generated_at"`
	Trips              []TripCandidate     `json:"trips"`
	FlyInVisits        []FlyInVisit        `json:"fly_in_visits"`
	UnvisitablePlayers []UnvisitablePlayer `json:"unvisitable_players"`
	CoveragePercent    float64             `json:"coverage_percent"`
	PriorityResults    []PriorityResult    `json:"priority_results,omitempty"`
}

// Package geo provides closed-form travel estimates between geographic
// points. The estimator deliberately avoids routing-API calls: candidate
// generation needs tens of thousands of pairwise estimates per planning
// run, and a haversine-based approximation is accurate enough to rank
// trips while costing nothing.
package geo

import (
	"math"

	"github.com/okian/scoutroute/internal/domain/model"
)

// Default estimator constants.
const (
	earthRadiusKm              = 6371.0
	defaultDetourFactor        = 1.3
	defaultRoadSpeedKmh        = 90.0
	defaultCruiseSpeedKmh      = 800.0
	defaultGroundOverheadHours = 3.0
	minutesPerHour             = 60.0
)

// Option applies a configuration option to the Estimator.
type Option func(*Estimator)

// WithDetourFactor sets the road-distance multiplier applied on top of
// the great-circle distance.
func WithDetourFactor(f float64) Option {
	return func(e *Estimator) {
		if f >= 1 {
			e.detourFactor = f
		}
	}
}

// WithRoadSpeed sets the assumed average road speed in km/h.
func WithRoadSpeed(kmh float64) Option {
	return func(e *Estimator) {
		if kmh > 0 {
			e.roadSpeedKmh = kmh
		}
	}
}

// WithCruiseSpeed sets the assumed flight cruise speed in km/h.
func WithCruiseSpeed(kmh float64) Option {
	return func(e *Estimator) {
		if kmh > 0 {
			e.cruiseSpeedKmh = kmh
		}
	}
}

// WithGroundOverhead sets the fixed airport plus rental-car overhead, in
// hours, added to every flight estimate.
func WithGroundOverhead(hours float64) Option {
	return func(e *Estimator) {
		if hours >= 0 {
			e.groundOverheadHours = hours
		}
	}
}

// Estimator converts coordinate pairs into drive-time and flight-time
// estimates. It is deterministic, performs no I/O, and has no failure
// modes; methods are safe for concurrent use.
type Estimator struct {
	detourFactor        float64
	roadSpeedKmh        float64
	cruiseSpeedKmh      float64
	groundOverheadHours float64
}

// New creates an Estimator with default configuration.
func New(opts ...Option) *Estimator {
	e := &Estimator{
		detourFactor:        defaultDetourFactor,
		roadSpeedKmh:        defaultRoadSpeedKmh,
		cruiseSpeedKmh:      defaultCruiseSpeedKmh,
		groundOverheadHours: defaultGroundOverheadHours,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DistanceKm returns the great-circle distance between a and b via the
// haversine formula.
func (e *Estimator) DistanceKm(a, b model.Coordinates) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// DriveMinutes estimates one-way drive time between a and b: haversine
// distance scaled by the detour factor over the assumed road speed,
// rounded to the nearest whole minute.
func (e *Estimator) DriveMinutes(a, b model.Coordinates) int {
	km := e.DistanceKm(a, b) * e.detourFactor
	return int(math.Round(km / e.roadSpeedKmh * minutesPerHour))
}

// FlightHours estimates fly-in travel time for a trip of distanceKm:
// cruise time plus the fixed ground overhead on both ends, rounded to
// one decimal.
func (e *Estimator) FlightHours(distanceKm float64) float64 {
	hours := distanceKm/e.cruiseSpeedKmh + e.groundOverheadHours
	return math.Round(hours*10) / 10
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

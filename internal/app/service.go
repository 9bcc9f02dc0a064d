// Package app provides the core planning service that wires the domain
// pipeline together: event generation, candidate building, selection,
// and fly-in classification.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/scoutroute/internal/adapters/repository"
	"github.com/okian/scoutroute/internal/domain/candidate"
	"github.com/okian/scoutroute/internal/domain/flyin"
	"github.com/okian/scoutroute/internal/domain/geo"
	"github.com/okian/scoutroute/internal/domain/model"
	"github.com/okian/scoutroute/internal/domain/schedule"
	"github.com/okian/scoutroute/internal/domain/season"
	"github.com/okian/scoutroute/internal/domain/selection"
	"github.com/okian/scoutroute/pkg/logger"
	"github.com/okian/scoutroute/pkg/metrics"
)

// Stage identifies a coarse pipeline milestone. Progress callbacks are
// purely UI feedback, never control flow.
type Stage string

// Pipeline milestones in execution order.
const (
	StagePreparing  Stage = "preparing"
	StageAnalyzing  Stage = "analyzing"
	StageOptimizing Stage = "optimizing"
	StageFlyIn      Stage = "fly-in analysis"
)

// ProgressFunc receives coarse milestone notifications during a run.
type ProgressFunc func(stage Stage)

// PlanRequest carries one planning invocation's inputs. The roster and
// confirmed events must arrive fully materialized; the service performs
// no upstream fetching.
type PlanRequest struct {
	Roster          []model.RosterPlayer
	ConfirmedEvents []model.GameEvent
	Start           time.Time
	End             time.Time

	// MaxDriveMinutes overrides the service default when positive.
	MaxDriveMinutes int

	// PriorityPlayers holds up to two athlete names the operator wants
	// guaranteed in the first trip(s).
	PriorityPlayers []string

	// Progress, when set, is invoked at each pipeline milestone.
	Progress ProgressFunc
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEstimator sets the travel-time estimator.
func WithEstimator(est *geo.Estimator) Option {
	return func(s *Service) {
		if est != nil {
			s.est = est
		}
	}
}

// WithCalendar sets the blackout calendar.
func WithCalendar(cal *season.Calendar) Option {
	return func(s *Service) {
		if cal != nil {
			s.cal = cal
		}
	}
}

// WithHome sets the scouts' home base coordinates.
func WithHome(home model.Coordinates) Option {
	return func(s *Service) {
		s.home = home
	}
}

// WithMaxDriveMinutes sets the default one-way drive radius.
func WithMaxDriveMinutes(minutes int) Option {
	return func(s *Service) {
		if minutes > 0 {
			s.maxDriveMinutes = minutes
		}
	}
}

// WithWeights sets the visit-value scoring weights.
func WithWeights(w candidate.Weights) Option {
	return func(s *Service) {
		if w.Tier != nil {
			s.weights = w
		}
	}
}

// WithSeasonWindow sets the season window for one competitive level.
func WithSeasonWindow(level model.Level, w season.Window) Option {
	return func(s *Service) {
		s.windows[level] = w
	}
}

// WithResolver sets the organization-to-venue resolver used by the
// synthetic generators.
func WithResolver(r schedule.Resolver) Option {
	return func(s *Service) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithPlanStore sets the plan history store.
func WithPlanStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// Service runs the planning pipeline. A single Service is safe for
// concurrent Plan calls: every run works on its own derived structures
// and the shared components are read-only after construction.
type Service struct {
	logger          logger.Logger
	est             *geo.Estimator
	cal             *season.Calendar
	home            model.Coordinates
	maxDriveMinutes int
	weights         candidate.Weights
	windows         map[model.Level]season.Window
	resolver        schedule.Resolver
	store           repository.Store
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		logger:          logger.Nop(),
		est:             geo.New(),
		cal:             season.NewCalendar(),
		home:            model.Coordinates{Lat: 33.4484, Lng: -112.0740},
		maxDriveMinutes: 180,
		weights:         candidate.DefaultWeights(),
		windows:         make(map[model.Level]season.Window),
		store:           repository.NewMemoryStore(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Plan executes the full pipeline for one request and stores the
// resulting plan. Degenerate input (empty roster, no eligible events)
// yields a well-formed empty plan, not an error.
func (s *Service) Plan(ctx context.Context, req PlanRequest) (model.TripPlan, error) {
	started := time.Now()

	if req.End.Before(req.Start) {
		return model.TripPlan{}, fmt.Errorf("%w: end before start", ErrInvalidRequest)
	}
	if len(req.PriorityPlayers) > selection.MaxPriorityPlayers {
		return model.TripPlan{}, fmt.Errorf("%w: at most %d priority players",
			ErrInvalidRequest, selection.MaxPriorityPlayers)
	}

	maxDrive := s.maxDriveMinutes
	if req.MaxDriveMinutes > 0 {
		maxDrive = req.MaxDriveMinutes
	}

	progress := req.Progress
	if progress == nil {
		progress = func(Stage) {}
	}

	// Stage 1: assemble the event universe.
	progress(StagePreparing)
	roster := normalizeRoster(req.Roster)
	remaining := candidate.RemainingByName(roster)

	gen := s.generator()
	events := schedule.Merge(req.ConfirmedEvents, gen.Synthetic(roster, req.Start, req.End))
	metrics.RecordEventsGenerated(len(events))
	if err := ctx.Err(); err != nil {
		return model.TripPlan{}, err
	}

	// Stage 2: enumerate candidates.
	progress(StageAnalyzing)
	builder := candidate.NewBuilder(
		candidate.WithEstimator(s.est),
		candidate.WithCalendar(s.cal),
		candidate.WithHome(s.home),
		candidate.WithMaxDriveMinutes(maxDrive),
		candidate.WithWeights(s.weights),
	)
	eligible := builder.Eligible(events, remaining, req.Start, req.End)
	candidates := builder.Build(eligible, remaining, req.Start, req.End)
	metrics.RecordCandidatesGenerated(len(candidates))
	if err := ctx.Err(); err != nil {
		return model.TripPlan{}, err
	}

	// Stage 3: select trips.
	progress(StageOptimizing)
	engine := selection.NewEngine(selection.WithWeights(s.weights))
	sel, err := engine.Select(candidates, roster, req.PriorityPlayers)
	if err != nil {
		return model.TripPlan{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if err := ctx.Err(); err != nil {
		return model.TripPlan{}, err
	}

	// Stage 4: account for everyone the trips missed.
	progress(StageFlyIn)
	classifier := flyin.NewClassifier(
		flyin.WithEstimator(s.est),
		flyin.WithHome(s.home),
		flyin.WithMaxDriveMinutes(maxDrive),
	)
	visits, unreachable := classifier.Classify(roster, eligible, sel.Covered)

	plan := model.TripPlan{
		ID:                 uuid.NewString(),
		GeneratedAt:        time.Now().UTC(),
		Trips:              emptyIfNil(sel.Trips),
		FlyInVisits:        emptyIfNil(visits),
		UnvisitablePlayers: emptyIfNil(unreachable),
		CoveragePercent:    coveragePercent(remaining, sel.Covered),
		PriorityResults:    sel.PriorityResults,
	}

	if err := s.store.Put(ctx, plan); err != nil {
		return model.TripPlan{}, fmt.Errorf("storing plan: %w", err)
	}

	elapsed := time.Since(started)
	metrics.RecordPlanComputed()
	metrics.RecordPlanDuration(float64(elapsed.Milliseconds()))
	metrics.RecordTripsSelected(len(plan.Trips))
	metrics.RecordFlyInVisits(len(plan.FlyInVisits))
	metrics.RecordUnreachablePlayers(len(plan.UnvisitablePlayers))
	metrics.UpdateCoveragePercent(plan.CoveragePercent)
	metrics.UpdateStoredPlans(s.store.Count(ctx))

	s.logger.Info(ctx, "plan computed",
		logger.String("planID", plan.ID),
		logger.Int("rosterSize", len(roster)),
		logger.Int("events", len(events)),
		logger.Int("candidates", len(candidates)),
		logger.Int("trips", len(plan.Trips)),
		logger.Int("flyIns", len(plan.FlyInVisits)),
		logger.Int("unreachable", len(plan.UnvisitablePlayers)),
		logger.Float64("coveragePercent", plan.CoveragePercent),
		logger.Duration("elapsed", elapsed),
	)
	return plan, nil
}

// GetPlan returns a previously computed plan by id.
func (s *Service) GetPlan(ctx context.Context, id string) (model.TripPlan, error) {
	return s.store.Get(ctx, id)
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{
		"storedPlans":     s.store.Count(ctx),
		"maxDriveMinutes": s.maxDriveMinutes,
		"home":            s.home,
	}
}

// generator builds the synthetic event generator from the configured
// windows and resolver.
func (s *Service) generator() *schedule.Generator {
	opts := []schedule.Option{schedule.WithCalendar(s.cal)}
	if s.resolver != nil {
		opts = append(opts, schedule.WithResolver(s.resolver))
	}
	for level, w := range s.windows {
		opts = append(opts, schedule.WithWindow(level, w))
	}
	return schedule.NewGenerator(opts...)
}

// normalizeRoster fills derived identity fields without mutating the
// caller's slice.
func normalizeRoster(roster []model.RosterPlayer) []model.RosterPlayer {
	out := make([]model.RosterPlayer, len(roster))
	for i, p := range roster {
		p.NormalizedName = model.NormalizeName(p.Name)
		out[i] = p
	}
	return out
}

// coveragePercent is the share of athletes owing visits that the
// accepted road trips reach.
func coveragePercent(remaining map[string]model.RosterPlayer, covered map[string]bool) float64 {
	if len(remaining) == 0 {
		return 0
	}
	n := 0
	for name := range remaining {
		if covered[name] {
			n++
		}
	}
	return float64(n) / float64(len(remaining)) * 100
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

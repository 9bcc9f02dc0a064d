// Package selection turns the candidate pool into the accepted trip
// list: an optional priority-athlete phase followed by a greedy
// maximum-coverage loop that rescores every remaining candidate after
// each acceptance. The heuristic is not provably optimal; it favors
// "good enough, every run" for interactive use.
package selection

import (
	"fmt"

	"github.com/okian/scoutroute/internal/domain/candidate"
	"github.com/okian/scoutroute/internal/domain/model"
	"github.com/okian/scoutroute/internal/domain/season"
)

// MaxPriorityPlayers bounds the operator-supplied priority constraint.
const MaxPriorityPlayers = 2

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWeights sets the scoring weights used for rescoring. They should
// match the weights the candidates were originally scored with.
func WithWeights(w candidate.Weights) Option {
	return func(e *Engine) {
		if w.Tier != nil {
			e.weights = w
		}
	}
}

// Engine selects trips from a candidate pool. Select is a pure function
// over its inputs; the Engine itself holds only configuration.
type Engine struct {
	weights candidate.Weights
}

// NewEngine creates an Engine with default configuration.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{weights: candidate.DefaultWeights()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of one selection run.
type Result struct {
	// Trips holds accepted candidates: priority-phase trips first in
	// constraint order, then greedy-phase trips in acceptance order.
	// Each trip's VisitValue is its marginal value at acceptance time.
	Trips []model.TripCandidate

	// PriorityResults reports how each priority constraint was met.
	PriorityResults []model.PriorityResult

	// Covered maps normalized athlete names reached by accepted trips.
	Covered map[string]bool
}

// Select runs the priority phase followed by greedy covering.
// priorityNames carries zero to two athlete names the operator wants
// guaranteed in the first trip(s).
func (e *Engine) Select(candidates []model.TripCandidate, roster []model.RosterPlayer, priorityNames []string) (Result, error) {
	if len(priorityNames) > MaxPriorityPlayers {
		return Result{}, fmt.Errorf("%w: got %d names", ErrTooManyPriorityPlayers, len(priorityNames))
	}

	s := &state{
		weights:   e.weights,
		remaining: candidate.RemainingByName(roster),
		covered:   make(map[string]bool),
		pool:      append([]model.TripCandidate(nil), candidates...),
	}
	s.uncovered = make(map[string]model.RosterPlayer, len(s.remaining))
	for name, p := range s.remaining {
		s.uncovered[name] = p
	}

	res := Result{Covered: s.covered}
	res.PriorityResults = e.priorityPhase(s, &res, priorityNames)
	e.greedyPhase(s, &res)
	return res, nil
}

// state is the mutable bookkeeping for one selection run. Scores are
// recomputed from uncovered each iteration rather than mutated on the
// shared candidate structs.
type state struct {
	weights   candidate.Weights
	remaining map[string]model.RosterPlayer
	uncovered map[string]model.RosterPlayer
	covered   map[string]bool
	pool      []model.TripCandidate
}

// score computes c's marginal value against the athletes not yet
// covered by an accepted trip.
func (s *state) score(c model.TripCandidate) int {
	return s.weights.Score(season.Day(c.AnchorEvent.Date), c.PlayerNames, s.uncovered)
}

// accept commits pool[i]: the trip is appended with its rescored value,
// its athletes are marked covered, and it leaves the pool.
func (s *state) accept(i int, res *Result) model.TripCandidate {
	trip := s.pool[i]
	trip.VisitValue = s.score(trip)
	for _, name := range trip.PlayerNames {
		key := model.NormalizeName(name)
		s.covered[key] = true
		delete(s.uncovered, key)
	}
	s.pool = append(s.pool[:i], s.pool[i+1:]...)
	res.Trips = append(res.Trips, trip)
	return trip
}

// priorityPhase satisfies explicit priority-athlete constraints before
// general covering. With two names it prefers a single trip containing
// both; failing that, each athlete gets their own best trip.
func (e *Engine) priorityPhase(s *state, res *Result, priorityNames []string) []model.PriorityResult {
	if len(priorityNames) == 0 {
		return nil
	}

	normalized := make([]string, len(priorityNames))
	for i, name := range priorityNames {
		normalized[i] = model.NormalizeName(name)
	}

	if len(normalized) == MaxPriorityPlayers {
		if i := s.bestContainingAll(normalized); i >= 0 {
			s.accept(i, res)
			results := make([]model.PriorityResult, 0, MaxPriorityPlayers)
			for _, name := range priorityNames {
				results = append(results, model.PriorityResult{
					PlayerName: name,
					Status:     model.PriorityIncluded,
				})
			}
			return results
		}
	}

	// No single trip covers the pair (or only one name was given):
	// place each athlete independently.
	var results []model.PriorityResult
	for _, name := range priorityNames {
		key := model.NormalizeName(name)
		if s.covered[key] {
			results = append(results, model.PriorityResult{
				PlayerName: name,
				Status:     model.PriorityIncluded,
			})
			continue
		}
		i := s.bestContainingAll([]string{key})
		if i < 0 {
			results = append(results, model.PriorityResult{
				PlayerName: name,
				Status:     model.PriorityUnreachable,
				Reason:     "no candidate trips reach this athlete within the drive radius",
			})
			continue
		}
		s.accept(i, res)
		status := model.PriorityIncluded
		reason := ""
		if len(priorityNames) == MaxPriorityPlayers {
			status = model.PrioritySeparateTrip
			reason = "no single trip reaches both priority athletes; scheduled separately"
		}
		results = append(results, model.PriorityResult{PlayerName: name, Status: status, Reason: reason})
	}
	return results
}

// bestContainingAll finds the highest-scoring pool candidate whose
// athlete union includes every given normalized name, or -1.
func (s *state) bestContainingAll(names []string) int {
	best := -1
	bestScore := 0
	for i, c := range s.pool {
		if !containsAll(c, names) {
			continue
		}
		sc := s.score(c)
		if best < 0 || better(sc, c, bestScore, s.pool[best]) {
			best, bestScore = i, sc
		}
	}
	return best
}

func containsAll(c model.TripCandidate, names []string) bool {
	have := make(map[string]bool, len(c.PlayerNames))
	for _, n := range c.PlayerNames {
		have[model.NormalizeName(n)] = true
	}
	for _, n := range names {
		if !have[n] {
			return false
		}
	}
	return true
}

// greedyPhase repeatedly accepts the candidate with the highest
// marginal value, stopping once the best remaining score is zero:
// whatever is left contributes no uncovered athlete.
func (e *Engine) greedyPhase(s *state, res *Result) {
	for len(s.pool) > 0 {
		best := -1
		bestScore := 0
		for i, c := range s.pool {
			sc := s.score(c)
			if best < 0 || better(sc, c, bestScore, s.pool[best]) {
				best, bestScore = i, sc
			}
		}
		if bestScore <= 0 {
			return
		}
		s.accept(best, res)
	}
}

// better orders candidates for acceptance: higher rescored value wins;
// ties break on earlier anchor date, then venue name. The tie-break is
// a deliberate, documented rule so runs are deterministic.
func better(score int, c model.TripCandidate, bestScore int, best model.TripCandidate) bool {
	if score != bestScore {
		return score > bestScore
	}
	a, b := season.Day(c.AnchorEvent.Date), season.Day(best.AnchorEvent.Date)
	if !a.Equal(b) {
		return a.Before(b)
	}
	return c.AnchorEvent.Venue.Name < best.AnchorEvent.Venue.Name
}

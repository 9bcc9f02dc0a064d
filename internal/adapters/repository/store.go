// Package repository keeps recent planning runs addressable by id so
// UI and export consumers can re-fetch a plan without recomputing it.
// Plans are derived data; losing the store loses nothing of record.
package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/scoutroute/internal/domain/model"
)

const defaultCapacity = 100

// Store is the plan history contract used by the service layer.
type Store interface {
	// Put stores a plan under its ID, evicting the oldest stored plan
	// if the store is at capacity.
	Put(ctx context.Context, plan model.TripPlan) error

	// Get returns the stored plan for id, or ErrPlanNotFound.
	Get(ctx context.Context, id string) (model.TripPlan, error)

	// Count returns the number of stored plans.
	Count(ctx context.Context) int
}

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithCapacity bounds the number of retained plans.
func WithCapacity(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// MemoryStore implements Store with a bounded in-memory history and
// FIFO eviction. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	plans    map[string]model.TripPlan
	order    []string // insertion order, oldest first
}

// NewMemoryStore creates a MemoryStore with default configuration.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		capacity: defaultCapacity,
		plans:    make(map[string]model.TripPlan),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores plan, evicting the oldest entry when full.
func (s *MemoryStore) Put(_ context.Context, plan model.TripPlan) error {
	if plan.ID == "" {
		return fmt.Errorf("%w: empty plan id", ErrInvalidPlan)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.plans[plan.ID]; !exists {
		for len(s.order) >= s.capacity {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.plans, oldest)
		}
		s.order = append(s.order, plan.ID)
	}
	s.plans[plan.ID] = plan
	return nil
}

// Get returns the plan stored under id.
func (s *MemoryStore) Get(_ context.Context, id string) (model.TripPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[id]
	if !ok {
		return model.TripPlan{}, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	return plan, nil
}

// Count returns the number of stored plans.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.plans)
}

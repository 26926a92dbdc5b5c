// Package session keeps independent cave runs in memory, one current grid per
// run. Nothing is persisted; a restart discards every run.
package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"cavegen/internal/core"
	"cavegen/internal/sims/cave"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned for an unknown run ID.
	ErrNotFound = errors.New("run not found")
	// ErrLimit is returned by Create when the store already holds the maximum number of runs.
	ErrLimit = errors.New("run limit reached")
	// ErrInvalidStep is returned by Step for a non-positive step count.
	ErrInvalidStep = errors.New("invalid step count")
)

// Snapshot is a point-in-time view of a run. Grid is shared with the store
// and must not be mutated; the store never mutates it either, since every
// step installs a new grid.
type Snapshot struct {
	ID         uuid.UUID
	Config     cave.Config
	Seed       int64
	Generation int
	Stable     bool
	Grid       *core.Grid
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type run struct {
	cfg        cave.Config
	seed       int64
	generation int
	stable     bool
	grid       *core.Grid
	createdAt  time.Time
	updatedAt  time.Time
}

// Store holds runs keyed by UUID.
type Store struct {
	mu   sync.Mutex
	runs map[uuid.UUID]*run
	max  int

	now     func() time.Time
	newSeed func() int64
}

// NewStore creates a store allowing at most maxRuns concurrent runs
// (unlimited when maxRuns <= 0).
func NewStore(maxRuns int) *Store {
	return &Store{
		runs:    make(map[uuid.UUID]*run),
		max:     maxRuns,
		now:     time.Now,
		newSeed: func() int64 { return time.Now().UnixNano() },
	}
}

// Create seeds a new run. A zero cfg.Seed picks a fresh seed.
func (s *Store) Create(cfg cave.Config) (Snapshot, error) {
	cfg.WallPercent = cave.ClampPercent(cfg.WallPercent)
	if cfg.Seed == 0 {
		cfg.Seed = s.newSeed()
	}
	g, err := cave.Generate(cfg.Width, cfg.Height, cfg.WallPercent, core.NewRNG(cfg.Seed))
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.max > 0 && len(s.runs) >= s.max {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrLimit, s.max)
	}
	id := uuid.New()
	now := s.now()
	r := &run{cfg: cfg, seed: cfg.Seed, grid: g, createdAt: now, updatedAt: now}
	s.runs[id] = r
	return r.snapshot(id), nil
}

// Get returns the current state of a run.
func (s *Store) Get(id uuid.UUID) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return r.snapshot(id), nil
}

// List returns every run ordered by creation time.
func (s *Store) List() []Snapshot {
	s.mu.Lock()
	out := make([]Snapshot, 0, len(s.runs))
	for id, r := range s.runs {
		out = append(out, r.snapshot(id))
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Step advances a run by n smoothing iterations.
func (s *Store) Step(id uuid.UUID, n int) (Snapshot, error) {
	if n <= 0 {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrInvalidStep, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	g := r.grid
	stable := r.stable
	for i := 0; i < n; i++ {
		next, err := cave.StepParallel(g, r.cfg.Workers)
		if err != nil {
			return Snapshot{}, err
		}
		stable = next.Equal(g)
		g = next
	}
	r.grid = g
	r.stable = stable
	r.generation += n
	r.updatedAt = s.now()
	return r.snapshot(id), nil
}

// ResetOptions override the run's seeding parameters on reset. A nil
// WallPercent keeps the current one.
type ResetOptions struct {
	Seed        *int64
	WallPercent *int
}

// Reset reseeds a run, discarding its current grid. A missing or zero seed
// draws a new one, as in Create.
func (s *Store) Reset(id uuid.UUID, opts ResetOptions) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	cfg := r.cfg
	if opts.WallPercent != nil {
		cfg.WallPercent = cave.ClampPercent(*opts.WallPercent)
	}
	seed := s.newSeed()
	if opts.Seed != nil && *opts.Seed != 0 {
		seed = *opts.Seed
	}
	cfg.Seed = seed
	g, err := cave.Generate(cfg.Width, cfg.Height, cfg.WallPercent, core.NewRNG(seed))
	if err != nil {
		return Snapshot{}, err
	}
	r.cfg = cfg
	r.seed = seed
	r.grid = g
	r.generation = 0
	r.stable = false
	r.updatedAt = s.now()
	return r.snapshot(id), nil
}

// Delete discards a run.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[id]; !ok {
		return ErrNotFound
	}
	delete(s.runs, id)
	return nil
}

// Len reports the number of live runs.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.runs)
}

func (r *run) snapshot(id uuid.UUID) Snapshot {
	return Snapshot{
		ID:         id,
		Config:     r.cfg,
		Seed:       r.seed,
		Generation: r.generation,
		Stable:     r.stable,
		Grid:       r.grid,
		CreatedAt:  r.createdAt,
		UpdatedAt:  r.updatedAt,
	}
}

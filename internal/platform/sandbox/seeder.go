package sandbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ehr/registry/internal/domain/patient"
)

// DefaultPatientCount is how many patients a fresh registry is seeded with.
const DefaultPatientCount = 100

var ErrInvalidCount = errors.New("seed count must be positive")

// Store is the part of the patient repository the seeder needs.
type Store interface {
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, patients []*patient.Patient) ([]*patient.Patient, error)
}

// Recorder receives seeding outcomes. telemetry.Metrics implements it.
type Recorder interface {
	SeedSkipped()
	SeedInserted(n int, d time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) SeedSkipped()                    {}
func (noopRecorder) SeedInserted(int, time.Duration) {}

// SeedResult summarizes one Seed call.
type SeedResult struct {
	Skipped  bool          `json:"skipped"`
	Existing int64         `json:"existing"`
	Inserted int           `json:"inserted"`
	Duration time.Duration `json:"duration"`
}

type Seeder struct {
	store    Store
	gen      *Generator
	logger   zerolog.Logger
	now      func() time.Time
	recorder Recorder
}

type SeederOption func(*Seeder)

// WithClock fixes the reference time used for generated dates.
func WithClock(now func() time.Time) SeederOption {
	return func(s *Seeder) { s.now = now }
}

func WithRecorder(r Recorder) SeederOption {
	return func(s *Seeder) { s.recorder = r }
}

func NewSeeder(store Store, gen *Generator, logger zerolog.Logger, opts ...SeederOption) *Seeder {
	s := &Seeder{
		store:    store,
		gen:      gen,
		logger:   logger,
		now:      time.Now,
		recorder: noopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed fills an empty store with count generated patients and does nothing
// when the store already holds records. The emptiness check and the insert
// are separate statements; two processes seeding the same empty store at
// once are not coordinated here.
func (s *Seeder) Seed(ctx context.Context, count int) (*SeedResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}

	existing, err := s.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed patients: %w", err)
	}
	if existing > 0 {
		s.logger.Info().Int64("existing", existing).Msg("patient data already exists, skipping seeding")
		s.recorder.SeedSkipped()
		return &SeedResult{Skipped: true, Existing: existing}, nil
	}

	start := time.Now()
	records := s.gen.Patients(count, s.now())
	inserted, err := s.store.CreateBatch(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("seed patients: %w", err)
	}

	result := &SeedResult{Inserted: len(inserted), Duration: time.Since(start)}
	s.recorder.SeedInserted(result.Inserted, result.Duration)
	s.logger.Info().
		Int("inserted", result.Inserted).
		Dur("duration", result.Duration).
		Msg("seeded patient records")
	return result, nil
}

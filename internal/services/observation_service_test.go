package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sharklandy/deapsea-project/internal/config"
	"github.com/sharklandy/deapsea-project/internal/models"
	"go.uber.org/zap"
)

type speciesReaderStub struct {
	species *models.Species
	err     error
}

func (s *speciesReaderStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Species, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.species, nil
}

type observationStoreStub struct {
	recent  bool
	since   time.Time
	created *models.Observation
}

func (s *observationStoreStub) Create(ctx context.Context, o *models.Observation) error {
	o.ID = uuid.New()
	o.CreatedAt = time.Now()
	c := *o
	s.created = &c
	return nil
}

func (s *observationStoreStub) ListBySpecies(ctx context.Context, speciesID uuid.UUID) ([]models.Observation, error) {
	return nil, nil
}

func (s *observationStoreStub) HasRecentByAuthor(ctx context.Context, authorID, speciesID uuid.UUID, since time.Time) (bool, error) {
	s.since = since
	return s.recent, nil
}

func newObservationService(store *observationStoreStub, species *speciesReaderStub, window time.Duration) *ObservationService {
	cfg := &config.Config{ObservationRateWindow: window}
	return NewObservationService(store, species, cfg, zap.NewNop())
}

func TestObservationService_RateWindowBlocks(t *testing.T) {
	store := &observationStoreStub{recent: true}
	species := &speciesReaderStub{species: &models.Species{ID: uuid.New()}}
	svc := newObservationService(store, species, 5*time.Minute)

	before := time.Now()
	_, err := svc.Create(context.Background(), uuid.New(), species.species.ID, "pale eyes in the trench", nil)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorTooManyRequests {
		t.Fatalf("expected too_many_requests, got %v", err)
	}
	if store.created != nil {
		t.Error("observation must not be stored inside the rate window")
	}

	// The window slides from the wall clock at call time, not from any
	// fixed bucket boundary.
	wantSince := before.Add(-5 * time.Minute)
	if diff := store.since.Sub(wantSince); diff < 0 || diff > 2*time.Second {
		t.Errorf("window start = %v, want ~%v", store.since, wantSince)
	}
}

func TestObservationService_RateWindowAllows(t *testing.T) {
	store := &observationStoreStub{recent: false}
	species := &speciesReaderStub{species: &models.Species{ID: uuid.New()}}
	svc := newObservationService(store, species, 5*time.Minute)

	obs, err := svc.Create(context.Background(), uuid.New(), species.species.ID, "pale eyes in the trench", nil)
	if err != nil {
		t.Fatal(err)
	}
	if obs.Status != models.ObservationStatusPending {
		t.Errorf("status = %q, want PENDING", obs.Status)
	}
	if store.created == nil {
		t.Fatal("observation not stored")
	}
}

func TestObservationService_SpeciesCheckedFirst(t *testing.T) {
	// An unknown species is 404 even when the payload is also invalid.
	store := &observationStoreStub{}
	species := &speciesReaderStub{err: pgx.ErrNoRows}
	svc := newObservationService(store, species, 5*time.Minute)

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), "", nil)
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestObservationService_DangerLevelBounds(t *testing.T) {
	store := &observationStoreStub{}
	species := &speciesReaderStub{species: &models.Species{ID: uuid.New()}}
	svc := newObservationService(store, species, 5*time.Minute)

	for _, level := range []int{0, 6, -1} {
		l := level
		_, err := svc.Create(context.Background(), uuid.New(), species.species.ID, "something moved", &l)
		se, ok := AsServiceError(err)
		if !ok || se.Code != ErrorInvalid {
			t.Errorf("dangerLevel %d: expected invalid, got %v", level, err)
		}
	}
}

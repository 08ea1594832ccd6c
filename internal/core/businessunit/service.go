package businessunit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service normalizes, validates, and persists business units.
type Service struct {
	store  Store
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates a service backed by store.
func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// NewID returns a fresh business unit identifier.
func NewID() string {
	return "unit-" + uuid.NewString()
}

// Create validates u and stores it as a new unit.
func (s *Service) Create(ctx context.Context, u Unit) (Unit, error) {
	u = u.Normalize()
	if err := u.Validate(); err != nil {
		return Unit{}, err
	}

	now := s.now()
	u.ID = NewID()
	u.CreatedAt = now
	u.UpdatedAt = now

	saved, err := s.store.Create(ctx, u)
	if err != nil {
		return Unit{}, fmt.Errorf("create business unit: %w", err)
	}

	s.logger.Info().Ctx(ctx).Str("unit_id", saved.ID).Str("name", saved.Name).Msg("business unit created")
	return saved, nil
}

// Update validates u and replaces the stored unit with the given id.
func (s *Service) Update(ctx context.Context, id string, u Unit) (Unit, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return Unit{}, fmt.Errorf("get business unit: %w", err)
	}

	u = u.Normalize()
	if err := u.Validate(); err != nil {
		return Unit{}, err
	}

	u.ID = existing.ID
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = s.now()

	saved, err := s.store.Update(ctx, u)
	if err != nil {
		return Unit{}, fmt.Errorf("update business unit: %w", err)
	}

	s.logger.Info().Ctx(ctx).Str("unit_id", saved.ID).Msg("business unit updated")
	return saved, nil
}

// Get returns the unit with the given id.
func (s *Service) Get(ctx context.Context, id string) (Unit, error) {
	return s.store.Get(ctx, id)
}

// List returns every stored unit.
func (s *Service) List(ctx context.Context) ([]Unit, error) {
	return s.store.List(ctx)
}

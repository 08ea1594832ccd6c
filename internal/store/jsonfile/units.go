package jsonfile

import (
	"context"
	"sync"
	"time"

	"github.com/colonyops/unitdesk/internal/core/businessunit"
)

// UnitsFile is the root JSON structure stored on disk.
type UnitsFile struct {
	Units []businessunit.Unit `json:"units"`
}

// UnitStore implements businessunit.Store on a local JSON file. Every
// operation waits for the configured latency first to behave like a
// remote backend.
type UnitStore struct {
	path    string
	latency time.Duration
	mu      sync.RWMutex
}

var _ businessunit.Store = (*UnitStore)(nil)

// NewUnitStore creates a JSON file unit store at the given path.
func NewUnitStore(path string, latency time.Duration) *UnitStore {
	return &UnitStore{path: path, latency: latency}
}

// Path returns the backing file path.
func (s *UnitStore) Path() string { return s.path }

// Create appends a unit. Returns ErrAlreadyExists if the ID is taken.
func (s *UnitStore) Create(ctx context.Context, u businessunit.Unit) (businessunit.Unit, error) {
	if err := s.wait(ctx); err != nil {
		return businessunit.Unit{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return businessunit.Unit{}, err
	}

	for _, existing := range file.Units {
		if existing.ID == u.ID {
			return businessunit.Unit{}, businessunit.ErrAlreadyExists
		}
	}

	file.Units = append(file.Units, u)
	if err := writeFile(s.path, file); err != nil {
		return businessunit.Unit{}, err
	}
	return u, nil
}

// Get returns a unit by ID. Returns ErrNotFound if not found.
func (s *UnitStore) Get(ctx context.Context, id string) (businessunit.Unit, error) {
	if err := s.wait(ctx); err != nil {
		return businessunit.Unit{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return businessunit.Unit{}, err
	}

	for _, u := range file.Units {
		if u.ID == id {
			return u, nil
		}
	}
	return businessunit.Unit{}, businessunit.ErrNotFound
}

// Update replaces the unit with the same ID. Returns ErrNotFound if absent.
func (s *UnitStore) Update(ctx context.Context, u businessunit.Unit) (businessunit.Unit, error) {
	if err := s.wait(ctx); err != nil {
		return businessunit.Unit{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return businessunit.Unit{}, err
	}

	for i := range file.Units {
		if file.Units[i].ID == u.ID {
			file.Units[i] = u
			if err := writeFile(s.path, file); err != nil {
				return businessunit.Unit{}, err
			}
			return u, nil
		}
	}
	return businessunit.Unit{}, businessunit.ErrNotFound
}

// List returns all units in creation order.
func (s *UnitStore) List(ctx context.Context) ([]businessunit.Unit, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}
	if file.Units == nil {
		return []businessunit.Unit{}, nil
	}
	return file.Units, nil
}

func (s *UnitStore) load() (UnitsFile, error) {
	var file UnitsFile
	err := readFile(s.path, &file)
	return file, err
}

func (s *UnitStore) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(s.latency)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

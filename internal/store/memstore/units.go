// Package memstore keeps business units in process memory. Units are lost
// when the process exits.
package memstore

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/colonyops/unitdesk/internal/core/businessunit"
	"github.com/colonyops/unitdesk/pkg/kv"
)

type entry struct {
	seq  uint64
	unit businessunit.Unit
}

// UnitStore implements businessunit.Store on a kv.Store.
type UnitStore struct {
	units *kv.Store[string, entry]
	seq   atomic.Uint64
}

var _ businessunit.Store = (*UnitStore)(nil)

// NewUnitStore creates an empty store.
func NewUnitStore() *UnitStore {
	return &UnitStore{units: kv.New[string, entry]()}
}

// Create stores u. Returns ErrAlreadyExists if the ID is taken.
func (s *UnitStore) Create(ctx context.Context, u businessunit.Unit) (businessunit.Unit, error) {
	if err := ctx.Err(); err != nil {
		return businessunit.Unit{}, err
	}
	if !s.units.SetIfAbsent(u.ID, entry{seq: s.seq.Add(1), unit: u}) {
		return businessunit.Unit{}, businessunit.ErrAlreadyExists
	}
	return u, nil
}

// Get returns the unit with the given ID.
func (s *UnitStore) Get(ctx context.Context, id string) (businessunit.Unit, error) {
	if err := ctx.Err(); err != nil {
		return businessunit.Unit{}, err
	}
	e, ok := s.units.Get(id)
	if !ok {
		return businessunit.Unit{}, businessunit.ErrNotFound
	}
	return e.unit, nil
}

// Update replaces an existing unit, keeping its position in List.
func (s *UnitStore) Update(ctx context.Context, u businessunit.Unit) (businessunit.Unit, error) {
	if err := ctx.Err(); err != nil {
		return businessunit.Unit{}, err
	}
	old, ok := s.units.Get(u.ID)
	if !ok || !s.units.Replace(u.ID, entry{seq: old.seq, unit: u}) {
		return businessunit.Unit{}, businessunit.ErrNotFound
	}
	return u, nil
}

// List returns all units in creation order.
func (s *UnitStore) List(ctx context.Context) ([]businessunit.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries := s.units.Values()
	slices.SortFunc(entries, func(a, b entry) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})

	units := make([]businessunit.Unit, len(entries))
	for i, e := range entries {
		units[i] = e.unit
	}
	return units, nil
}

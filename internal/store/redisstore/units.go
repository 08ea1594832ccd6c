package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/colonyops/unitdesk/internal/core/businessunit"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "unitdesk"

// UnitStore implements businessunit.Store. Units are JSON values in a hash
// keyed by ID; a list keeps creation order.
type UnitStore struct {
	client redis.UniversalClient
	prefix string
}

var _ businessunit.Store = (*UnitStore)(nil)

// NewUnitStore creates a store using client. An empty prefix selects
// DefaultPrefix.
func NewUnitStore(client redis.UniversalClient, prefix string) *UnitStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &UnitStore{client: client, prefix: prefix}
}

func (s *UnitStore) unitsKey() string { return s.prefix + ":units" }
func (s *UnitStore) orderKey() string { return s.prefix + ":units:order" }

// Create stores u. Returns ErrAlreadyExists if the ID is taken.
func (s *UnitStore) Create(ctx context.Context, u businessunit.Unit) (businessunit.Unit, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return businessunit.Unit{}, err
	}

	ok, err := s.client.HSetNX(ctx, s.unitsKey(), u.ID, data).Result()
	if err != nil {
		return businessunit.Unit{}, fmt.Errorf("redis hsetnx: %w", err)
	}
	if !ok {
		return businessunit.Unit{}, businessunit.ErrAlreadyExists
	}

	if err := s.client.RPush(ctx, s.orderKey(), u.ID).Err(); err != nil {
		return businessunit.Unit{}, fmt.Errorf("redis rpush: %w", err)
	}
	return u, nil
}

// Get returns a unit by ID. Returns ErrNotFound if not found.
func (s *UnitStore) Get(ctx context.Context, id string) (businessunit.Unit, error) {
	data, err := s.client.HGet(ctx, s.unitsKey(), id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return businessunit.Unit{}, businessunit.ErrNotFound
		}
		return businessunit.Unit{}, fmt.Errorf("redis hget: %w", err)
	}
	return decode(data)
}

// Update replaces an existing unit. Returns ErrNotFound if absent.
func (s *UnitStore) Update(ctx context.Context, u businessunit.Unit) (businessunit.Unit, error) {
	exists, err := s.client.HExists(ctx, s.unitsKey(), u.ID).Result()
	if err != nil {
		return businessunit.Unit{}, fmt.Errorf("redis hexists: %w", err)
	}
	if !exists {
		return businessunit.Unit{}, businessunit.ErrNotFound
	}

	data, err := json.Marshal(u)
	if err != nil {
		return businessunit.Unit{}, err
	}
	if err := s.client.HSet(ctx, s.unitsKey(), u.ID, data).Err(); err != nil {
		return businessunit.Unit{}, fmt.Errorf("redis hset: %w", err)
	}
	return u, nil
}

// List returns all units in creation order.
func (s *UnitStore) List(ctx context.Context) ([]businessunit.Unit, error) {
	ids, err := s.client.LRange(ctx, s.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange: %w", err)
	}

	units := make([]businessunit.Unit, 0, len(ids))
	if len(ids) == 0 {
		return units, nil
	}

	values, err := s.client.HMGet(ctx, s.unitsKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hmget: %w", err)
	}

	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		u, err := decode([]byte(str))
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}

func decode(data []byte) (businessunit.Unit, error) {
	var u businessunit.Unit
	if err := json.Unmarshal(data, &u); err != nil {
		return businessunit.Unit{}, fmt.Errorf("decode unit: %w", err)
	}
	return u, nil
}

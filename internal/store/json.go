package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// LoadJSON reads key and decodes it into a T. It returns ErrNotFound when
// the key is absent. A value that fails to decode is deleted and reported
// as ErrCorrupt so callers can fall back to defaults.
func LoadJSON[T any](ctx context.Context, s Store, key string) (T, error) {
	var out T
	raw, err := s.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		var zero T
		if delErr := s.Delete(ctx, key); delErr != nil {
			return zero, errors.Join(fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err), delErr)
		}
		return zero, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return out, nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.Put(ctx, key, raw)
}

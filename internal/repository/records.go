package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"skillup/api/internal/kv"
)

var ErrInvalidRecord = errors.New("invalid record")

type validator interface {
	Validate() error
}

// records is the typed boundary over the KV store. Every value read through it
// is decoded into T and shape checked before it reaches a service.
type records[T validator] struct {
	store kv.Store
	log   zerolog.Logger
	// fill restores fields that are implied by the key but may be absent from
	// older values, e.g. the token of a session.
	fill func(key string, v *T)
}

func (r records[T]) get(ctx context.Context, key string) (T, error) {
	var zero T
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	return r.decode(key, raw)
}

func (r records[T]) decode(key string, raw []byte) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrInvalidRecord, key, err)
	}
	if r.fill != nil {
		r.fill(key, &v)
	}
	if err := v.Validate(); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrInvalidRecord, key, err)
	}
	return v, nil
}

func (r records[T]) put(ctx context.Context, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.store.Set(ctx, key, raw)
}

type keyed[T any] struct {
	Key   string
	Value T
}

// list skips records that fail to decode, logging each one.
func (r records[T]) list(ctx context.Context, prefix string) ([]keyed[T], error) {
	entries, err := r.store.GetByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}

	out := make([]keyed[T], 0, len(entries))
	for _, entry := range entries {
		v, err := r.decode(entry.Key, entry.Value)
		if err != nil {
			r.log.Warn().Err(err).Str("key", entry.Key).Msg("skipping invalid record")
			continue
		}
		out = append(out, keyed[T]{Key: entry.Key, Value: v})
	}
	return out, nil
}

func values[T any](items []keyed[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, item.Value)
	}
	return out
}

func suffix(key, prefix string) string {
	return strings.TrimPrefix(key, prefix)
}

package state

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Store is the key-value substrate behind persisted shopper state.
// Get reports found=false for an absent key; err is reserved for backend failures.
type Store interface {
	Get(ctx context.Context, key string) (raw []byte, found bool, err error)
	Put(ctx context.Context, key string, raw []byte) error
	Delete(ctx context.Context, key string) error
}

// FallbackReporter is implemented by stores that want to hear about entries
// that could not be decoded and were replaced by a default.
type FallbackReporter interface {
	ReportFallback(ctx context.Context, key string, cause error)
}

// Load decodes the value stored under key. Absent or malformed entries yield def;
// only backend failures are returned as errors.
func Load[T any](ctx context.Context, store Store, key string, def T) (T, error) {
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		return def, fmt.Errorf("load state %q: %w", key, err)
	}
	if !found || len(raw) == 0 {
		return def, nil
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		if reporter, ok := store.(FallbackReporter); ok {
			reporter.ReportFallback(ctx, key, err)
		}
		return def, nil
	}
	return value, nil
}

// Save replaces the value stored under key.
func Save[T any](ctx context.Context, store Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode state %q: %w", key, err)
	}
	if err := store.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("save state %q: %w", key, err)
	}
	return nil
}

// Scoped namespaces every key under the given session so sessions never share entries.
func Scoped(store Store, sessionID string) Store {
	return &scopedStore{inner: store, prefix: "session:" + strings.TrimSpace(sessionID) + ":"}
}

type scopedStore struct {
	inner  Store
	prefix string
}

func (s *scopedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scopedStore) Put(ctx context.Context, key string, raw []byte) error {
	return s.inner.Put(ctx, s.prefix+key, raw)
}

func (s *scopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// ReportFallback forwards the unscoped key so reports never carry session ids.
func (s *scopedStore) ReportFallback(ctx context.Context, key string, cause error) {
	if reporter, ok := s.inner.(FallbackReporter); ok {
		reporter.ReportFallback(ctx, key, cause)
	}
}

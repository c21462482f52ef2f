package state

import (
	"context"
	"time"
)

// KVClient is the subset of the redis wrapper the store needs.
type KVClient interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	StateKey(name string) string
}

// RedisStore keeps entries as Redis strings, refreshing the TTL on every write.
type RedisStore struct {
	client KVClient
	ttl    time.Duration
}

func NewRedisStore(client KVClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, found, err := r.client.Lookup(ctx, r.client.StateKey(key))
	if err != nil || !found {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (r *RedisStore) Put(ctx context.Context, key string, raw []byte) error {
	return r.client.Set(ctx, r.client.StateKey(key), string(raw), r.ttl)
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.client.StateKey(key))
}

package store

import (
	"context"
	"errors"
	"time"

	"encore.dev/rlog"
	"encore.dev/storage/cache"

	"encore.app/proxy/model"
)

// RecordCluster is the cache cluster fronting the idempotency table.
var RecordCluster = cache.NewCluster("idempotency-records", cache.ClusterConfig{
	EvictionPolicy: cache.AllKeysLRU,
})

// RecordCache holds committed records by idempotency key. Records never
// change once written, so entries need no invalidation.
var RecordCache = cache.NewStructKeyspace[string, model.CacheRecord](
	RecordCluster,
	cache.KeyspaceConfig{
		KeyPattern:    "records/:key",
		DefaultExpiry: cache.ExpireIn(24 * time.Hour),
	},
)

// recordCache is the subset of the keyspace the cached store uses.
type recordCache interface {
	Get(ctx context.Context, key string) (model.CacheRecord, error)
	Set(ctx context.Context, key string, val model.CacheRecord) error
}

type cachedStore struct {
	next  Store
	cache recordCache
}

// WithCache puts a read-through cache in front of next. Cache failures are
// logged and never change the outcome of a call.
func WithCache(next Store, c recordCache) Store {
	return &cachedStore{
		next:  next,
		cache: c,
	}
}

func (s *cachedStore) Get(ctx context.Context, key string) (*model.CacheRecord, bool, error) {
	record, err := s.cache.Get(ctx, key)
	if err == nil {
		return &record, true, nil
	}
	if !errors.Is(err, cache.Miss) {
		rlog.Warn("record cache read failed, falling back to store", "key", key, "error", err)
	}

	found, ok, err := s.next.Get(ctx, key)
	if err != nil || !ok {
		return found, ok, err
	}

	s.fill(ctx, found)
	return found, true, nil
}

func (s *cachedStore) Put(ctx context.Context, key string, payload model.Payload, requestHash string) (*model.CacheRecord, error) {
	record, err := s.next.Put(ctx, key, payload, requestHash)
	if err != nil {
		return nil, err
	}

	s.fill(ctx, record)
	return record, nil
}

func (s *cachedStore) fill(ctx context.Context, record *model.CacheRecord) {
	if err := s.cache.Set(ctx, record.ID, *record); err != nil {
		rlog.Warn("failed to cache idempotency record", "key", record.ID, "error", err)
	}
}

// Package cache keeps recently rendered notices in Redis so repeated requests
// for the same record skip the renderer.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"sppt/internal/domain"
	"sppt/internal/infra/logging"
)

const (
	keyPrefix  = "spptcache:"
	opTimeout  = time.Second
	defaultTTL = time.Minute
)

// Store is a thin Redis wrapper. A nil *Store is a disabled cache.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// New returns a Store writing entries with the given TTL.
func New(rdb *redis.Client, ttl time.Duration) *Store {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

// Key derives a cache key from the output format and every model field.
func Key(format string, m domain.Model) string {
	h := sha256.New()
	for _, part := range []string{
		format, m.TaxYear, m.ParcelID, m.TaxpayerName, m.TaxpayerAddress,
		m.LandArea, m.BuildingArea, m.LandValue, m.BuildingValue,
		m.AmountDue, m.PaymentStatus, m.DueDate,
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached bytes and whether they were found. Redis errors are
// logged and reported as a miss.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	if s == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		logging.Warn("Redis read failed", "error", err)
		return nil, false
	}
	logging.Info("Render cache hit", "key", key)
	return data, true
}

// Set stores data under key. Failures are logged only.
func (s *Store) Set(ctx context.Context, key string, data []byte) {
	if s == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		logging.Warn("Redis write failed", "error", err)
	}
}

package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	credentialDomain "github.com/allisson/credguard/internal/credential/domain"
)

// keyFlight is the singleflight key for the one cached entry.
const keyFlight = "session-key"

// KeyCache holds the derived key for the lifetime of one process or session.
//
// A miss runs exactly one derivation no matter how many callers arrive while
// the cache is empty: callers are coalesced by singleflight and the flight
// re-checks the cache before deriving. Failed derivations are not cached.
type KeyCache struct {
	device  DeviceInfoProvider
	deriver KeyDeriver
	logger  *slog.Logger

	mu     sync.RWMutex
	key    []byte
	gen    uint64 // bumped by Clear; a flight stores only if unchanged
	flight singleflight.Group
}

// NewKeyCache creates an empty cache backed by the given fingerprint provider and deriver.
func NewKeyCache(device DeviceInfoProvider, deriver KeyDeriver, logger *slog.Logger) *KeyCache {
	return &KeyCache{
		device:  device,
		deriver: deriver,
		logger:  logger,
	}
}

// GetKey returns the cached key or derives it.
func (c *KeyCache) GetKey(ctx context.Context) ([]byte, error) {
	if key := c.load(); key != nil {
		return key, nil
	}

	v, err, _ := c.flight.Do(keyFlight, func() (any, error) {
		if key := c.load(); key != nil {
			return key, nil
		}

		c.mu.RLock()
		gen := c.gen
		c.mu.RUnlock()

		start := time.Now()
		key, err := c.deriver.DeriveKey(c.device.Fingerprint())
		if err != nil {
			return nil, err
		}

		shared := make([]byte, len(key))
		copy(shared, key)

		c.mu.Lock()
		if c.gen == gen {
			c.key = key
		} else {
			credentialDomain.Zero(key)
		}
		c.mu.Unlock()

		c.logger.DebugContext(ctx, "derived session key", slog.Duration("duration", time.Since(start)))
		return shared, nil
	})
	if err != nil {
		return nil, err
	}

	// Flight callers share v; hand each one its own copy.
	shared := v.([]byte)
	key := make([]byte, len(shared))
	copy(key, shared)
	return key, nil
}

// Cached reports whether a key is currently held.
func (c *KeyCache) Cached() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.key != nil
}

// Clear zeroes and drops the cached key. The next GetKey derives again. A
// derivation already running when Clear is called does not repopulate the cache.
func (c *KeyCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	credentialDomain.Zero(c.key)
	c.key = nil
	c.gen++
	c.flight.Forget(keyFlight)
}

// load returns a copy of the cached key, or nil. Copies keep Clear from
// zeroing a key that a caller is still using.
func (c *KeyCache) load() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.key == nil {
		return nil
	}
	key := make([]byte, len(c.key))
	copy(key, c.key)
	return key
}

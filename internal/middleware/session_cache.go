package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hfappmaker/worktime/internal/models"
)

const (
	negativeCacheTTL   = 30 * time.Second
	cacheCleanupPeriod = 60 * time.Second
)

// errCachedNotFound is returned for negative cache hits.
var errCachedNotFound = errors.New("session not found (cached)")

type cachedSession struct {
	user      *models.User // nil marks a cached lookup failure
	fetchedAt time.Time
}

// isNegative returns true if this entry represents a cached lookup failure.
func (cs cachedSession) isNegative() bool {
	return cs.user == nil
}

// ttl returns the appropriate TTL for this entry.
func (cs cachedSession) ttl(positive time.Duration) time.Duration {
	if cs.isNegative() {
		return negativeCacheTTL
	}
	return positive
}

// hashToken returns a hex-encoded SHA-256 hash of the session token so raw
// tokens are never stored in memory.
func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// CachedSessionLookup wraps a SessionLookup with a bounded in-memory cache.
// Concurrent misses for the same token are collapsed into a single DB lookup.
type CachedSessionLookup struct {
	inner      SessionLookup
	ttl        time.Duration
	maxEntries int

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]cachedSession
}

// NewCachedSessionLookup creates a caching wrapper around the given SessionLookup.
// The provided context controls the lifetime of the background eviction goroutine.
func NewCachedSessionLookup(ctx context.Context, inner SessionLookup, ttl time.Duration, maxEntries int) *CachedSessionLookup {
	c := &CachedSessionLookup{
		inner:      inner,
		ttl:        ttl,
		maxEntries: maxEntries,
		cache:      make(map[string]cachedSession),
	}
	go c.evictLoop(ctx)
	return c
}

// evictLoop periodically removes expired entries from the cache.
func (c *CachedSessionLookup) evictLoop(ctx context.Context) {
	ticker := time.NewTicker(cacheCleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for k, v := range c.cache {
				if now.Sub(v.fetchedAt) >= v.ttl(c.ttl) {
					delete(c.cache, k)
				}
			}
			c.mu.Unlock()
		}
	}
}

// GetUserBySessionToken returns a cached user or delegates to the inner lookup.
// Failed lookups are negatively cached for 30s to prevent brute-force DB hammering.
func (c *CachedSessionLookup) GetUserBySessionToken(ctx context.Context, token string) (*models.User, error) {
	hk := hashToken(token)

	// Read path — RLock for concurrent cache hits.
	c.mu.RLock()
	entry, ok := c.cache[hk]
	if ok && time.Since(entry.fetchedAt) < entry.ttl(c.ttl) {
		c.mu.RUnlock()
		if entry.isNegative() {
			return nil, errCachedNotFound
		}
		u := *entry.user
		return &u, nil
	}
	c.mu.RUnlock()

	// Cache miss or expired — fetch from inner, once per token.
	v, err, _ := c.group.Do(hk, func() (any, error) {
		user, err := c.inner.GetUserBySessionToken(ctx, token)
		if err != nil {
			// Negative cache: store failed lookup with short TTL.
			c.store(hk, cachedSession{fetchedAt: time.Now()})
			return nil, err
		}

		c.store(hk, cachedSession{user: user, fetchedAt: time.Now()})
		return user, nil
	})
	if err != nil {
		return nil, err
	}

	u := *v.(*models.User)
	return &u, nil
}

// store inserts an entry, evicting expired and then arbitrary entries to stay
// under the size bound.
func (c *CachedSessionLookup) store(hk string, entry cachedSession) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.cache) >= c.maxEntries {
		now := time.Now()
		for k, v := range c.cache {
			if now.Sub(v.fetchedAt) >= v.ttl(c.ttl) {
				delete(c.cache, k)
			}
		}
		for k := range c.cache {
			if len(c.cache) < c.maxEntries {
				break
			}
			delete(c.cache, k)
		}
	}
	c.cache[hk] = entry
}

// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"k8s.io/utils/clock"

	"github.com/spacedata/nasa-explorer/pkg/defaults"
)

// Entry is a single cached payload. Entries are never updated in place;
// Set replaces the whole entry.
type Entry[V any] struct {
	Key       string
	Payload   V
	CreatedAt time.Time
	TTL       time.Duration
}

// Expired reports whether the entry has outlived its TTL at now.
func (e Entry[V]) Expired(now time.Time) bool {
	return now.Sub(e.CreatedAt) > e.TTL
}

// Stats is a point-in-time view of cache activity.
type Stats struct {
	Name        string `json:"name"`
	Entries     int    `json:"entries"`
	Hits        int64  `json:"hits"`
	Misses      int64  `json:"misses"`
	Sets        int64  `json:"sets"`
	Expirations int64  `json:"expirations"`
}

// Cache is an in-memory TTL cache safe for concurrent use.
// Expired entries are dropped lazily on Get and periodically by the sweep
// loop started with Start.
type Cache[V any] struct {
	name          string
	clock         clock.WithTicker
	defaultTTL    time.Duration
	sweepInterval time.Duration

	mu      sync.RWMutex
	entries map[string]Entry[V]

	hits        atomic.Int64
	misses      atomic.Int64
	sets        atomic.Int64
	expirations atomic.Int64

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	wg        sync.WaitGroup
}

// Option is a functional option for configuring Cache instances.
type Option func(*options)

type options struct {
	name          string
	clock         clock.WithTicker
	defaultTTL    time.Duration
	sweepInterval time.Duration
}

// WithName sets the name used as the metrics label.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithClock sets the time source. Tests pass a fake clock.
func WithClock(c clock.WithTicker) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithDefaultTTL sets the TTL applied when Set is called with ttl <= 0.
func WithDefaultTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.defaultTTL = d
		}
	}
}

// WithSweepInterval sets how often the background sweep removes expired entries.
func WithSweepInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.sweepInterval = d
		}
	}
}

// New creates a cache with the provided options.
func New[V any](opts ...Option) *Cache[V] {
	o := &options{
		name:          "default",
		clock:         clock.RealClock{},
		defaultTTL:    defaults.CacheDefaultTTL,
		sweepInterval: defaults.CacheSweepInterval,
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Cache[V]{
		name:          o.name,
		clock:         o.clock,
		defaultTTL:    o.defaultTTL,
		sweepInterval: o.sweepInterval,
		entries:       make(map[string]Entry[V]),
		stop:          make(chan struct{}),
	}
}

// Name returns the cache name.
func (c *Cache[V]) Name() string {
	return c.name
}

// DefaultTTL returns the TTL used when Set is called without one.
func (c *Cache[V]) DefaultTTL() time.Duration {
	return c.defaultTTL
}

// Get returns the payload for key. An expired entry is removed and
// reported as a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	now := c.clock.Now()

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && !e.Expired(now) {
		c.hits.Add(1)
		cacheHits.WithLabelValues(c.name).Inc()
		return e.Payload, true
	}

	if ok {
		c.mu.Lock()
		// another writer may have replaced it since the read lock was released
		if cur, still := c.entries[key]; still && cur.Expired(now) {
			delete(c.entries, key)
			c.expirations.Add(1)
			cacheExpirations.WithLabelValues(c.name).Inc()
			cacheEntries.WithLabelValues(c.name).Set(float64(len(c.entries)))
		}
		c.mu.Unlock()
	}

	c.misses.Add(1)
	cacheMisses.WithLabelValues(c.name).Inc()
	var zero V
	return zero, false
}

// Set stores payload under key, replacing any existing entry.
// A ttl <= 0 uses the default TTL.
func (c *Cache[V]) Set(key string, payload V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	c.entries[key] = Entry[V]{
		Key:       key,
		Payload:   payload,
		CreatedAt: c.clock.Now(),
		TTL:       ttl,
	}
	n := len(c.entries)
	c.mu.Unlock()

	c.sets.Add(1)
	cacheSets.WithLabelValues(c.name).Inc()
	cacheEntries.WithLabelValues(c.name).Set(float64(n))
}

// Delete removes key. It reports whether an entry was present.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	delete(c.entries, key)
	cacheEntries.WithLabelValues(c.name).Set(float64(len(c.entries)))
	return ok
}

// DeleteMatching removes every entry whose key contains substr and returns
// how many were removed. An empty substr matches nothing; use Clear.
func (c *Cache[V]) DeleteMatching(substr string) int {
	if substr == "" {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k := range c.entries {
		if strings.Contains(k, substr) {
			delete(c.entries, k)
			removed++
		}
	}
	cacheEntries.WithLabelValues(c.name).Set(float64(len(c.entries)))
	return removed
}

// Clear removes all entries and returns how many there were.
func (c *Cache[V]) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]Entry[V])
	cacheEntries.WithLabelValues(c.name).Set(0)
	return n
}

// Sweep removes all expired entries and returns how many were removed.
func (c *Cache[V]) Sweep() int {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, e := range c.entries {
		if e.Expired(now) {
			delete(c.entries, k)
			removed++
		}
	}
	if removed > 0 {
		c.expirations.Add(int64(removed))
		cacheExpirations.WithLabelValues(c.name).Add(float64(removed))
	}
	cacheEntries.WithLabelValues(c.name).Set(float64(len(c.entries)))
	return removed
}

// Len returns the number of stored entries, including expired ones not
// yet swept.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the current counters.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Name:        c.name,
		Entries:     c.Len(),
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Sets:        c.sets.Load(),
		Expirations: c.expirations.Load(),
	}
}

// Start launches the background sweep loop. It returns immediately; the
// loop runs until ctx is done or Stop is called. Calling Start more than
// once has no effect.
func (c *Cache[V]) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		ticker := c.clock.NewTicker(c.sweepInterval)
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			defer ticker.Stop()

			slog.Debug("cache sweeper started", "cache", c.name, "interval", c.sweepInterval)
			for {
				select {
				case <-ctx.Done():
					return
				case <-c.stop:
					return
				case <-ticker.C():
					if n := c.Sweep(); n > 0 {
						slog.Debug("cache sweep removed expired entries", "cache", c.name, "removed", n)
					}
				}
			}
		}()
	})
}

// Stop ends the sweep loop and waits for it to exit. It is safe to call
// Stop without Start and more than once.
func (c *Cache[V]) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	c.wg.Wait()
}

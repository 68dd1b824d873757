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

package server

import (
	"context"
	"math"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/spacedata/nasa-explorer/pkg/cache"
)

// clientLimiters hands out one token bucket per client address. Buckets
// live in a TTL cache so idle clients are forgotten after one window.
type clientLimiters struct {
	limit rate.Limit
	burst int
	ttl   time.Duration

	mu      sync.Mutex
	buckets *cache.Cache[*rate.Limiter]
}

func newClientLimiters(limit rate.Limit, burst int, ttl time.Duration) *clientLimiters {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &clientLimiters{
		limit: limit,
		burst: burst,
		ttl:   ttl,
		buckets: cache.New[*rate.Limiter](
			cache.WithName("ratelimit"),
			cache.WithDefaultTTL(ttl),
			cache.WithSweepInterval(ttl),
		),
	}
}

func (c *clientLimiters) disabled() bool {
	return c.limit == rate.Inf || c.burst <= 0
}

// get returns the bucket for key, creating it on first use.
func (c *clientLimiters) get(key string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if l, ok := c.buckets.Get(key); ok {
		return l
	}
	l := rate.NewLimiter(c.limit, c.burst)
	c.buckets.Set(key, l, c.ttl)
	return l
}

// run sweeps idle buckets until ctx is done.
func (c *clientLimiters) run(ctx context.Context) error {
	c.buckets.Start(ctx)
	<-ctx.Done()
	c.buckets.Stop()
	return nil
}

// retryAfter is the whole number of seconds until l holds one token.
func (c *clientLimiters) retryAfter(l *rate.Limiter) int {
	missing := 1 - l.Tokens()
	if missing <= 0 || c.limit <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(missing/float64(c.limit))))
}

// resetAt is when l will be full again.
func (c *clientLimiters) resetAt(l *rate.Limiter, now time.Time) time.Time {
	missing := float64(c.burst) - l.Tokens()
	if missing <= 0 || c.limit <= 0 {
		return now
	}
	return now.Add(time.Duration(missing / float64(c.limit) * float64(time.Second)))
}

// clientKey identifies the caller by remote IP.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

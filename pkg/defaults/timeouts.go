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

package defaults

import "time"

// Upstream timeouts for calls to the NASA Open APIs.
const (
	// UpstreamTimeout is the per-call timeout for simple NASA endpoints.
	UpstreamTimeout = 10 * time.Second

	// UpstreamSearchTimeout is the per-call timeout for the image library search,
	// which returns large result sets.
	UpstreamSearchTimeout = 15 * time.Second
)

// Cache TTLs per resource family.
const (
	// APODCacheTTL is long because the picture changes once a day.
	APODCacheTTL = 1 * time.Hour

	// MarsRoverCacheTTL applies to rover lists, photos and manifests.
	MarsRoverCacheTTL = 30 * time.Minute

	// EPICCacheTTL applies to EPIC metadata and image URLs.
	EPICCacheTTL = 15 * time.Minute

	// NEOCacheTTL applies to the near-earth object feed and its reductions.
	NEOCacheTTL = 10 * time.Minute

	// ImageSearchCacheTTL is short because search result sets are large and varied.
	ImageSearchCacheTTL = 5 * time.Minute

	// CacheDefaultTTL is used when no family TTL applies.
	CacheDefaultTTL = 5 * time.Minute

	// CacheSweepInterval is how often expired entries are purged in the background.
	CacheSweepInterval = 10 * time.Minute
)

// Rate limiting defaults, expressed as a fixed window.
const (
	// RateLimitWindow is the window over which RateLimitMaxRequests applies.
	RateLimitWindow = 15 * time.Minute

	// RateLimitMaxRequests is the number of requests allowed per window.
	RateLimitMaxRequests = 100
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	// Must exceed UpstreamSearchTimeout so slow searches can still respond.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// Upstream response limits.
const (
	// MaxUpstreamBodyBytes caps how much of an upstream body is read.
	MaxUpstreamBodyBytes = 32 << 20
)

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

// Package server provides the HTTP server shell for the NASA proxy: routing,
// the middleware chain, the response envelope and graceful shutdown.
//
// # Architecture
//
// Every API route runs through the same chain:
//   - Prometheus request metrics
//   - CORS headers and preflight handling
//   - Request ID tracking (X-Request-Id, UUID format)
//   - Panic recovery
//   - Per-client token bucket rate limiting (golang.org/x/time/rate)
//   - Structured access logging
//
// System endpoints (/health, /ready, /metrics) bypass the chain.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("nasad"),
//	    server.WithVersion(version),
//	    server.WithHandler(routes),
//	    server.WithWorker(sweeper),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Response Envelope
//
// Handlers answer with a uniform body:
//
//	{
//	  "success": false,
//	  "data": null,
//	  "error": "VALIDATION_ERROR",
//	  "message": "Validation failed: query.date must be a valid date",
//	  "timestamp": "2025-01-01T12:00:00.000Z",
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000"
//	}
//
// Error codes map to status: VALIDATION_ERROR 400, NOT_FOUND 404,
// RATE_LIMIT_EXCEEDED 429, upstream fetch codes 502, anything else 500.
//
// # Rate Limiting
//
// Response headers indicate rate limit status:
//
//	X-RateLimit-Limit: bucket size
//	X-RateLimit-Remaining: tokens left for this client
//	X-RateLimit-Reset: Unix timestamp when the bucket is full again
//
// When rate limited, returns 429 with Retry-After header.
package server

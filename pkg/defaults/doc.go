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

// Package defaults provides centralized configuration constants for the NASA
// explorer API.
//
// This package defines timeout values, cache TTLs, rate limits, and other
// defaults used across the codebase. Centralizing these values ensures
// consistency and makes tuning easier.
//
// # Categories
//
//   - Upstream timeouts: For calls to the NASA Open APIs
//   - Cache TTLs: One per resource family plus a default
//   - Rate limiting: Window and ceiling for inbound requests
//   - Server timeouts: For HTTP server configuration
//   - HTTP client timeouts: For the outbound transport
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/spacedata/nasa-explorer/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.UpstreamTimeout)
//	defer cancel()
//
// # Guidelines
//
//   - Upstream: 10s default, 15s for image search
//   - Cache: 1h for APOD down to 5m for image search
//   - Server write timeout must exceed the longest upstream timeout
//   - Server shutdown: 30s for graceful shutdown
package defaults

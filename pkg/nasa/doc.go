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

// Package nasa adapts NASA Open APIs behind one generic GET primitive.
//
// Each upstream operation is a Descriptor: which family it belongs to (and
// so which cache TTL applies), the error code reported when it fails, the
// timeout, and which query parameters are forwarded. Client.Get does the
// rest: it injects api_key, performs exactly one request, and returns the
// body untouched when NASA answers 2xx with JSON.
//
//	c := nasa.NewClient(nasa.WithAPIKey(key))
//	body, err := c.APOD(ctx, url.Values{"date": {"2024-01-01"}})
//
// Failures come back as *errors.StructuredError with a family code such as
// APOD_FETCH_ERROR and a message of the form "Failed to fetch APOD: <reason>".
// Calls are not retried and are not cancelled when the caller's context is;
// only the descriptor timeout ends them.
//
// The NEO helpers (FilterHazardous, FilterBySize, Summarize) and
// EPICImageURL are pure functions over already fetched data.
package nasa

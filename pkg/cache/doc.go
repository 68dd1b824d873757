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

// Package cache provides an in-memory response cache with per-entry TTL.
//
// Expiry is lazy: Get drops a stale entry and reports a miss. A background
// sweep started with Start removes entries nobody asks for again. The cache
// is an explicit instance; callers construct it and pass it where needed.
//
//	c := cache.New[[]byte](
//	    cache.WithName("responses"),
//	    cache.WithDefaultTTL(5*time.Minute),
//	)
//	c.Start(ctx)
//	defer c.Stop()
//
//	c.Set("/api/nasa/apod", body, time.Hour)
//	if b, ok := c.Get("/api/nasa/apod"); ok {
//	    ...
//	}
//
// Time comes from k8s.io/utils/clock so tests can drive expiry with a fake
// clock instead of sleeping.
package cache

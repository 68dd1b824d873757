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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/spacedata/nasa-explorer/pkg/errors"
	"github.com/spacedata/nasa-explorer/pkg/nasa"
	"github.com/spacedata/nasa-explorer/pkg/serializer"
	"github.com/spacedata/nasa-explorer/pkg/server"
	"github.com/spacedata/nasa-explorer/pkg/validator"
)

const (
	// BypassParam set to "true" skips the cache for one request.
	BypassParam = "noCache"

	// CacheHeader reports HIT, MISS or BYPASS.
	CacheHeader = server.CacheStatusHeader
)

type fetchFunc func(ctx context.Context, r *http.Request, q url.Values) (any, error)

// endpoint is one cacheable proxy route.
type endpoint struct {
	schema  func(now time.Time) validator.Schema
	params  []string
	family  nasa.Family
	fetch   fetchFunc
	message func(r *http.Request) string
	failure string
}

func static(s validator.Schema) func(time.Time) validator.Schema {
	return func(time.Time) validator.Schema { return s }
}

func fixed(msg string) func(*http.Request) string {
	return func(*http.Request) string { return msg }
}

func perRover(format string) func(*http.Request) string {
	return func(r *http.Request) string { return fmt.Sprintf(format, r.PathValue("rover")) }
}

// serve runs validate, cache lookup, upstream fetch and cache store for e.
// Validation failures never reach NASA. Only successful envelopes are cached
// and the cached bytes are replayed verbatim.
func (h *Handler) serve(e endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		in := validator.Input{
			Query:  validator.FromQuery(q),
			Params: validator.FromPath(r, e.params...),
		}
		if res := validator.Validate(e.schema(h.clock.Now()), in); !res.IsValid {
			server.WriteError(w, r, http.StatusBadRequest, errors.ErrCodeValidation,
				res.Message(), false, map[string]any{"errors": res.Errors})
			return
		}

		key := r.URL.RequestURI()
		bypass := q.Get(BypassParam) == "true"

		if h.cache != nil && !bypass {
			if body, ok := h.cache.Get(key); ok {
				slog.Debug("cache hit", "key", key)
				w.Header().Set(CacheHeader, "HIT")
				serializer.RespondBytes(w, http.StatusOK, body)
				return
			}
		}

		var (
			body []byte
			err  error
		)
		switch {
		case h.cache == nil:
			body, err = h.render(r, e, q)
		case bypass:
			w.Header().Set(CacheHeader, "BYPASS")
			body, err = h.render(r, e, q)
		default:
			w.Header().Set(CacheHeader, "MISS")
			body, err = h.renderShared(r, e, q, key)
		}

		if err != nil {
			slog.Warn("request failed",
				"requestID", server.RequestIDFrom(r.Context()),
				"path", r.URL.Path,
				"code", errors.CodeOf(err),
				"error", err,
			)
			w.Header().Del(CacheHeader)
			server.WriteErrorFromErr(w, r, err, e.failure, nil)
			return
		}

		serializer.RespondBytes(w, http.StatusOK, body)
	}
}

// renderShared collapses concurrent misses on key into one upstream call
// and stores the result.
func (h *Handler) renderShared(r *http.Request, e endpoint, q url.Values, key string) ([]byte, error) {
	v, err, shared := h.flights.Do(key, func() (any, error) {
		slog.Debug("cache miss", "key", key)
		body, err := h.render(r, e, q)
		if err != nil {
			return nil, err
		}
		h.cache.Set(key, body, e.family.TTL())
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("joined in-flight request", "key", key)
	}
	return v.([]byte), nil
}

// render fetches the payload and encodes the success envelope.
func (h *Handler) render(r *http.Request, e endpoint, q url.Values) ([]byte, error) {
	data, err := e.fetch(r.Context(), r, q)
	if err != nil {
		return nil, err
	}
	body, err := serializer.EncodeJSON(server.NewSuccess(data, e.message(r)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to encode response", err)
	}
	return body, nil
}

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
	"net/http"
	"net/url"

	"github.com/spacedata/nasa-explorer/pkg/nasa"
)

func (h *Handler) apod(ctx context.Context, _ *http.Request, q url.Values) (any, error) {
	return h.client.APOD(ctx, q)
}

func (h *Handler) marsRovers(ctx context.Context, _ *http.Request, _ url.Values) (any, error) {
	return h.client.MarsRovers(ctx)
}

func (h *Handler) marsRoverPhotos(ctx context.Context, r *http.Request, q url.Values) (any, error) {
	return h.client.MarsRoverPhotos(ctx, r.PathValue("rover"), q)
}

func (h *Handler) marsRoverManifest(ctx context.Context, r *http.Request, _ url.Values) (any, error) {
	return h.client.MarsRoverManifest(ctx, r.PathValue("rover"))
}

func (h *Handler) epic(ctx context.Context, _ *http.Request, q url.Values) (any, error) {
	return h.client.EPIC(ctx, q.Get("date"), q.Get("enhanced") == "true")
}

// EPICImage is the payload of the EPIC image URL route.
type EPICImage struct {
	ImageURL string `json:"imageURL"`
}

func (h *Handler) epicImageURL(_ context.Context, _ *http.Request, q url.Values) (any, error) {
	u, err := nasa.EPICImageURL(h.client.BaseURL(), h.client.APIKey(), nasa.EPICImageParams{
		Identifier: q.Get("identifier"),
		Date:       q.Get("date"),
		Image:      q.Get("image"),
		Enhanced:   q.Get("enhanced") == "true",
	})
	if err != nil {
		return nil, err
	}
	return EPICImage{ImageURL: u}, nil
}

func (h *Handler) epicDates(ctx context.Context, _ *http.Request, _ url.Values) (any, error) {
	return h.client.EPICDates(ctx)
}

// neo looks up a single asteroid when asteroid_id is given and returns the
// date feed otherwise.
func (h *Handler) neo(ctx context.Context, _ *http.Request, q url.Values) (any, error) {
	if id := q.Get("asteroid_id"); id != "" {
		return h.client.NEOLookup(ctx, id)
	}
	return h.client.NEOFeed(ctx, q)
}

func (h *Handler) hazardousNEOs(ctx context.Context, _ *http.Request, q url.Values) (any, error) {
	return h.client.HazardousNEOs(ctx, q)
}

func (h *Handler) neoSummary(ctx context.Context, _ *http.Request, q url.Values) (any, error) {
	return h.client.NEOSummary(ctx, q)
}

func (h *Handler) neosBySize(ctx context.Context, _ *http.Request, q url.Values) (any, error) {
	return h.client.NEOsBySize(ctx, q)
}

func (h *Handler) searchImages(ctx context.Context, _ *http.Request, q url.Values) (any, error) {
	return h.client.SearchImages(ctx, q)
}

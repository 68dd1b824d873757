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

package nasa

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spacedata/nasa-explorer/pkg/errors"
)

// RoverDisplayName renders a rover name for messages, e.g. "Curiosity".
func RoverDisplayName(rover string) string {
	// a Caser is stateful and must not be shared across goroutines
	return cases.Title(language.English).String(rover)
}

// APOD fetches the Astronomy Picture of the Day for the given query.
func (c *Client) APOD(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.Get(ctx, APODOp, "/planetary/apod", q)
}

// MarsRovers lists the rovers known to the photos API.
func (c *Client) MarsRovers(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, MarsRoversOp, "/mars-photos/api/v1/rovers", nil)
}

// MarsRoverPhotos fetches photos taken by rover.
func (c *Client) MarsRoverPhotos(ctx context.Context, rover string, q url.Values) (json.RawMessage, error) {
	d := MarsRoverPhotosOp
	d.What = "Mars rover photos for " + RoverDisplayName(rover)
	return c.Get(ctx, d, "/mars-photos/api/v1/rovers/"+url.PathEscape(rover)+"/photos", q)
}

// MarsRoverManifest fetches the mission manifest of rover.
func (c *Client) MarsRoverManifest(ctx context.Context, rover string) (json.RawMessage, error) {
	d := MarsRoverManifestOp
	d.What = "Mars rover manifest for " + RoverDisplayName(rover)
	return c.Get(ctx, d, "/mars-photos/api/v1/manifests/"+url.PathEscape(rover), nil)
}

// EPIC fetches image metadata for a day, or for the most recent day when
// date is empty.
func (c *Client) EPIC(ctx context.Context, date string, enhanced bool) (json.RawMessage, error) {
	collection := CollectionNatural
	if enhanced {
		collection = CollectionEnhanced
	}
	path, err := epicPath(collection, date)
	if err != nil {
		return nil, errors.WrapWithContext(EPICOp.Code, "Failed to fetch EPIC data: invalid date",
			err, map[string]any{"date": date})
	}
	return c.Get(ctx, EPICOp, path, nil)
}

// EPICDates lists the days for which natural color imagery exists.
func (c *Client) EPICDates(ctx context.Context) (json.RawMessage, error) {
	return c.Get(ctx, EPICDatesOp, "/EPIC/api/natural/all", nil)
}

// NEOFeed fetches near-earth objects grouped by closest approach date.
func (c *Client) NEOFeed(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.Get(ctx, NEOFeedOp, "/neo/rest/v1/feed", q)
}

// NEOLookup fetches a single asteroid by its NASA JPL id.
func (c *Client) NEOLookup(ctx context.Context, asteroidID string) (json.RawMessage, error) {
	d := NEOLookupOp
	d.What = "NEO data for asteroid " + asteroidID
	return c.Get(ctx, d, "/neo/rest/v1/neo/"+url.PathEscape(asteroidID), nil)
}

// SearchImages queries the NASA Image and Video Library. media_type
// defaults to image.
func (c *Client) SearchImages(ctx context.Context, q url.Values) (json.RawMessage, error) {
	return c.Get(ctx, ImageSearchOp, "/search", q)
}

func (c *Client) feed(ctx context.Context, what string, q url.Values) (*Feed, error) {
	body, err := c.NEOFeed(ctx, q)
	if err != nil {
		return nil, err
	}
	f, err := ParseFeed(body)
	if err != nil {
		return nil, errors.Wrap(NEOFeedOp.Code, "Failed to "+what+": unexpected NEO feed format", err)
	}
	return f, nil
}

// HazardousNEOs returns the feed reduced to potentially hazardous objects.
func (c *Client) HazardousNEOs(ctx context.Context, q url.Values) (*Feed, error) {
	f, err := c.feed(ctx, "fetch hazardous NEOs", q)
	if err != nil {
		return nil, err
	}
	return FilterHazardous(f), nil
}

// NEOSummary returns aggregate counts and diameters for the feed.
func (c *Client) NEOSummary(ctx context.Context, q url.Values) (*Summary, error) {
	f, err := c.feed(ctx, "get NEO summary", q)
	if err != nil {
		return nil, err
	}
	s := Summarize(f, q.Get("start_date"), q.Get("end_date"))
	return &s, nil
}

// NEOsBySize returns the feed reduced to objects whose average diameter
// lies within the min_diameter and max_diameter query bounds (km).
// A missing max means no upper bound.
func (c *Client) NEOsBySize(ctx context.Context, q url.Values) (*Feed, error) {
	minKm, maxKm, err := sizeBounds(q)
	if err != nil {
		return nil, err
	}
	f, err := c.feed(ctx, "get NEOs by size", q)
	if err != nil {
		return nil, err
	}
	return FilterBySize(f, minKm, maxKm), nil
}

func sizeBounds(q url.Values) (float64, float64, error) {
	minKm, maxKm := 0.0, math.MaxFloat64
	if s := q.Get("min_diameter"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, 0, errors.New(errors.ErrCodeValidation, fmt.Sprintf("invalid min_diameter %q", s))
		}
		minKm = v
	}
	if s := q.Get("max_diameter"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, 0, errors.New(errors.ErrCodeValidation, fmt.Sprintf("invalid max_diameter %q", s))
		}
		maxKm = v
	}
	if minKm > maxKm {
		return 0, 0, errors.New(errors.ErrCodeValidation, "min_diameter must not exceed max_diameter")
	}
	return minKm, maxKm, nil
}

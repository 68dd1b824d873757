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
	"encoding/json"
	"fmt"
	"sort"
)

// NEO is one near-earth object. Only the fields the service inspects are
// decoded; the object is re-emitted exactly as received.
type NEO struct {
	raw json.RawMessage

	Hazardous   bool
	DiameterMin float64
	DiameterMax float64
}

type neoFields struct {
	Hazardous         bool `json:"is_potentially_hazardous_asteroid"`
	EstimatedDiameter struct {
		Kilometers struct {
			Min float64 `json:"estimated_diameter_min"`
			Max float64 `json:"estimated_diameter_max"`
		} `json:"kilometers"`
	} `json:"estimated_diameter"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NEO) UnmarshalJSON(b []byte) error {
	var f neoFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	n.raw = append(json.RawMessage(nil), b...)
	n.Hazardous = f.Hazardous
	n.DiameterMin = f.EstimatedDiameter.Kilometers.Min
	n.DiameterMax = f.EstimatedDiameter.Kilometers.Max
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n NEO) MarshalJSON() ([]byte, error) {
	if n.raw == nil {
		return []byte("null"), nil
	}
	return n.raw, nil
}

// AverageDiameter is the mean of the estimated min and max diameter in km.
func (n NEO) AverageDiameter() float64 {
	return (n.DiameterMin + n.DiameterMax) / 2
}

// Feed is the NEO feed response: objects bucketed by approach date plus
// whatever other top-level fields NASA sends, which are kept verbatim.
type Feed struct {
	rest map[string]json.RawMessage

	ElementCount     int
	NearEarthObjects map[string][]NEO
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Feed) UnmarshalJSON(b []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(b, &top); err != nil {
		return err
	}

	f.NearEarthObjects = map[string][]NEO{}
	if raw, ok := top["near_earth_objects"]; ok {
		if err := json.Unmarshal(raw, &f.NearEarthObjects); err != nil {
			return fmt.Errorf("near_earth_objects: %w", err)
		}
	}
	if raw, ok := top["element_count"]; ok {
		if err := json.Unmarshal(raw, &f.ElementCount); err != nil {
			return fmt.Errorf("element_count: %w", err)
		}
	}

	delete(top, "near_earth_objects")
	delete(top, "element_count")
	f.rest = top
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f Feed) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(f.rest)+2)
	for k, v := range f.rest {
		out[k] = v
	}
	buckets := f.NearEarthObjects
	if buckets == nil {
		buckets = map[string][]NEO{}
	}
	out["element_count"] = f.ElementCount
	out["near_earth_objects"] = buckets
	return json.Marshal(out)
}

// ParseFeed decodes a NEO feed body.
func ParseFeed(body []byte) (*Feed, error) {
	var f Feed
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("failed to decode NEO feed: %w", err)
	}
	return &f, nil
}

// filter returns a copy of f holding only the objects keep accepts.
// Date buckets left empty are dropped and element_count is recomputed.
func (f *Feed) filter(keep func(NEO) bool) *Feed {
	out := &Feed{
		rest:             f.rest,
		NearEarthObjects: make(map[string][]NEO, len(f.NearEarthObjects)),
	}
	for date, objs := range f.NearEarthObjects {
		var kept []NEO
		for _, o := range objs {
			if keep(o) {
				kept = append(kept, o)
			}
		}
		if len(kept) > 0 {
			out.NearEarthObjects[date] = kept
			out.ElementCount += len(kept)
		}
	}
	return out
}

// FilterHazardous keeps only potentially hazardous objects.
func FilterHazardous(f *Feed) *Feed {
	return f.filter(func(n NEO) bool { return n.Hazardous })
}

// FilterBySize keeps objects whose average estimated diameter in km lies
// within [minKm, maxKm].
func FilterBySize(f *Feed, minKm, maxKm float64) *Feed {
	return f.filter(func(n NEO) bool {
		d := n.AverageDiameter()
		return d >= minKm && d <= maxKm
	})
}

// DateRange is an inclusive span of approach dates.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DiameterRange is an averaged diameter estimate in km.
type DiameterRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Summary aggregates a NEO feed.
type Summary struct {
	TotalCount      int           `json:"totalCount"`
	HazardousCount  int           `json:"hazardousCount"`
	DateRange       DateRange     `json:"dateRange"`
	AverageDiameter DiameterRange `json:"averageDiameter"`
}

const unknownDate = "unknown"

// Summarize counts objects and averages their diameter estimates. Objects
// missing either bound are left out of the average. start and end label
// the range; when empty they are taken from the feed's date buckets.
func Summarize(f *Feed, start, end string) Summary {
	s := Summary{}

	var sumMin, sumMax float64
	var measured int
	dates := make([]string, 0, len(f.NearEarthObjects))
	for date, objs := range f.NearEarthObjects {
		dates = append(dates, date)
		for _, o := range objs {
			s.TotalCount++
			if o.Hazardous {
				s.HazardousCount++
			}
			if o.DiameterMin > 0 && o.DiameterMax > 0 {
				sumMin += o.DiameterMin
				sumMax += o.DiameterMax
				measured++
			}
		}
	}
	if measured > 0 {
		s.AverageDiameter = DiameterRange{Min: sumMin / float64(measured), Max: sumMax / float64(measured)}
	}

	sort.Strings(dates)
	s.DateRange = DateRange{Start: start, End: end}
	if s.DateRange.Start == "" {
		s.DateRange.Start = unknownDate
		if len(dates) > 0 {
			s.DateRange.Start = dates[0]
		}
	}
	if s.DateRange.End == "" {
		s.DateRange.End = unknownDate
		if len(dates) > 0 {
			s.DateRange.End = dates[len(dates)-1]
		}
	}
	return s
}

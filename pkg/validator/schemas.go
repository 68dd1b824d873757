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

package validator

import "time"

const (
	// MinSearchYear is the earliest year accepted by image search.
	MinSearchYear = 1900
)

var (
	// Rovers are the Mars rovers served by the photos API, in mission order.
	Rovers = []string{"curiosity", "opportunity", "spirit", "perseverance"}

	// MediaTypes are the NASA image library media types.
	MediaTypes = []string{"image", "video", "audio"}
)

// APOD validates Astronomy Picture of the Day queries.
var APOD = Schema{
	Query: []Rule{
		{Field: "date", Type: TypeDate},
		{Field: "start_date", Type: TypeDate},
		{Field: "end_date", Type: TypeDate},
		{Field: "count", Type: TypeNumber, Min: Bound(1), Max: Bound(100)},
		{Field: "thumbs", Type: TypeBoolean},
	},
	DateRanges: []DateRange{{Start: "start_date", End: "end_date"}},
}

var roverParam = Rule{Field: "rover", Type: TypeString, Required: true, Enum: Rovers}

// MarsRover validates rover photo queries.
var MarsRover = Schema{
	Params: []Rule{roverParam},
	Query: []Rule{
		{Field: "sol", Type: TypeNumber, Min: Bound(0)},
		{Field: "earth_date", Type: TypeDate},
		{Field: "camera", Type: TypeString},
		{Field: "page", Type: TypeNumber, Min: Bound(1)},
	},
}

// MarsRoverManifest validates rover manifest lookups.
var MarsRoverManifest = Schema{
	Params: []Rule{roverParam},
}

// EPIC validates Earth Polychromatic Imaging Camera queries.
var EPIC = Schema{
	Query: []Rule{
		{Field: "date", Type: TypeDate},
		{Field: "identifier", Type: TypeString},
		{Field: "image", Type: TypeString},
		{Field: "enhanced", Type: TypeBoolean},
	},
}

// EPICImageURL validates archive image URL construction, which needs
// both the capture date and the image name.
var EPICImageURL = Schema{
	Query: []Rule{
		{Field: "date", Type: TypeDate, Required: true},
		{Field: "image", Type: TypeString, Required: true},
		{Field: "identifier", Type: TypeString},
		{Field: "enhanced", Type: TypeBoolean},
	},
}

// NEO validates near-earth object feed queries.
var NEO = Schema{
	Query: []Rule{
		{Field: "start_date", Type: TypeDate},
		{Field: "end_date", Type: TypeDate},
		{Field: "asteroid_id", Type: TypeString},
	},
	DateRanges: []DateRange{{Start: "start_date", End: "end_date"}},
}

// NEOBySize extends NEO with diameter bounds in kilometers.
var NEOBySize = Schema{
	Query: append(append([]Rule{}, NEO.Query...),
		Rule{Field: "min_diameter", Type: TypeNumber, Min: Bound(0)},
		Rule{Field: "max_diameter", Type: TypeNumber, Min: Bound(0)},
	),
	DateRanges: NEO.DateRanges,
}

// ImageSearch validates image library searches. The year bounds depend
// on the current year, so the schema is built per request.
func ImageSearch(now time.Time) Schema {
	year := Bound(float64(now.Year()))
	return Schema{
		Query: []Rule{
			{Field: "q", Type: TypeString, Max: Bound(200)},
			{Field: "center", Type: TypeString},
			{Field: "description", Type: TypeString, Max: Bound(500)},
			{Field: "keywords", Type: TypeString, Max: Bound(200)},
			{Field: "location", Type: TypeString},
			{Field: "nasa_id", Type: TypeString},
			{Field: "photographer", Type: TypeString},
			{Field: "title", Type: TypeString, Max: Bound(200)},
			{Field: "year_start", Type: TypeNumber, Min: Bound(MinSearchYear), Max: year},
			{Field: "year_end", Type: TypeNumber, Min: Bound(MinSearchYear), Max: year},
			{Field: "media_type", Type: TypeString, Enum: MediaTypes},
			{Field: "page", Type: TypeNumber, Min: Bound(1)},
		},
	}
}

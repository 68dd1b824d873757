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
	"net/url"
	"time"

	"github.com/spacedata/nasa-explorer/pkg/defaults"
	"github.com/spacedata/nasa-explorer/pkg/errors"
)

// Family groups operations that share a cache TTL.
type Family string

const (
	FamilyAPOD        Family = "apod"
	FamilyMarsRover   Family = "marsRover"
	FamilyEPIC        Family = "epic"
	FamilyNEO         Family = "neo"
	FamilyImageSearch Family = "imageSearch"
)

// TTL returns the cache lifetime for responses of the family.
func (f Family) TTL() time.Duration {
	switch f {
	case FamilyAPOD:
		return defaults.APODCacheTTL
	case FamilyMarsRover:
		return defaults.MarsRoverCacheTTL
	case FamilyEPIC:
		return defaults.EPICCacheTTL
	case FamilyNEO:
		return defaults.NEOCacheTTL
	case FamilyImageSearch:
		return defaults.ImageSearchCacheTTL
	default:
		return defaults.CacheDefaultTTL
	}
}

// Descriptor declares how one upstream operation is called and how its
// failures are reported.
type Descriptor struct {
	// Name identifies the operation in logs and metrics.
	Name string

	// Family selects the cache TTL.
	Family Family

	// What completes the failure message "Failed to fetch <What>".
	What string

	// Code is the error code reported when the call fails.
	Code errors.ErrorCode

	// Timeout bounds the whole upstream call.
	Timeout time.Duration

	// Forward lists the query parameters passed through to NASA.
	// Everything else, such as noCache, stays local.
	Forward []string

	// Defaults are applied when the caller did not supply the parameter.
	Defaults url.Values

	// Images routes the call to the image library host, which takes no
	// API key.
	Images bool
}

var (
	APODOp = Descriptor{
		Name:    "apod",
		Family:  FamilyAPOD,
		What:    "APOD",
		Code:    errors.ErrCodeAPODFetch,
		Timeout: defaults.UpstreamTimeout,
		Forward: []string{"date", "start_date", "end_date", "count", "thumbs"},
	}

	MarsRoversOp = Descriptor{
		Name:    "mars_rovers",
		Family:  FamilyMarsRover,
		What:    "Mars rovers",
		Code:    errors.ErrCodeMarsRoversFetch,
		Timeout: defaults.UpstreamTimeout,
	}

	MarsRoverPhotosOp = Descriptor{
		Name:    "mars_rover_photos",
		Family:  FamilyMarsRover,
		What:    "Mars rover photos",
		Code:    errors.ErrCodeMarsRoverFetch,
		Timeout: defaults.UpstreamTimeout,
		Forward: []string{"sol", "earth_date", "camera", "page"},
	}

	MarsRoverManifestOp = Descriptor{
		Name:    "mars_rover_manifest",
		Family:  FamilyMarsRover,
		What:    "Mars rover manifest",
		Code:    errors.ErrCodeMarsManifestFetch,
		Timeout: defaults.UpstreamTimeout,
	}

	EPICOp = Descriptor{
		Name:    "epic",
		Family:  FamilyEPIC,
		What:    "EPIC data",
		Code:    errors.ErrCodeEPICFetch,
		Timeout: defaults.UpstreamTimeout,
	}

	EPICDatesOp = Descriptor{
		Name:    "epic_dates",
		Family:  FamilyEPIC,
		What:    "available EPIC dates",
		Code:    errors.ErrCodeEPICFetch,
		Timeout: defaults.UpstreamTimeout,
	}

	NEOFeedOp = Descriptor{
		Name:    "neo_feed",
		Family:  FamilyNEO,
		What:    "NEO data",
		Code:    errors.ErrCodeNEOFetch,
		Timeout: defaults.UpstreamTimeout,
		Forward: []string{"start_date", "end_date"},
	}

	NEOLookupOp = Descriptor{
		Name:    "neo_lookup",
		Family:  FamilyNEO,
		What:    "NEO data",
		Code:    errors.ErrCodeNEOFetch,
		Timeout: defaults.UpstreamTimeout,
	}

	ImageSearchOp = Descriptor{
		Name:    "image_search",
		Family:  FamilyImageSearch,
		What:    "NASA images",
		Code:    errors.ErrCodeImageSearch,
		Timeout: defaults.UpstreamSearchTimeout,
		Forward: []string{
			"q", "center", "description", "keywords", "location", "nasa_id",
			"photographer", "title", "year_start", "year_end", "media_type", "page",
		},
		Defaults: url.Values{"media_type": {"image"}},
		Images:   true,
	}
)

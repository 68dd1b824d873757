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
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spacedata/nasa-explorer/pkg/errors"
)

// EPIC image collections.
const (
	CollectionNatural  = "natural"
	CollectionEnhanced = "enhanced"
)

// EPICImageParams identifies one archived EPIC image.
type EPICImageParams struct {
	Identifier string
	Date       string
	Image      string
	Enhanced   bool
}

// Collection returns the archive collection the image belongs to.
func (p EPICImageParams) Collection() string {
	if p.Enhanced {
		return CollectionEnhanced
	}
	return CollectionNatural
}

// epicDay extracts the calendar day from an EPIC timestamp. Only the
// leading YYYY-MM-DD is used, so the day never shifts with time zones.
func epicDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) < len(time.DateOnly) {
		return time.Time{}, fmt.Errorf("date %q is too short", s)
	}
	return time.Parse(time.DateOnly, s[:len(time.DateOnly)])
}

// EPICImageURL builds the archive URL of a PNG image:
//
//	<base>/EPIC/archive/<natural|enhanced>/YYYY/MM/DD/png/<image>.png?api_key=<key>
//
// It performs no network call.
func EPICImageURL(baseURL, apiKey string, p EPICImageParams) (string, error) {
	if p.Image == "" {
		return "", errors.New(errors.ErrCodeEPICImageURL, "Failed to generate EPIC image URL: image is required")
	}
	day, err := epicDay(p.Date)
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeEPICImageURL, "Failed to generate EPIC image URL: invalid date",
			err, map[string]any{"date": p.Date})
	}

	return fmt.Sprintf("%s/EPIC/archive/%s/%s/png/%s.png?api_key=%s",
		strings.TrimRight(baseURL, "/"),
		p.Collection(),
		day.Format("2006/01/02"),
		url.PathEscape(p.Image),
		url.QueryEscape(apiKey),
	), nil
}

// epicPath returns the metadata path for a day, or the latest day when
// date is empty.
func epicPath(collection, date string) (string, error) {
	if date == "" {
		return "/EPIC/api/" + collection + "/latest", nil
	}
	day, err := epicDay(date)
	if err != nil {
		return "", err
	}
	return "/EPIC/api/" + collection + "/date/" + day.Format(time.DateOnly), nil
}

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

import (
	"net/http"
	"net/url"
)

// Values holds the parameters of one request source.
type Values map[string]any

// FromQuery converts url.Values to Values, keeping the first value of each key.
func FromQuery(q url.Values) Values {
	v := make(Values, len(q))
	for k, vals := range q {
		if len(vals) > 0 {
			v[k] = vals[0]
		}
	}
	return v
}

// FromPath collects the named path wildcards of a request matched by
// http.ServeMux.
func FromPath(r *http.Request, names ...string) Values {
	v := make(Values, len(names))
	for _, n := range names {
		if s := r.PathValue(n); s != "" {
			v[n] = s
		}
	}
	return v
}

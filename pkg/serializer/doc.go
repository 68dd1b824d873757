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

// Package serializer moves JSON in and out of the process.
//
// Inbound HTTP handlers write envelopes with RespondJSON, or RespondBytes
// when replaying a body that was encoded earlier with EncodeJSON. Outbound
// calls to upstream APIs go through HTTPClient, which wraps a pooled
// transport and reads bounded bodies:
//
//	c := serializer.NewHTTPClient()
//	resp, err := c.Get(ctx, "https://api.nasa.gov/planetary/apod?api_key=DEMO_KEY")
//	if err == nil && resp.OK() {
//	    ...
//	}
//
// Writer renders values for CLI output as JSON, YAML or a flattened table.
// FromFile decodes JSON or YAML files by extension.
package serializer

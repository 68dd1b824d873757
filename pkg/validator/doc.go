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

// Package validator checks request parameters against declarative rules.
//
// A Schema lists Rules per request source (query, params, body). Validate
// evaluates every rule and collects all violations into a Result instead
// of stopping at the first one. Messages name the source and field:
//
//	query.count must be at most 100
//	params.rover must be one of: curiosity, opportunity, spirit, perseverance
//
// Absent and empty values are treated the same way: a required field reports
// "is required" and nothing else, an optional one is skipped.
//
// # Usage
//
//	res := validator.Validate(validator.MarsRover, validator.Input{
//	    Query:  validator.FromQuery(r.URL.Query()),
//	    Params: validator.FromPath(r, "rover"),
//	})
//	if !res.IsValid {
//	    // 400 with res.Message()
//	}
//
// The per-family schemas (APOD, MarsRover, EPIC, NEO, ImageSearch) are
// package variables; ImageSearch is a function because its year bound
// moves with the calendar.
package validator

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
	"log/slog"
)

// Source names used as error message prefixes.
const (
	SourceQuery  = "query"
	SourceParams = "params"
	SourceBody   = "body"
)

// DateRange requires Start to be on or before End when both query
// parameters are present and parse as dates.
type DateRange struct {
	Start string
	End   string
}

// Schema groups the rules for each request source.
type Schema struct {
	Query      []Rule
	Params     []Rule
	Body       []Rule
	DateRanges []DateRange
}

// Input holds the raw parameters of a request by source.
type Input struct {
	Query  Values
	Params Values
	Body   Values
}

// Validate evaluates schema against in. Sources are checked in the order
// query, params, body and rules in declaration order; all violations are
// collected. Validate never mutates in.
func Validate(schema Schema, in Input) Result {
	var errs []string
	for _, r := range schema.Query {
		errs = r.check(SourceQuery, in.Query, errs)
	}
	for _, r := range schema.Params {
		errs = r.check(SourceParams, in.Params, errs)
	}
	for _, r := range schema.Body {
		errs = r.check(SourceBody, in.Body, errs)
	}
	for _, dr := range schema.DateRanges {
		errs = dr.check(SourceQuery, in.Query, errs)
	}

	res := Result{IsValid: len(errs) == 0, Errors: errs}
	if res.Errors == nil {
		res.Errors = []string{}
	}
	if !res.IsValid {
		slog.Debug("validation failed", "errors", len(errs))
	}
	return res
}

func (dr DateRange) check(source string, values Values, errs []string) []string {
	start, ok := values[dr.Start].(string)
	if !ok {
		return errs
	}
	end, ok := values[dr.End].(string)
	if !ok {
		return errs
	}
	s, err := ParseDate(start)
	if err != nil {
		return errs
	}
	e, err := ParseDate(end)
	if err != nil {
		return errs
	}
	if s.After(e) {
		errs = append(errs, source+"."+dr.Start+" must not be after "+source+"."+dr.End)
	}
	return errs
}

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
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"k8s.io/apimachinery/pkg/util/sets"
)

// FieldType is the expected type of a parameter value.
type FieldType string

const (
	// TypeString accepts string values only.
	TypeString FieldType = "string"

	// TypeNumber accepts numbers or strings parseable as a finite float.
	TypeNumber FieldType = "number"

	// TypeBoolean accepts bools or the strings "true" and "false".
	TypeBoolean FieldType = "boolean"

	// TypeDate accepts strings in one of the layouts understood by ParseDate.
	TypeDate FieldType = "date"
)

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	time.RFC3339Nano,
}

// Rule describes the constraints on a single named parameter.
// Min and Max bound the value for numbers and the character count for strings.
type Rule struct {
	Field    string
	Type     FieldType
	Required bool
	Min      *float64
	Max      *float64
	Pattern  *regexp.Regexp
	Enum     []string
}

// Bound returns a pointer to v, for use in Rule.Min and Rule.Max.
func Bound(v float64) *float64 {
	return &v
}

// ParseDate parses s as YYYY-MM-DD, "YYYY-MM-DD HH:MM:SS" or RFC 3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// isAbsent reports whether a value counts as not supplied.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// check evaluates the rule against values, appending one message per
// violation. Messages are prefixed with "<source>.<field>".
func (r Rule) check(source string, values Values, errs []string) []string {
	name := source + "." + r.Field
	v, present := values[r.Field]

	if !present || isAbsent(v) {
		if r.Required {
			errs = append(errs, name+" is required")
		}
		return errs
	}

	switch r.Type {
	case TypeNumber:
		n, ok := toNumber(v)
		if !ok {
			return append(errs, name+" must be a number")
		}
		if r.Min != nil && n < *r.Min {
			errs = append(errs, fmt.Sprintf("%s must be at least %s", name, formatBound(*r.Min)))
		}
		if r.Max != nil && n > *r.Max {
			errs = append(errs, fmt.Sprintf("%s must be at most %s", name, formatBound(*r.Max)))
		}
	case TypeBoolean:
		if _, ok := toBool(v); !ok {
			errs = append(errs, name+" must be a boolean")
		}
	case TypeDate:
		s, ok := v.(string)
		if !ok {
			return append(errs, name+" must be a valid date")
		}
		if _, err := ParseDate(s); err != nil {
			errs = append(errs, name+" must be a valid date")
		}
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return append(errs, name+" must be a string")
		}
		n := utf8.RuneCountInString(s)
		if r.Min != nil && float64(n) < *r.Min {
			errs = append(errs, fmt.Sprintf("%s must be at least %s characters", name, formatBound(*r.Min)))
		}
		if r.Max != nil && float64(n) > *r.Max {
			errs = append(errs, fmt.Sprintf("%s must be at most %s characters", name, formatBound(*r.Max)))
		}
		if r.Pattern != nil && !r.Pattern.MatchString(s) {
			errs = append(errs, name+" format is invalid")
		}
		if len(r.Enum) > 0 && !sets.New(r.Enum...).Has(s) {
			errs = append(errs, fmt.Sprintf("%s must be one of: %s", name, strings.Join(r.Enum, ", ")))
		}
	default:
		errs = append(errs, fmt.Sprintf("%s has unsupported rule type %q", name, r.Type))
	}
	return errs
}

func toNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func toBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch t {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// formatBound renders a bound without a trailing ".0" for whole numbers.
func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

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

import "strings"

// Result is the outcome of validating one request.
type Result struct {
	// IsValid is true when Errors is empty.
	IsValid bool `json:"isValid"`

	// Errors lists the violations in evaluation order.
	Errors []string `json:"errors"`
}

// Message formats the result as the client-facing validation message.
func (r Result) Message() string {
	if r.IsValid {
		return ""
	}
	return "Validation failed: " + strings.Join(r.Errors, ", ")
}

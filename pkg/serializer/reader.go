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

package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FormatFromPath determines the serialization format from a file extension.
// .json maps to JSON, .yaml and .yml to YAML; anything else is unknown.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return Format("")
	}
}

// Decode reads one document in the given format from r into v.
func Decode(format Format, r io.Reader, v any) error {
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && err != io.EOF {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format for deserialization: %q", format)
	}
}

// DecodeFile decodes the file at path into v, leaving fields the file does
// not mention untouched. The format comes from the file extension.
func DecodeFile(path string, v any) error {
	format := FormatFromPath(path)
	if format.IsUnknown() || format == FormatTable {
		return fmt.Errorf("cannot determine format of %s: use .json, .yaml or .yml", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if err := Decode(format, f, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// FromFile decodes the file at path into a new T.
func FromFile[T any](path string) (*T, error) {
	var v T
	if err := DecodeFile(path, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

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

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/spacedata/nasa-explorer/pkg/nasa"
	"github.com/spacedata/nasa-explorer/pkg/serializer"
)

// epicImageFile is the on-disk form of --params.
type epicImageFile struct {
	Date       string `json:"date" yaml:"date"`
	Image      string `json:"image" yaml:"image"`
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Enhanced   bool   `json:"enhanced,omitempty" yaml:"enhanced,omitempty"`
}

// EPICImage is the epic-url command output.
type EPICImage struct {
	ImageURL   string `json:"imageURL" yaml:"imageURL"`
	Collection string `json:"collection" yaml:"collection"`
}

func epicURLCmd() *cli.Command {
	return &cli.Command{
		Name:  "epic-url",
		Usage: "Print the archive URL of an EPIC image",
		Description: `Build the download URL of an Earth Polychromatic Imaging Camera image.
No request is made to NASA. The API key and base URL come from the
configuration unless --api-key is given.

Parameters can be read from a JSON or YAML file with --params; flags
override values from the file.

  nasad epic-url --date 2024-01-15 --image epic_1b_20240115001751
  nasad epic-url --params image.yaml --enhanced --format yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "date",
				Usage: "Capture date (YYYY-MM-DD, a trailing time is ignored)",
			},
			&cli.StringFlag{
				Name:  "image",
				Usage: "Image name as returned by the EPIC metadata API",
			},
			&cli.StringFlag{
				Name:  "identifier",
				Usage: "Image identifier (informational)",
			},
			&cli.BoolFlag{
				Name:  "enhanced",
				Usage: "Use the enhanced color collection instead of natural",
			},
			&cli.StringFlag{
				Name:    "params",
				Aliases: []string{"f"},
				Usage:   "Path to a JSON or YAML file with date, image, identifier and enhanced",
			},
			&cli.StringFlag{
				Name:  "api-key",
				Usage: "API key embedded in the URL (default: configured key)",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			p, err := epicParamsFromCmd(cmd)
			if err != nil {
				return err
			}

			key := cfg.NASAAPIKey
			if cmd.IsSet("api-key") {
				key = cmd.String("api-key")
			}

			u, err := nasa.EPICImageURL(cfg.NASABaseURL, key, p)
			if err != nil {
				return err
			}

			return writeOutput(cmd, EPICImage{ImageURL: u, Collection: p.Collection()})
		},
	}
}

// epicParamsFromCmd merges the --params file with the individual flags.
func epicParamsFromCmd(cmd *cli.Command) (nasa.EPICImageParams, error) {
	var file epicImageFile
	if path := cmd.String("params"); path != "" {
		f, err := serializer.FromFile[epicImageFile](path)
		if err != nil {
			return nasa.EPICImageParams{}, fmt.Errorf("failed to load EPIC parameters from %q: %w", path, err)
		}
		file = *f
	}

	p := nasa.EPICImageParams{
		Date:       file.Date,
		Image:      file.Image,
		Identifier: file.Identifier,
		Enhanced:   file.Enhanced,
	}
	if cmd.IsSet("date") {
		p.Date = cmd.String("date")
	}
	if cmd.IsSet("image") {
		p.Image = cmd.String("image")
	}
	if cmd.IsSet("identifier") {
		p.Identifier = cmd.String("identifier")
	}
	if cmd.IsSet("enhanced") {
		p.Enhanced = cmd.Bool("enhanced")
	}
	return p, nil
}

// Package cli implements the nasad command-line interface.
//
// # Commands
//
//	nasad serve     Run the NASA API proxy server
//	nasad epic-url  Print the archive URL of an EPIC image
//	nasad config    Print the effective configuration
//	nasad version   Print build information
//
// # Global Flags
//
//	--config, -c   JSON or YAML config file (env: NASAD_CONFIG)
//	--log-level    debug, info, warn or error (env: LOG_LEVEL)
//
// # Configuration Precedence
//
// Built-in defaults are overridden by the config file, which is overridden
// by environment variables, which are overridden by command flags.
//
// # Output
//
// Commands that print data accept --format (json, yaml, table) and
// --output (file path, default stdout):
//
//	nasad epic-url --date 2024-01-15 --image epic_1b_20240115001751 --format table
//	nasad config --format yaml --output effective.yaml
//
// The CLI uses the urfave/cli/v3 framework and delegates to pkg/api for the
// server and pkg/nasa for URL construction.
package cli

// Package migrations embeds the orders schema for every supported driver.
package migrations

import "embed"

// FS holds one subdirectory per database driver.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// Package configs embeds the default runtime files the setup wizard writes
// into the runtime directory.
package configs

import "embed"

//go:embed SYSTEM.md
var FS embed.FS

// Package res embeds the page templates and the static files of the
// generated site.
package res

import "embed"

//go:embed templates
var Templates embed.FS

//go:embed static
var Static embed.FS

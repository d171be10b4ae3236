package syqlorix

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded module and failure templates so callers can
// copy and customise them.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

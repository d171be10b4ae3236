package syqgen

import (
	"io/fs"

	"github.com/goliatone/go-syqgen/pkg/examples"
	"github.com/goliatone/go-syqgen/pkg/renderers/syqlorix"
)

// EmbeddedTemplates exposes the built-in syqlorix renderer templates so callers
// can override one file and keep the rest via syqlorix.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return syqlorix.TemplatesFS()
}

// ExamplesFS exposes the bundled example catalog (examples.yaml).
func ExamplesFS() fs.FS {
	return examples.FS()
}

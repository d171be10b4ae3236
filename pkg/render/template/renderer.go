package template

import "io"

// TemplateRenderer is the engine contract renderers depend on. Both render
// methods also copy the result to any writers passed in.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(content string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
}

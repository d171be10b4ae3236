package render

import (
	"context"

	"github.com/goliatone/go-syqgen/pkg/markup"
)

// Renderer converts a parsed markup tree into a byte representation (builder
// source, preview markup, etc.). Render is only called with trees that passed
// the precondition checks, so a renderer's traversal never fails on input.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, tree *markup.Tree, options RenderOptions) ([]byte, error)
}

// FailureRenderer is implemented by renderers that have a failure-shaped
// output: the payload shown in place of a conversion when a precondition
// fails. The output must never contain a partial traversal.
type FailureRenderer interface {
	RenderFailure(cause error, options RenderOptions) []byte
}

package syqgen

import (
	"context"

	"github.com/goliatone/go-syqgen/pkg/markup"
	"github.com/goliatone/go-syqgen/pkg/orchestrator"
	"github.com/goliatone/go-syqgen/pkg/render"
	"github.com/goliatone/go-syqgen/pkg/renderers/preview"
	"github.com/goliatone/go-syqgen/pkg/renderers/syqlorix"
)

// RenderOptions describes the per-request mode flags shared by every
// renderer.
type RenderOptions = render.RenderOptions

// Result aliases orchestrator.Result so callers of Convert need not import
// the orchestrator package.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Serialize converts a complete HTML document into Syqlorix builder source.
// A failed precondition returns the failure-shaped source together with a
// *render.ConversionError.
func Serialize(ctx context.Context, input string, options RenderOptions, opts ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(opts...)
	return gen.Generate(ctx, orchestrator.Request{
		Input:    input,
		Renderer: syqlorix.Name,
		Options:  options,
	})
}

// Render produces the indented preview document for input.
func Render(ctx context.Context, input string, options RenderOptions, opts ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(opts...)
	return gen.Generate(ctx, orchestrator.Request{
		Input:    input,
		Renderer: preview.Name,
		Options:  options,
	})
}

// Convert runs both renderers over input. Precondition failures are reported
// through the Result, not the error.
func Convert(ctx context.Context, input string, options RenderOptions, opts ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(opts...)
	return gen.Convert(ctx, orchestrator.Request{
		Input:   input,
		Options: options,
	})
}

// ConvertSource loads the document behind source before converting it.
func ConvertSource(ctx context.Context, source markup.Source, options RenderOptions, opts ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(opts...)
	return gen.Convert(ctx, orchestrator.Request{
		Source:  source,
		Options: options,
	})
}

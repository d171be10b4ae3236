package orchestrator

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-syqgen/internal/markup/loader"
	internalParser "github.com/goliatone/go-syqgen/internal/markup/parser"
	"github.com/goliatone/go-syqgen/pkg/markup"
	"github.com/goliatone/go-syqgen/pkg/render"
	"github.com/goliatone/go-syqgen/pkg/renderers/preview"
	"github.com/goliatone/go-syqgen/pkg/renderers/syqlorix"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom markup loader.
func WithLoader(loader markup.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom markup parser.
func WithParser(parser markup.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithLogger sets the logger used for conversion diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCodeRenderer overrides the renderer used for the builder-source pass and
// for requests that omit an explicit Renderer field.
func WithCodeRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.codeRenderer = name
	}
}

// WithPreviewRenderer overrides the renderer used for the preview pass.
func WithPreviewRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.previewRenderer = name
	}
}

// Orchestrator coordinates the pipeline from markup text to builder source
// and preview. It applies defaults (file loader, HTML parser, syqlorix and
// preview renderers) while remaining open to dependency injection.
type Orchestrator struct {
	loader          markup.Loader
	parser          markup.Parser
	registry        *render.Registry
	logger          *zap.Logger
	codeRenderer    string
	previewRenderer string
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		codeRenderer:    syqlorix.Name,
		previewRenderer: preview.Name,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one conversion.
type Request struct {
	// Source identifies where the markup lives. Ignored when Document or Input
	// is supplied.
	Source markup.Source

	// Document bypasses the loader for callers that already hold the payload.
	Document *markup.Document

	// Input is inline markup text; it takes precedence over Source. A request
	// with neither Document nor Source converts Input even when it is empty.
	Input string

	// Renderer names the renderer Generate uses. Empty selects the code
	// renderer.
	Renderer string

	// Options carries the per-request mode flags.
	Options render.RenderOptions
}

// Result holds both outputs of a conversion. When the input fails a
// precondition both outputs are failure shaped and both errors carry the same
// message.
type Result struct {
	Code       []byte
	Preview    []byte
	CodeErr    error
	PreviewErr error
}

// Failed reports whether the conversion hit a precondition failure.
func (r Result) Failed() bool {
	return r.CodeErr != nil || r.PreviewErr != nil
}

// Generate runs a single renderer. On a precondition failure it returns the
// renderer's failure-shaped output together with a *render.ConversionError
// (or *render.RenderError for the preview renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if err := o.ready(ctx, req); err != nil {
		return nil, err
	}

	name := req.Renderer
	if name == "" {
		name = o.codeRenderer
	}
	renderer, err := o.rendererFor(name)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	tree, err := o.prepare(ctx, req)
	if markup.IsPrecondition(err) {
		cause := o.wrapFailure(name, err)
		o.logFailure(req, cause)
		return failureOutput(renderer, cause, req.Options), cause
	}
	if err != nil {
		return nil, err
	}

	output, err := o.pass(ctx, renderer, tree, req.Options)
	if err != nil {
		if isFailure(err) {
			o.logFailure(req, err)
		}
		return output, err
	}

	o.logger.Debug("render complete",
		zap.String("renderer", name),
		zap.String("source", location(req)),
		zap.Int("bytes", len(output)),
		zap.Duration("duration", time.Since(started)),
	)
	return output, nil
}

// Convert runs the code and preview renderers over the same tree. The
// returned error is reserved for infrastructure problems; precondition
// failures are reported through Result.
func (o *Orchestrator) Convert(ctx context.Context, req Request) (Result, error) {
	if err := o.ready(ctx, req); err != nil {
		return Result{}, err
	}

	code, err := o.rendererFor(o.codeRenderer)
	if err != nil {
		return Result{}, err
	}
	prev, err := o.rendererFor(o.previewRenderer)
	if err != nil {
		return Result{}, err
	}

	started := time.Now()
	tree, err := o.prepare(ctx, req)
	if markup.IsPrecondition(err) {
		o.logFailure(req, err)
		return o.failedResult(code, prev, err, req.Options), nil
	}
	if err != nil {
		return Result{}, err
	}

	var result Result
	result.Code, result.CodeErr = o.pass(ctx, code, tree, req.Options)
	if result.CodeErr != nil && !isFailure(result.CodeErr) {
		return Result{}, result.CodeErr
	}
	result.Preview, result.PreviewErr = o.pass(ctx, prev, tree, req.Options)
	if result.PreviewErr != nil && !isFailure(result.PreviewErr) {
		return Result{}, result.PreviewErr
	}

	o.logger.Debug("conversion complete",
		zap.String("source", location(req)),
		zap.Int("code_bytes", len(result.Code)),
		zap.Int("preview_bytes", len(result.Preview)),
		zap.Duration("duration", time.Since(started)),
	)
	return result, nil
}

// pass runs one renderer. A failure reported by the renderer comes back with
// the failure-shaped output; any other error is wrapped and has no output.
func (o *Orchestrator) pass(ctx context.Context, renderer render.Renderer, tree *markup.Tree, options render.RenderOptions) ([]byte, error) {
	output, err := renderer.Render(ctx, tree, options)
	if err == nil {
		return output, nil
	}
	if isFailure(err) {
		return failureOutput(renderer, err, options), err
	}
	return nil, errors.Wrapf(err, "orchestrator: render %s", renderer.Name())
}

func (o *Orchestrator) failedResult(code, prev render.Renderer, cause error, options render.RenderOptions) Result {
	codeErr := &render.ConversionError{Cause: cause}
	previewErr := &render.RenderError{Cause: cause}
	return Result{
		Code:       failureOutput(code, codeErr, options),
		Preview:    failureOutput(prev, previewErr, options),
		CodeErr:    codeErr,
		PreviewErr: previewErr,
	}
}

func (o *Orchestrator) ready(ctx context.Context, req Request) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := o.initialiseErr; err != nil {
		return err
	}
	return req.Options.Validate()
}

// prepare loads and parses the request. Precondition failures are returned
// unwrapped so markup.IsPrecondition identifies them; anything else is an
// infrastructure error. Checks run in order: doctype, structure, root.
func (o *Orchestrator) prepare(ctx context.Context, req Request) (*markup.Tree, error) {
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	if !req.Options.Fragment {
		if err := markup.CheckDocument(doc); err != nil {
			return nil, err
		}
	}

	tree, err := o.parser.Parse(ctx, doc)
	if err != nil {
		if markup.IsPrecondition(err) {
			return nil, err
		}
		return nil, errors.Wrap(err, "orchestrator: parse document")
	}
	if err := markup.CheckTree(tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (markup.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Input != "" || req.Source == nil {
		return markup.DocumentFromString(req.Input), nil
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return markup.Document{}, errors.Wrap(err, "orchestrator: load document")
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	renderer, err := o.registry.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, "orchestrator: renderer %q", name)
	}
	return renderer, nil
}

func (o *Orchestrator) wrapFailure(name string, cause error) error {
	if name == o.previewRenderer {
		return &render.RenderError{Cause: cause}
	}
	return &render.ConversionError{Cause: cause}
}

func (o *Orchestrator) logFailure(req Request, err error) {
	o.logger.Warn("conversion precondition failed",
		zap.String("source", location(req)),
		zap.String("reason", render.Message(err)),
	)
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(markup.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(markup.NewParserOptions())
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		code, err := syqlorix.New()
		if err != nil {
			o.initialiseErr = errors.Wrap(err, "orchestrator: default code renderer")
			return
		}
		o.registry.MustRegister(code)
		o.registry.MustRegister(preview.New())
	}
}

func failureOutput(renderer render.Renderer, cause error, options render.RenderOptions) []byte {
	if fr, ok := renderer.(render.FailureRenderer); ok {
		return fr.RenderFailure(cause, options)
	}
	return []byte(render.Message(cause))
}

func isFailure(err error) bool {
	var conv *render.ConversionError
	var rend *render.RenderError
	return errors.As(err, &conv) || errors.As(err, &rend)
}

func location(req Request) string {
	switch {
	case req.Document != nil:
		return req.Document.Location()
	case req.Input == "" && req.Source != nil:
		return req.Source.Location()
	default:
		return "inline"
	}
}

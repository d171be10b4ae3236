package syqlorix

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-syqgen/pkg/markup"
	"github.com/goliatone/go-syqgen/pkg/render"
	rendertemplate "github.com/goliatone/go-syqgen/pkg/render/template"
	"github.com/goliatone/go-syqgen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-syqgen/pkg/rules"
)

const (
	// Name is the registry key of the builder-source renderer.
	Name = "syqlorix"

	importHeader    = "from syqlorix import *"
	documentComment = "# Main application object"
	moduleTemplate  = "templates/module.tpl"
	failureTemplate = "templates/failure.tpl"
)

var fragmentComments = []string{
	"# This code was generated from an HTML fragment.",
	"# You can add this to your Syqlorix routes.",
	"",
}

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer produces Syqlorix builder source. It holds no per-conversion
// state and is safe for concurrent use.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var (
	_ render.Renderer        = (*Renderer)(nil)
	_ render.FailureRenderer = (*Renderer)(nil)
)

// New constructs the builder-source renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("syqlorix renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/x-python; charset=utf-8"
}

// Render serializes the tree. A tree without a root element yields a
// *render.ConversionError; the traversal itself never fails.
func (r *Renderer) Render(_ context.Context, tree *markup.Tree, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("syqlorix renderer: template renderer is nil")
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if err := markup.CheckTree(tree); err != nil {
		return nil, &render.ConversionError{Cause: err}
	}

	s := NewSerializer(options)
	variable := options.VariableName()
	comments := []string{documentComment}
	var expr string
	if options.Fragment {
		expr = s.Fragment(tree)
		comments = fragmentComments
		if options.Variable == "" {
			variable = fragmentVariable
		}
	} else {
		expr = s.Document(tree)
	}

	blocks := s.Blocks()
	data := make([]map[string]any, 0, len(blocks))
	for _, block := range blocks {
		data = append(data, map[string]any{
			"name":    block.Name,
			"kind":    string(block.Kind),
			"literal": block.Literal(),
		})
	}

	result, err := r.templates.RenderTemplate(moduleTemplate, map[string]any{
		"constants": data,
		"comments":  comments,
		"variable":  variable,
		"expr":      expr,
	})
	if err != nil {
		return nil, fmt.Errorf("syqlorix renderer: render template: %w", err)
	}
	return terminate(result), nil
}

// RenderFailure returns the import header followed by a comment carrying the
// failure message. It contains no partial serialization.
func (r *Renderer) RenderFailure(cause error, _ render.RenderOptions) []byte {
	message := render.Message(cause)
	if r.templates != nil {
		result, err := r.templates.RenderTemplate(failureTemplate, map[string]any{
			"message": message,
		})
		if err == nil {
			return terminate(result)
		}
	}
	return []byte(importHeader + "\n\n# Conversion failed: " + rules.FlattenLines(message) + "\n")
}

// Serialize converts tree with a default renderer and returns the source text.
func Serialize(ctx context.Context, tree *markup.Tree, options render.RenderOptions) (string, error) {
	r, err := New()
	if err != nil {
		return "", err
	}
	out, err := r.Render(ctx, tree, options)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func terminate(s string) []byte {
	return []byte(strings.TrimRight(s, "\n") + "\n")
}

package gotemplate

import (
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-syqgen/pkg/render/template"
	"github.com/goliatone/go-syqgen/pkg/rules"
)

const (
	setName   = "syqgen"
	extension = ".tpl"
)

var defaultFilters sync.Once

type Option func(*settings)

type settings struct {
	files   fs.FS
	globals pongo2.Context
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(s *settings) {
		s.files = files
	}
}

// WithDir loads templates from a directory on disk.
func WithDir(dir string) Option {
	return func(s *settings) {
		if dir = strings.TrimSpace(dir); dir != "" {
			s.files = os.DirFS(dir)
		}
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(s *settings) {
		for key, value := range data {
			if key = strings.TrimSpace(key); key != "" {
				s.globals[key] = value
			}
		}
	}
}

// Engine renders pongo2 templates. The bundled templates emit Python, not
// markup, so every interpolation in them is marked safe.
type Engine struct {
	set *pongo2.TemplateSet
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an Engine. A template source (WithFS or WithDir) is required.
func New(options ...Option) (*Engine, error) {
	s := settings{globals: pongo2.Context{}}
	for _, opt := range options {
		if opt != nil {
			opt(&s)
		}
	}
	if s.files == nil {
		return nil, errors.New("gotemplate: a template fs.FS or directory is required")
	}

	set := pongo2.NewSet(setName, pongo2.NewFSLoader(s.files))
	set.Globals.Update(s.globals)
	defaultFilters.Do(registerDefaultFilters)
	return &Engine{set: set}, nil
}

// RenderTemplate executes a named template; the .tpl extension is optional.
// Parsed templates are cached by the template set.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if !strings.HasSuffix(name, extension) {
		name += extension
	}
	tmpl, err := e.set.FromCache(name)
	if err != nil {
		return "", errors.Wrapf(err, "gotemplate: load %s", name)
	}
	return execute(tmpl, data, name, out)
}

// RenderString parses and executes inline template content.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", errors.Wrap(err, "gotemplate: parse template string")
	}
	return execute(tmpl, data, "template string", out)
}

// RegisterFilter adds a filter. pongo2 filters are process-wide, so a name
// can be registered once.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("gotemplate: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return errors.Newf("gotemplate: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

func execute(tmpl *pongo2.Template, data any, label string, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", err
	}
	rendered, err := tmpl.Execute(ctx)
	if err != nil {
		return "", errors.Wrapf(err, "gotemplate: execute %s", label)
	}
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", errors.Wrap(err, "gotemplate: write output")
		}
	}
	return rendered, nil
}

// toContext accepts the map shapes the renderers pass. Structs are rejected
// so templates never depend on Go field names.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	case map[string]string:
		ctx := make(pongo2.Context, len(v))
		for key, value := range v {
			ctx[key] = value
		}
		return ctx, nil
	default:
		return nil, errors.Newf("gotemplate: unsupported template data %T", data)
	}
}

// registerDefaultFilters installs flatten, which collapses line breaks so a
// value fits on one comment line. pongo2 keeps filters in a global map that is
// not guarded, so this runs once per process.
func registerDefaultFilters() {
	if pongo2.FilterExists("flatten") {
		return
	}
	_ = pongo2.RegisterFilter("flatten", func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue(rules.FlattenLines(in.String())), nil
	})
}

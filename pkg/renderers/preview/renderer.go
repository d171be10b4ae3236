// Package preview re-renders a parsed tree as indented markup, the way a
// browser would show the document after a round trip through the parser.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"

	"github.com/goliatone/go-syqgen/pkg/markup"
	"github.com/goliatone/go-syqgen/pkg/render"
	"github.com/goliatone/go-syqgen/pkg/rules"
)

const (
	// Name is the registry key of the preview renderer.
	Name = "preview"

	doctypeLine = "<!DOCTYPE html>\n"
	indentUnit  = "  "
	contentType = "text/html; charset=utf-8"
)

type Option func(*Renderer)

// WithMinify collapses the preview with tdewolff/minify. Document and end
// tags are kept so the result still parses to the same tree.
func WithMinify() Option {
	return func(r *Renderer) {
		m := minify.New()
		m.Add(contentType, &html.Minifier{
			KeepDocumentTags: true,
			KeepEndTags:      true,
			KeepQuotes:       true,
		})
		r.minifier = m
	}
}

// WithSanitizer filters the preview through a bluemonday policy before it is
// returned. A nil policy selects SanitizerPolicy.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if policy == nil {
			policy = SanitizerPolicy()
		}
		r.policy = policy
	}
}

// Renderer produces the preview markup. It is safe for concurrent use.
type Renderer struct {
	minifier *minify.M
	policy   *bluemonday.Policy
}

var (
	_ render.Renderer        = (*Renderer)(nil)
	_ render.FailureRenderer = (*Renderer)(nil)
)

// New constructs the preview renderer applying any provided options.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return contentType
}

// Render writes the tree as indented markup behind a document-type line. A
// tree without a root element yields a *render.RenderError.
func (r *Renderer) Render(_ context.Context, tree *markup.Tree, _ render.RenderOptions) ([]byte, error) {
	if err := markup.CheckTree(tree); err != nil {
		return nil, &render.RenderError{Cause: err}
	}

	var b strings.Builder
	writeNode(&b, tree.Root, 0)
	body := b.String()

	if r.policy != nil {
		body = r.policy.Sanitize(body)
	}

	out := []byte(doctypeLine + body)
	if r.minifier != nil {
		minified, err := r.minifier.Bytes(contentType, out)
		if err != nil {
			return nil, fmt.Errorf("preview renderer: minify: %w", err)
		}
		out = bytes.TrimSpace(minified)
	}
	return out, nil
}

func writeNode(b *strings.Builder, n markup.Node, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	switch node := n.(type) {
	case *markup.Text:
		text := strings.TrimSpace(node.Content)
		if text == "" {
			return
		}
		b.WriteString(indent)
		b.WriteString(text)
		b.WriteByte('\n')
	case *markup.Comment:
		b.WriteString(indent)
		b.WriteString("<!-- ")
		b.WriteString(strings.TrimSpace(node.Content))
		b.WriteString(" -->\n")
	case *markup.Element:
		b.WriteString(indent)
		b.WriteByte('<')
		b.WriteString(node.Tag)
		for _, attr := range node.Attrs {
			b.WriteByte(' ')
			b.WriteString(attr.Name)
			b.WriteString(`="`)
			b.WriteString(rules.AttrValue(attr.Value))
			b.WriteByte('"')
		}
		b.WriteString(">\n")
		if rules.IsVoid(node.Tag) {
			return
		}
		for _, child := range node.Children {
			writeNode(b, child, depth+1)
		}
		b.WriteString(indent)
		b.WriteString("</")
		b.WriteString(node.Tag)
		b.WriteString(">\n")
	}
}

// SanitizerPolicy returns the policy used for untrusted previews: user
// generated content rules plus the document wrapper elements.
func SanitizerPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("html", "head", "body", "title", "main", "header", "footer", "nav")
	return policy
}

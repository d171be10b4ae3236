package parser

import (
	"bytes"
	"context"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"

	"github.com/goliatone/go-syqgen/pkg/markup"
)

// Parser implements markup.Parser using golang.org/x/net/html. The HTML5 tree
// builder never fails on malformed input, so the parser runs a tokenizer pass
// first and rejects documents whose tags do not nest.
type Parser struct {
	options markup.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ markup.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options markup.ParserOptions) markup.Parser {
	return &Parser{options: options}
}

// Parse builds a Tree from the document. Structural problems are returned as
// errors marked with markup.ErrStructural; a document without an element root
// yields a Tree with a nil Root so callers can apply markup.CheckTree.
func (p *Parser) Parse(ctx context.Context, doc markup.Document) (*markup.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()

	if !p.options.SkipStructureCheck {
		if err := checkStructure(raw); err != nil {
			return nil, err
		}
	}

	root, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "markup parser: parse document"), markup.ErrStructural)
	}

	tree := &markup.Tree{}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.DoctypeNode:
			tree.Doctype = c.Data
		case html.ElementNode:
			if tree.Root == nil {
				tree.Root = convertElement(c)
			}
		}
	}
	return tree, nil
}

func convertElement(n *html.Node) *markup.Element {
	el := &markup.Element{Tag: n.Data}
	if len(n.Attr) > 0 {
		el.Attrs = make([]markup.Attribute, 0, len(n.Attr))
		for _, attr := range n.Attr {
			name := attr.Key
			if attr.Namespace != "" {
				name = attr.Namespace + ":" + attr.Key
			}
			el.Attrs = append(el.Attrs, markup.Attribute{Name: name, Value: attr.Val})
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := convertNode(c); child != nil {
			el.Children = append(el.Children, child)
		}
	}
	return el
}

func convertNode(n *html.Node) markup.Node {
	switch n.Type {
	case html.ElementNode:
		return convertElement(n)
	case html.TextNode:
		return &markup.Text{Content: n.Data}
	case html.CommentNode:
		return &markup.Comment{Content: n.Data}
	default:
		return nil
	}
}

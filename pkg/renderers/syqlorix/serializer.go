package syqlorix

import (
	"strings"

	"github.com/goliatone/go-syqgen/pkg/markup"
	"github.com/goliatone/go-syqgen/pkg/render"
	"github.com/goliatone/go-syqgen/pkg/rules"
)

const (
	fragmentVariable = "my_component"
	fragmentWrapper  = "div"
)

// fragment is the serialized form of one node. The first line carries no
// indentation so the caller can place it; later lines are already indented
// for their absolute depth.
type fragment struct {
	text      string
	multiline bool
}

func newFragment(text string) fragment {
	return fragment{text: text, multiline: strings.Contains(text, "\n")}
}

// Serializer walks one tree and keeps the blocks hoisted along the way. A
// Serializer is single use; create one per conversion.
type Serializer struct {
	options render.RenderOptions
	unit    string
	blocks  blockSet
}

// NewSerializer returns a Serializer for the given options.
func NewSerializer(options render.RenderOptions) *Serializer {
	return &Serializer{
		options: options,
		unit:    strings.Repeat(" ", options.Indent()),
	}
}

// Document serializes the tree's root element as a single expression.
func (s *Serializer) Document(tree *markup.Tree) string {
	if tree == nil || tree.Root == nil {
		return ""
	}
	frag, _ := s.node(tree.Root, 0)
	return frag.text
}

// Fragment serializes the body's children (the root's children when there is
// no body) wrapped in a single div call.
func (s *Serializer) Fragment(tree *markup.Tree) string {
	if tree == nil || tree.Root == nil {
		return fragmentWrapper + "()"
	}
	container := tree.Find(render.WrapperBody)
	if container == nil {
		container = tree.Root
	}
	return s.call(fragmentWrapper, s.childArgs(container, 1), 0)
}

// Blocks returns the blocks hoisted so far in document order.
func (s *Serializer) Blocks() []CodeBlock {
	return append([]CodeBlock(nil), s.blocks.blocks...)
}

func (s *Serializer) node(n markup.Node, depth int) (fragment, bool) {
	switch node := n.(type) {
	case *markup.Text:
		text := strings.TrimSpace(node.Content)
		if text == "" {
			return fragment{}, false
		}
		return newFragment(rules.Quote(text)), true
	case *markup.Comment:
		return newFragment("Comment(" + rules.Quote(strings.TrimSpace(node.Content)) + ")"), true
	case *markup.Element:
		return s.element(node, depth), true
	default:
		return fragment{}, false
	}
}

func (s *Serializer) element(el *markup.Element, depth int) fragment {
	switch el.Tag {
	case rules.TagStyle:
		return s.embedded(el, KindStyle)
	case rules.TagScript:
		if src, ok := el.Attr(rules.AttrSource); ok && src != "" {
			return newFragment("script(src=" + rules.Quote(src) + ")")
		}
		return s.embedded(el, KindScript)
	}

	args := s.childArgs(el, depth+1)
	args = append(args, s.attrArgs(el)...)
	return newFragment(s.call(rules.Name(el.Tag), args, depth))
}

// embedded emits style or script content either inline as a triple-quoted
// literal or as a reference to a hoisted constant.
func (s *Serializer) embedded(el *markup.Element, kind BlockKind) fragment {
	name := rules.Name(el.Tag)
	content := strings.TrimSpace(markup.InnerMarkup(el))
	if content == "" {
		return newFragment(name + "()")
	}
	if s.options.EmbedMode() == render.EmbedHoist {
		block := s.blocks.add(kind, content)
		return newFragment(name + "(" + block.Name + ")")
	}
	return newFragment(name + "(" + rules.Block(content) + ")")
}

// childArgs serializes el's children for an argument list at depth. Children
// of elided wrappers are spliced in place of the wrapper call.
func (s *Serializer) childArgs(el *markup.Element, depth int) []fragment {
	var out []fragment
	for _, child := range el.Children {
		if childEl, ok := child.(*markup.Element); ok && s.elided(childEl) {
			out = append(out, s.childArgs(childEl, depth)...)
			continue
		}
		if frag, ok := s.node(child, depth); ok {
			out = append(out, frag)
		}
	}
	return out
}

func (s *Serializer) elided(el *markup.Element) bool {
	switch el.Tag {
	case render.WrapperHead, render.WrapperBody, render.WrapperTitle:
		return len(el.Attrs) == 0 && s.options.Elides(el.Tag)
	default:
		return false
	}
}

func (s *Serializer) attrArgs(el *markup.Element) []fragment {
	out := make([]fragment, 0, len(el.Attrs))
	for _, attr := range el.Attrs {
		name := rules.Name(attr.Name)
		if attr.Value == "" && rules.IsBooleanAttribute(attr.Name) {
			out = append(out, newFragment(name+"=True"))
			continue
		}
		out = append(out, newFragment(name+"="+rules.Quote(attr.Value)))
	}
	return out
}

// call lays out a call expression. A lone single-line argument stays on the
// call's line; anything else gets one argument per line at depth+1 with the
// closing parenthesis back at depth.
func (s *Serializer) call(name string, args []fragment, depth int) string {
	switch {
	case len(args) == 0:
		return name + "()"
	case len(args) == 1 && !args[0].multiline:
		return name + "(" + args[0].text + ")"
	}

	inner := strings.Repeat(s.unit, depth+1)
	var b strings.Builder
	b.WriteString(name)
	b.WriteString("(\n")
	for i, arg := range args {
		b.WriteString(inner)
		b.WriteString(arg.text)
		if i < len(args)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(s.unit, depth))
	b.WriteByte(')')
	return b.String()
}

package parser

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"

	"github.com/goliatone/go-syqgen/pkg/markup"
	"github.com/goliatone/go-syqgen/pkg/rules"
)

// checkStructure walks the token stream with an open-element stack. An end
// tag must match an open element, and may only close over elements whose end
// tag is optional. Raw-text elements (script, style, textarea, title) are
// tokenized as a single text token so their content is never inspected.
// Outside svg and math a trailing slash is ignored, as the tree builder does,
// so <div/> opens a div that still needs its end tag.
func checkStructure(raw []byte) error {
	z := html.NewTokenizer(bytes.NewReader(raw))
	var open []string

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return errors.Mark(errors.Wrap(err, "markup parser: tokenize"), markup.ErrStructural)
			}
			for i := len(open) - 1; i >= 0; i-- {
				if !rules.HasOptionalEnd(open[i]) {
					return markup.StructuralErrorf("unclosed <%s>", open[i])
				}
			}
			return nil
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if rules.IsVoid(tag) {
				continue
			}
			open = append(open, tag)
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if rules.IsVoid(tag) || tag == "svg" || tag == "math" || inForeign(open) {
				continue
			}
			open = append(open, tag)
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if rules.IsVoid(tag) {
				continue
			}
			idx := lastIndex(open, tag)
			if idx < 0 {
				return markup.StructuralErrorf("unexpected closing tag </%s>", tag)
			}
			for i := len(open) - 1; i > idx; i-- {
				if !rules.HasOptionalEnd(open[i]) {
					return markup.StructuralErrorf("unclosed <%s> before </%s>", open[i], tag)
				}
			}
			open = open[:idx]
		}
	}
}

func inForeign(stack []string) bool {
	for _, tag := range stack {
		if tag == "svg" || tag == "math" {
			return true
		}
	}
	return false
}

func lastIndex(stack []string, tag string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == tag {
			return i
		}
	}
	return -1
}

package parser_test

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-syqgen/internal/markup/parser"
	"github.com/goliatone/go-syqgen/pkg/markup"
)

func parse(t *testing.T, input string, opts ...markup.ParserOption) (*markup.Tree, error) {
	t.Helper()
	p := parser.New(markup.NewParserOptions(opts...))
	return p.Parse(context.Background(), markup.DocumentFromString(input))
}

func TestParse_BuildsTreeInDocumentOrder(t *testing.T) {
	tree, err := parse(t, `<!DOCTYPE html><html lang="en"><head><title>T</title></head><body><h1 class="a" data-x="1">Hi</h1><!-- note --></body></html>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := &markup.Tree{
		Doctype: "html",
		Root: &markup.Element{
			Tag:   "html",
			Attrs: []markup.Attribute{{Name: "lang", Value: "en"}},
			Children: []markup.Node{
				&markup.Element{Tag: "head", Children: []markup.Node{
					&markup.Element{Tag: "title", Children: []markup.Node{&markup.Text{Content: "T"}}},
				}},
				&markup.Element{Tag: "body", Children: []markup.Node{
					&markup.Element{
						Tag:      "h1",
						Attrs:    []markup.Attribute{{Name: "class", Value: "a"}, {Name: "data-x", Value: "1"}},
						Children: []markup.Node{&markup.Text{Content: "Hi"}},
					},
					&markup.Comment{Content: " note "},
				}},
			},
		},
	}
	if diff := cmp.Diff(want, tree); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_StyleAndScriptKeepRawText(t *testing.T) {
	tree, err := parse(t, "<!DOCTYPE html><html><head><style>a > b { color: red; }</style></head><body><script>if (a < b) {}</script></body></html>")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := markup.InnerMarkup(tree.Find("style")); got != "a > b { color: red; }" {
		t.Fatalf("style inner = %q", got)
	}
	if got := markup.InnerMarkup(tree.Find("script")); got != "if (a < b) {}" {
		t.Fatalf("script inner = %q", got)
	}
}

func TestParse_StructuralErrors(t *testing.T) {
	cases := map[string]string{
		"mismatched":  "<!DOCTYPE html><html><body><div><span></div></body></html>",
		"stray close": "<!DOCTYPE html><html><body></section></body></html>",
		"unclosed":    "<!DOCTYPE html><html><body><div>",
		"self-closed": "<!DOCTYPE html><html><body><div/><p>x</p></body></html>",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			tree, err := parse(t, input)
			if err == nil {
				t.Fatalf("expected structural error, got tree %+v", tree)
			}
			if !errors.Is(err, markup.ErrStructural) {
				t.Fatalf("expected ErrStructural, got %v", err)
			}
			if !strings.HasPrefix(err.Error(), "structural parse error") {
				t.Fatalf("unexpected message %q", err.Error())
			}
		})
	}
}

func TestParse_AcceptsOptionalEndTagsAndVoids(t *testing.T) {
	input := `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><link rel="stylesheet" href="a.css"></head>
<body>
<ul><li>one<li>two</ul>
<p>para<br>break
<img src="x.png"/>
<svg><path d="M0 0"/><g/></svg>
<svg/>
<math><mi/></math>
</body>
</html>`
	if _, err := parse(t, input); err != nil {
		t.Fatalf("parse: %v", err)
	}
}

func TestParse_LenientStructureSkipsValidation(t *testing.T) {
	tree, err := parse(t, "<!DOCTYPE html><div><span></div>", markup.WithLenientStructure())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tree.Root == nil || tree.Root.Tag != "html" {
		t.Fatalf("expected synthesized html root, got %+v", tree.Root)
	}
}

func TestParse_RespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := parser.New(markup.ParserOptions{})
	if _, err := p.Parse(ctx, markup.DocumentFromString("<!DOCTYPE html><html></html>")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

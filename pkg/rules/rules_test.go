package rules_test

import (
	"testing"

	"github.com/goliatone/go-syqgen/pkg/rules"
)

func TestName_RemapsReservedAndSanitizes(t *testing.T) {
	cases := map[string]string{
		"html":        "Syqlorix",
		"input":       "input_",
		"class":       "class_",
		"CLASS":       "class_",
		"for":         "for_",
		"async":       "async_",
		"div":         "div",
		"data-id":     "data_id",
		"aria-label":  "aria_label",
		"xlink:href":  "xlink_href",
		"viewBox":     "viewBox",
		"my-widget":   "my_widget",
		"3d":          "_3d",
		"":            "_",
		"  padded  ":  "padded",
		"@click.stop": "_click_stop",
	}
	for in, want := range cases {
		if got := rules.Name(in); got != want {
			t.Errorf("Name(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSets(t *testing.T) {
	for _, name := range []string{"disabled", "checked", "selected", "required", "readonly", "multiple", "autoplay", "controls", "loop", "muted", "playsinline", "defer", "async"} {
		if !rules.IsBooleanAttribute(name) {
			t.Errorf("expected %q to be a boolean attribute", name)
		}
	}
	if rules.IsBooleanAttribute("href") {
		t.Error("href must not be a boolean attribute")
	}
	for _, tag := range []string{"area", "base", "br", "col", "embed", "hr", "img", "input", "link", "meta", "param", "source", "track", "wbr"} {
		if !rules.IsVoid(tag) {
			t.Errorf("expected %q to be void", tag)
		}
	}
	if rules.IsVoid("div") {
		t.Error("div must not be void")
	}
	if !rules.HasOptionalEnd("li") || rules.HasOptionalEnd("span") {
		t.Error("unexpected optional end tag classification")
	}
}

func TestQuote(t *testing.T) {
	cases := map[string]string{
		`say "hi"`:   `"say \"hi\""`,
		`back\slash`: `"back\\slash"`,
		"two\nlines": `"two\nlines"`,
		"tab\there":  `"tab\there"`,
		"":           `""`,
	}
	for in, want := range cases {
		if got := rules.Quote(in); got != want {
			t.Errorf("Quote(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestBlock(t *testing.T) {
	got := rules.Block("a { content: \"\\201C\"; }\n/* \"\"\" */")
	want := "\"\"\"\na { content: \"\\\\201C\"; }\n/* \\\"\\\"\\\" */\n\"\"\""
	if got != want {
		t.Fatalf("Block mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestFlattenLinesAndAttrValue(t *testing.T) {
	if got := rules.FlattenLines(" line one\nline two\r\nthree "); got != "line one line two three" {
		t.Fatalf("FlattenLines = %q", got)
	}
	if got := rules.AttrValue(`say "hi"`); got != "say &quot;hi&quot;" {
		t.Fatalf("AttrValue = %q", got)
	}
}

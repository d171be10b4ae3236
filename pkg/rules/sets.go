package rules

import "strings"

var booleanAttributes = toSet(
	"disabled", "checked", "selected", "required", "readonly", "multiple",
	"autoplay", "controls", "loop", "muted", "playsinline", "defer", "async",
	"autofocus", "novalidate", "formnovalidate", "hidden", "open", "reversed",
	"ismap", "nomodule", "default", "inert", "allowfullscreen", "itemscope",
)

var voidElements = toSet(
	"area", "base", "br", "col", "embed", "hr", "img", "input", "link", "meta",
	"param", "source", "track", "wbr",
)

// optionalEndTags lists elements whose end tag may be omitted in markup, so an
// enclosing end tag may close them implicitly.
var optionalEndTags = toSet(
	"html", "head", "body", "p", "li", "dt", "dd", "option", "optgroup", "tr",
	"td", "th", "thead", "tbody", "tfoot", "colgroup", "caption", "rt", "rp",
)

// Tags whose content is extracted verbatim rather than traversed.
const (
	TagStyle  = "style"
	TagScript = "script"

	// AttrSource is forwarded as the only argument of an external script.
	AttrSource = "src"
)

// IsBooleanAttribute reports whether name is a presence-only flag attribute.
func IsBooleanAttribute(name string) bool {
	_, ok := booleanAttributes[strings.ToLower(name)]
	return ok
}

// IsVoid reports whether tag never has children or a closing tag.
func IsVoid(tag string) bool {
	_, ok := voidElements[strings.ToLower(tag)]
	return ok
}

// HasOptionalEnd reports whether tag may be closed implicitly.
func HasOptionalEnd(tag string) bool {
	_, ok := optionalEndTags[strings.ToLower(tag)]
	return ok
}

func toSet(values ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}

package rules

import (
	"strings"
	"unicode"
)

// DocumentConstructor is the builder call that replaces the root html element.
const DocumentConstructor = "Syqlorix"

// reserved maps markup names that collide with the target syntax (Python
// keywords, builtins shadowed by the library, or the document root) to their
// safe aliases. It is consulted for tag names and attribute names alike.
var reserved = map[string]string{
	"html":  DocumentConstructor,
	"input": "input_",
	"class": "class_",
	"for":   "for_",
	"async": "async_",
	"del":   "del_",
	"is":    "is_",
	"as":    "as_",
}

// Name returns the identifier used in generated source for a tag or attribute
// name. Reserved names are looked up first; anything else has every character
// that cannot appear in an identifier rewritten to an underscore.
func Name(raw string) string {
	name := strings.TrimSpace(raw)
	if alias, ok := reserved[strings.ToLower(name)]; ok {
		return alias
	}
	return sanitizeIdentifier(name)
}

func sanitizeIdentifier(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	b.Grow(len(name) + 1)
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

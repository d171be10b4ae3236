package markup

import (
	"bytes"
	"unicode"
)

var (
	doctypePrefix = []byte("<!doctype")
	byteOrderMark = []byte("\xef\xbb\xbf")
)

// CheckDocument verifies the input is a complete document: its trimmed,
// case-insensitive form must begin with a document-type declaration.
func CheckDocument(doc Document) error {
	trimmed := bytes.TrimLeftFunc(bytes.TrimPrefix(doc.raw, byteOrderMark), unicode.IsSpace)
	if len(trimmed) < len(doctypePrefix) {
		return ErrMissingDoctype
	}
	if !bytes.EqualFold(trimmed[:len(doctypePrefix)], doctypePrefix) {
		return ErrMissingDoctype
	}
	return nil
}

// CheckTree verifies the parsed tree has a document element. The bundled
// parser always synthesizes an html element, so only a custom Parser can
// trip this check.
func CheckTree(tree *Tree) error {
	if tree == nil || tree.Root == nil {
		return ErrNoRootElement
	}
	return nil
}

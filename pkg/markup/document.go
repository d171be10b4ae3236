package markup

import (
	"github.com/cockroachdb/errors"
)

// Source identifies where a markup document originated so loaders can operate
// on files, fs.FS entries, URLs, or inline text without leaking details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindFS     SourceKind = "fs"
	SourceKindURL    SourceKind = "url"
	SourceKindInline SourceKind = "inline"
)

// Document wraps the raw markup text and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document. Empty input is allowed; the doctype
// precondition reports it.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("markup: source is required")
	}
	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// DocumentFromString wraps inline text.
func DocumentFromString(text string) Document {
	return MustNewDocument(SourceFromString(), []byte(text))
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the markup bytes.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Text returns the markup as a string.
func (d Document) Text() string {
	return string(d.raw)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

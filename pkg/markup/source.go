package markup

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// source is the only Source implementation; its kind selects the loader
// strategy.
type source struct {
	kind     SourceKind
	location string
}

func (s source) Kind() SourceKind { return s.kind }
func (s source) Location() string { return s.location }

// inlineLocation labels text handed over directly (an editor buffer, stdin,
// a websocket message).
const inlineLocation = "<inline>"

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(p string) Source {
	return source{kind: SourceKindFile, location: filepath.Clean(p)}
}

// SourceFromFS returns a Source naming an entry inside the loader's fs.FS.
func SourceFromFS(name string) Source {
	return source{kind: SourceKindFS, location: path.Clean(name)}
}

// SourceFromURL returns a Source fetched over HTTP. The URL is validated when
// the loader builds the request; use ParseSource to validate up front.
func SourceFromURL(raw string) Source {
	return source{kind: SourceKindURL, location: strings.TrimSpace(raw)}
}

// SourceFromString identifies markup supplied directly by the caller.
func SourceFromString() Source {
	return source{kind: SourceKindInline, location: inlineLocation}
}

// ParseSource classifies a command-line argument. "" and "-" mean inline
// input (the caller reads stdin), http and https URLs are fetched, anything
// else is a file path.
func ParseSource(arg string) (Source, error) {
	arg = strings.TrimSpace(arg)
	switch {
	case arg == "" || arg == "-":
		return SourceFromString(), nil
	case strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://"):
		u, err := url.ParseRequestURI(arg)
		if err != nil || u.Host == "" {
			return nil, errors.WithHint(
				errors.Newf("markup: invalid URL %q", arg),
				"pass a file path, an http(s) URL, or - for stdin",
			)
		}
		return SourceFromURL(u.String()), nil
	default:
		return SourceFromFile(arg), nil
	}
}

package loader

import (
	"context"
	"io"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/goliatone/go-syqgen/pkg/markup"
)

// ErrTooLarge is returned when a document exceeds the configured size limit.
var ErrTooLarge = errors.New("markup loader: document exceeds size limit")

// strategy reads the raw bytes behind one kind of source.
type strategy func(ctx context.Context, location string) (io.ReadCloser, error)

// Loader implements markup.Loader. Each source kind maps to a strategy; kinds
// without one (inline text, HTTP when disabled) are rejected.
type Loader struct {
	strategies map[markup.SourceKind]strategy
	limit      int64
}

var _ markup.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options markup.LoaderOptions) markup.Loader {
	l := &Loader{
		strategies: map[markup.SourceKind]strategy{
			markup.SourceKindFile: openFile,
		},
		limit: options.Limit(),
	}
	if options.FileSystem != nil {
		l.strategies[markup.SourceKindFS] = openFS(options.FileSystem)
	}
	if client := httpClient(options); client != nil {
		l.strategies[markup.SourceKindURL] = fetch(client)
	}
	return l
}

// Load reads the document behind src.
func (l *Loader) Load(ctx context.Context, src markup.Source) (markup.Document, error) {
	if src == nil {
		return markup.Document{}, errors.New("markup loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return markup.Document{}, err
	}
	if src.Location() == "" {
		return markup.Document{}, errors.Newf("markup loader: %s source has no location", src.Kind())
	}

	open, ok := l.strategies[src.Kind()]
	if !ok {
		return markup.Document{}, unsupported(src.Kind())
	}
	body, err := open(ctx, src.Location())
	if err != nil {
		return markup.Document{}, err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, l.limit+1))
	if err != nil {
		return markup.Document{}, errors.Wrapf(err, "markup loader: read %s", src.Location())
	}
	if int64(len(data)) > l.limit {
		return markup.Document{}, errors.Wrapf(ErrTooLarge, "%s is larger than %d bytes", src.Location(), l.limit)
	}
	return markup.NewDocument(src, data)
}

func unsupported(kind markup.SourceKind) error {
	switch kind {
	case markup.SourceKindURL:
		return errors.WithHint(errors.New("markup loader: http support disabled"), "enable it with markup.WithHTTPFallback")
	case markup.SourceKindFS:
		return errors.New("markup loader: filesystem is not configured")
	case markup.SourceKindInline:
		return errors.New("markup loader: inline sources carry their own text; pass it as input")
	default:
		return errors.Newf("markup loader: unsupported source kind %q", kind)
	}
}

// httpClient returns the client for URL sources, or nil when HTTP loading is
// disabled. A supplied client is copied so the timeout can be applied.
func httpClient(options markup.LoaderOptions) *http.Client {
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		return &clone
	case options.AllowHTTPFallback:
		return &http.Client{Timeout: options.RequestTimeout}
	default:
		return nil
	}
}

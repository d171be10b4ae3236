package markup

import "context"

// Parser turns a markup document into a Tree, reporting malformed structure
// as an error marked with ErrStructural. Parsers never repair a document the
// structural check rejected.
type Parser interface {
	Parse(ctx context.Context, doc Document) (*Tree, error)
}

// ParserOptions configures parser behaviour.
type ParserOptions struct {
	// SkipStructureCheck disables the open/close tag validation and relies on
	// the HTML5 error-recovering tree builder alone.
	SkipStructureCheck bool
}

// ParserOption mutates ParserOptions prior to construction.
type ParserOption func(*ParserOptions)

// WithLenientStructure disables structural validation.
func WithLenientStructure() ParserOption {
	return func(opts *ParserOptions) {
		opts.SkipStructureCheck = true
	}
}

// NewParserOptions applies a set of ParserOption values.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

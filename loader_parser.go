package syqgen

import (
	internalLoader "github.com/goliatone/go-syqgen/internal/markup/loader"
	internalParser "github.com/goliatone/go-syqgen/internal/markup/parser"
	"github.com/goliatone/go-syqgen/pkg/markup"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...markup.LoaderOption) markup.Loader {
	cfg := markup.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...markup.ParserOption) markup.Parser {
	cfg := markup.NewParserOptions(options...)
	return internalParser.New(cfg)
}

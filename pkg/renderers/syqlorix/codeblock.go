package syqlorix

import (
	"strconv"

	"github.com/goliatone/go-syqgen/pkg/rules"
)

// BlockKind identifies the element a hoisted block was taken from.
type BlockKind string

const (
	KindStyle  BlockKind = "style"
	KindScript BlockKind = "script"
)

// CodeBlock is embedded style or script content moved to a top-level constant.
type CodeBlock struct {
	Name    string
	Content string
	Kind    BlockKind
}

// Literal returns the block content as a triple-quoted string literal.
func (b CodeBlock) Literal() string {
	return rules.Block(b.Content)
}

// blockSet accumulates hoisted blocks for a single conversion, numbering each
// kind independently from 1.
type blockSet struct {
	blocks []CodeBlock
	css    int
	js     int
}

func (s *blockSet) add(kind BlockKind, content string) CodeBlock {
	var name string
	switch kind {
	case KindScript:
		s.js++
		name = "internal_js_" + strconv.Itoa(s.js)
	default:
		s.css++
		name = "internal_css_" + strconv.Itoa(s.css)
	}
	block := CodeBlock{Name: name, Content: content, Kind: kind}
	s.blocks = append(s.blocks, block)
	return block
}

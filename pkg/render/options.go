package render

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-syqgen/pkg/rules"
)

// EmbedMode selects how embedded style and script content is emitted.
type EmbedMode string

const (
	// EmbedInline passes the content as a string argument of the call.
	EmbedInline EmbedMode = "inline"
	// EmbedHoist moves the content into named top-level constants and passes
	// the constant name instead.
	EmbedHoist EmbedMode = "hoist"
)

// Wrapper tags that may be elided from the generated source.
const (
	WrapperHead  = "head"
	WrapperBody  = "body"
	WrapperTitle = "title"
)

const (
	DefaultIndentWidth = 4
	DefaultVariable    = "doc"
)

// RenderOptions carry per-request mode flags. The zero value selects inline
// embedding, explicit wrappers, four-space indentation, and the "doc" binding.
type RenderOptions struct {
	// Mode chooses inline or hoisted style/script content.
	Mode EmbedMode `validate:"omitempty,oneof=inline hoist"`
	// Elide lists wrapper tags (head, body, title) whose children are spliced
	// into the parent call instead of being wrapped in an explicit call.
	Elide []string `validate:"omitempty,dive,oneof=head body title"`
	// IndentWidth is the number of spaces per nesting level.
	IndentWidth int `validate:"gte=0,lte=8"`
	// Variable names the top-level binding of the generated expression.
	Variable string `validate:"omitempty,max=64"`
	// Fragment converts the body's children as a reusable component instead
	// of a full document.
	Fragment bool
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func optionsValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate reports invalid option values.
func (o RenderOptions) Validate() error {
	if err := optionsValidator().Struct(o); err != nil {
		return errors.Wrap(err, "render: invalid options")
	}
	if o.Variable != "" && rules.Name(o.Variable) != o.Variable {
		return errors.Newf("render: invalid options: variable %q is not a usable identifier", o.Variable)
	}
	return nil
}

// EmbedMode returns the configured mode, defaulting to EmbedInline.
func (o RenderOptions) EmbedMode() EmbedMode {
	if o.Mode == "" {
		return EmbedInline
	}
	return o.Mode
}

// Indent returns the configured indent width, defaulting to four spaces.
func (o RenderOptions) Indent() int {
	if o.IndentWidth <= 0 {
		return DefaultIndentWidth
	}
	return o.IndentWidth
}

// VariableName returns the top-level binding name.
func (o RenderOptions) VariableName() string {
	if o.Variable == "" {
		return DefaultVariable
	}
	return o.Variable
}

// Elides reports whether the wrapper tag should be spliced into its parent.
func (o RenderOptions) Elides(tag string) bool {
	for _, candidate := range o.Elide {
		if candidate == tag {
			return true
		}
	}
	return false
}

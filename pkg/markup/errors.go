package markup

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Precondition failures. They are detected before any traversal starts and
// abort the whole conversion.
var (
	ErrMissingDoctype = errors.WithHint(
		errors.New("missing document-type declaration"),
		"start the input with <!DOCTYPE html>",
	)
	ErrNoRootElement = errors.WithHint(
		errors.New("no root element"),
		"the document needs an <html> element",
	)
	ErrStructural = errors.WithHint(
		errors.New("structural parse error"),
		"check for unclosed or mismatched tags",
	)
)

// StructuralErrorf builds a structural parse error carrying a detail suffix.
// The result matches ErrStructural under errors.Is.
func StructuralErrorf(format string, args ...any) error {
	err := errors.Newf("%s: %s", ErrStructural.Error(), fmt.Sprintf(format, args...))
	return errors.Mark(errors.WithHint(err, "check for unclosed or mismatched tags"), ErrStructural)
}

// IsPrecondition reports whether err is one of the precondition failures.
func IsPrecondition(err error) bool {
	return errors.IsAny(err, ErrMissingDoctype, ErrNoRootElement, ErrStructural)
}

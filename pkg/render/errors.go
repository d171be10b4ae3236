package render

import "github.com/cockroachdb/errors"

// ConversionError reports that builder-source serialization could not start
// because the input failed a precondition. Error returns the cause's message
// verbatim so it can be surfaced to users unchanged.
type ConversionError struct {
	Cause error
}

func (e *ConversionError) Error() string {
	if e == nil || e.Cause == nil {
		return "conversion failed"
	}
	return e.Cause.Error()
}

func (e *ConversionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// RenderError reports that the preview could not be rendered because the
// input failed a precondition.
type RenderError struct {
	Cause error
}

func (e *RenderError) Error() string {
	if e == nil || e.Cause == nil {
		return "render failed"
	}
	return e.Cause.Error()
}

func (e *RenderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Message returns the user-facing message for err, stripping wrapper types.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var conv *ConversionError
	if errors.As(err, &conv) {
		return conv.Error()
	}
	var rend *RenderError
	if errors.As(err, &rend) {
		return rend.Error()
	}
	return err.Error()
}

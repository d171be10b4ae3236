package preview

import (
	"bytes"
	"fmt"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/goliatone/go-syqgen/pkg/render"
)

const noticeStyle = "font-family: sans-serif; color: %s; display: grid; place-content: center; height: 100%%; margin: 0;"

const (
	failureColor     = "#c00"
	placeholderColor = "#555"
	placeholderText  = "Live preview will appear here."
)

// RenderFailure returns a minimal body that shows the failure message in
// place of the preview.
func (r *Renderer) RenderFailure(cause error, _ render.RenderOptions) []byte {
	return notice(failureColor, render.Message(cause))
}

// Placeholder returns the body shown before any input has been converted.
func Placeholder() []byte {
	return notice(placeholderColor, placeholderText)
}

func notice(color, message string) []byte {
	var buf bytes.Buffer
	node := h.Body(
		g.Attr("style", fmt.Sprintf(noticeStyle, color)),
		h.P(g.Text(message)),
	)
	_ = node.Render(&buf)
	return buf.Bytes()
}

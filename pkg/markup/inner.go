package markup

import "strings"

// InnerMarkup returns the raw markup between an element's start and end tags.
// Text children are written verbatim (style and script bodies arrive as a
// single raw text child); nested elements and comments are re-serialized.
func InnerMarkup(el *Element) string {
	if el == nil {
		return ""
	}
	var b strings.Builder
	for _, child := range el.Children {
		writeNode(&b, child)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch node := n.(type) {
	case *Text:
		b.WriteString(node.Content)
	case *Comment:
		b.WriteString("<!--")
		b.WriteString(node.Content)
		b.WriteString("-->")
	case *Element:
		b.WriteByte('<')
		b.WriteString(node.Tag)
		for _, attr := range node.Attrs {
			b.WriteByte(' ')
			b.WriteString(attr.Name)
			b.WriteString(`="`)
			b.WriteString(strings.ReplaceAll(attr.Value, `"`, "&quot;"))
			b.WriteByte('"')
		}
		b.WriteByte('>')
		for _, child := range node.Children {
			writeNode(b, child)
		}
		b.WriteString("</")
		b.WriteString(node.Tag)
		b.WriteByte('>')
	}
}

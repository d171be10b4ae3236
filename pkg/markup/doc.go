// Package markup exposes the document model consumed by the serializer and
// the preview renderer together with the loader and parser contracts that
// produce it. Implementations live under internal/markup so the HTML parser
// dependency stays hidden from consumers.
package markup

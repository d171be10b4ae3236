// Package syqlorix renders a parsed markup tree as Python source that rebuilds
// the document with the Syqlorix builder library: one nested call per element,
// text as string literals, attributes as keyword arguments.
package syqlorix

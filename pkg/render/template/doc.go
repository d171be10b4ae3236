// Package template defines the template seam renderers use to wrap their
// output (import headers, bindings, failure notices) without hard-coding the
// engine.
package template

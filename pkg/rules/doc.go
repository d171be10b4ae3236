// Package rules holds the lookup tables shared by the builder-source serializer
// and the preview renderer: reserved-name remapping, boolean attributes, void
// elements, and the string escaping used when emitting Python literals. Both
// tag and attribute names go through the same table so a colliding name is
// rewritten identically wherever it appears.
package rules

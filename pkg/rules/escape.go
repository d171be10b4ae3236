package rules

import "strings"

var (
	stringEscaper = strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	blockEscaper = strings.NewReplacer(
		`\`, `\\`,
		`"""`, `\"\"\"`,
	)
	attrEscaper   = strings.NewReplacer(`"`, "&quot;")
	lineFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
)

// Quote returns s as a double-quoted single-line literal.
func Quote(s string) string {
	return `"` + stringEscaper.Replace(s) + `"`
}

// Block returns s as a triple-quoted literal whose body starts and ends on its
// own line. Content lines are emitted without indentation so the literal's
// value is exactly s surrounded by line breaks.
func Block(s string) string {
	return `"""` + "\n" + blockEscaper.Replace(s) + "\n" + `"""`
}

// FlattenLines collapses line breaks so s fits on one comment line.
func FlattenLines(s string) string {
	return lineFlattener.Replace(strings.TrimSpace(s))
}

// AttrValue escapes double quotes for a double-quoted markup attribute.
func AttrValue(s string) string {
	return attrEscaper.Replace(s)
}

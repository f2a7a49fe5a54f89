package render

import "strings"

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)

	// Attribute values additionally protect whitespace that some parsers
	// normalise away.
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
)

// escapeHTML escapes text for inclusion in element content.
func escapeHTML(s string) string {
	return textEscaper.Replace(s)
}

// escapeAttr escapes text for inclusion in a double-quoted attribute value.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// EscapeHTML is the exported form of the text escaper, for handlers that
// write small fragments by hand.
func EscapeHTML(s string) string {
	return escapeHTML(s)
}

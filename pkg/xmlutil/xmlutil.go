// Package xmlutil provides XML escaping utilities for prompt injection prevention.
package xmlutil

import (
	"encoding/xml"
	"strings"
)

// whitespace undoes xml.EscapeText's escaping of line breaks and tabs, which
// are harmless inside a prompt and make user text unreadable when escaped.
var whitespace = strings.NewReplacer("&#xA;", "\n", "&#x9;", "\t", "&#xD;", "")

// Escape replaces characters with special meaning in XML to prevent
// prompt injection when embedding user content in XML-delimited templates.
func Escape(s string) string {
	var buf strings.Builder
	// EscapeText fails only when the writer does, and a Builder never does.
	// Invalid UTF-8 comes back as U+FFFD.
	_ = xml.EscapeText(&buf, []byte(s))
	return whitespace.Replace(buf.String())
}

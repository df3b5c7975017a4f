package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// EscapeXML escapes s for use in SVG and HTML text and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Occurrences returns the hover title for a word, e.g. "1 occurrence" or
// "3 occurrences".
func Occurrences(count int) string {
	if count == 1 {
		return "1 occurrence"
	}
	return fmt.Sprintf("%d occurrences", count)
}

// FontStack returns a CSS font-family list with family first.
func FontStack(family string) string {
	if family == "" {
		return "sans-serif"
	}
	return fmt.Sprintf("'%s', sans-serif", family)
}

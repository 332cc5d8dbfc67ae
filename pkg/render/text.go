package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
)

// Ellipsis replaces the tail of shortened names.
const Ellipsis = "…"

// Ellipsize shortens name to at most max runes, replacing the last kept rune
// with an ellipsis. Names that fit, and max <= 0, are returned unchanged.
func Ellipsize(name string, max int) string {
	if max <= 0 {
		return name
	}
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max-1]) + Ellipsis
}

// EscapeXML escapes s for use in XML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// wrapLink encloses the output of fn in an <a> element when url is set.
func wrapLink(buf *bytes.Buffer, url string, fn func() error) error {
	if url != "" {
		fmt.Fprintf(buf, "<a href=\"%s\" target=\"_blank\">\n", EscapeXML(url))
	}
	if err := fn(); err != nil {
		return err
	}
	if url != "" {
		buf.WriteString("</a>\n")
	}
	return nil
}

// num formats a coordinate without trailing zeros.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

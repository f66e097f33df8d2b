package sink

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// EscapeXML escapes s for use in XML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// cssFamily returns a quoted font-family list that always ends in a
// generic family.
func cssFamily(family string) string {
	if family == "" {
		return "sans-serif"
	}
	parts := strings.Split(family, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if strings.ContainsAny(p, " ") && !strings.HasPrefix(p, "'") {
			p = "'" + p + "'"
		}
		parts[i] = p
	}
	last := strings.ToLower(strings.Trim(parts[len(parts)-1], "' "))
	if last != "sans-serif" && last != "serif" && last != "monospace" {
		parts = append(parts, "sans-serif")
	}
	return strings.Join(parts, ", ")
}

// lineCenters returns the vertical center of each line in a block of n
// lines centered on y.
func lineCenters(y, lineHeight float64, n int) []float64 {
	out := make([]float64, n)
	top := y - float64(n-1)*lineHeight/2
	for i := range n {
		out[i] = top + float64(i)*lineHeight
	}
	return out
}

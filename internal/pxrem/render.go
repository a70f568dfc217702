package pxrem

import (
	"bufio"
	"io"
	"strings"
)

// KebabCase converts a camelCase property name to its CSS form (borderTopWidth → border-top-width).
// Names already containing a hyphen are returned unchanged.
func KebabCase(property string) string {
	if strings.Contains(property, "-") {
		return property
	}

	var b strings.Builder
	b.Grow(len(property) + 4)
	for _, r := range property {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RenderCSS writes utilities as a stylesheet in insertion order.
// Conditional rules are wrapped in their own media block.
func RenderCSS(w io.Writer, utilities *UtilityMap) error {
	bw := bufio.NewWriter(w)

	first := true
	utilities.Each(func(selector string, rule Rule) {
		if !first {
			bw.WriteString("\n")
		}
		first = false

		indent := ""
		if rule.Media != "" {
			bw.WriteString(rule.Media + " {\n")
			indent = "  "
		}

		bw.WriteString(indent + selector + " {\n")
		for _, decl := range rule.Declarations {
			bw.WriteString(indent + "  " + KebabCase(decl.Property) + ": " + decl.Value + ";\n")
		}
		bw.WriteString(indent + "}\n")

		if rule.Media != "" {
			bw.WriteString("}\n")
		}
	})

	return bw.Flush()
}

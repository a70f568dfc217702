package pxrem

import (
	"fmt"
	"strings"
)

// EscapeClassName escapes a class name so it can be used after "." in a selector.
//
// Follows the CSSOM serialize-an-identifier rules:
//
//	w-[1px]      → w-\[1px\]
//	sm:w-[1px]   → sm\:w-\[1px\]
//	2xl:w-[1px]  → \32 xl\:w-\[1px\]
func EscapeClassName(className string) string {
	var b strings.Builder
	b.Grow(len(className) + 8)

	runes := []rune(className)
	for i, r := range runes {
		switch {
		case r == 0:
			b.WriteRune('\uFFFD')
		case (r >= 0x01 && r <= 0x1F) || r == 0x7F:
			fmt.Fprintf(&b, "\\%x ", r)
		case i == 0 && isDigit(r):
			fmt.Fprintf(&b, "\\%x ", r)
		case i == 1 && isDigit(r) && runes[0] == '-':
			fmt.Fprintf(&b, "\\%x ", r)
		case i == 0 && r == '-' && len(runes) == 1:
			b.WriteString(`\-`)
		case r >= 0x80 || r == '-' || r == '_' || isDigit(r) || isASCIILetter(r):
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}

	return b.String()
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

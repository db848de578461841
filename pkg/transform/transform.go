package transform

import (
	"strings"

	"github.com/kataras/svg2jsx/pkg/markup"
)

// Dialect selects the flavor of generated component markup.
type Dialect int

const (
	// Web targets browser JSX with intrinsic SVG elements.
	Web Dialect = iota
	// Native targets react-native-svg components.
	Native
)

// String returns the name used for the dialect in output and flags.
func (d Dialect) String() string {
	switch d {
	case Web:
		return "react"
	case Native:
		return "reactNative"
	default:
		return "unknown"
	}
}

// Transform normalizes a single attribute for the given dialect. It returns
// the attribute text with a leading space, ready to be appended to a tag, and
// false when the attribute must not be emitted at all.
//
// Rules, in order: namespace declarations are dropped; "class" becomes
// "className" (dropped for Native); hyphenated names are camelCased; "style"
// is rewritten as an object expression; everything else passes through as
// name="value" with the value copied verbatim.
func Transform(attr markup.Attribute, d Dialect) (string, bool) {
	name := attr.Name

	if name == "xmlns" || strings.HasPrefix(name, "xmlns:") {
		return "", false
	}

	switch {
	case name == "class":
		if d == Native {
			return "", false
		}
		name = "className"
	case strings.Contains(name, "-"):
		name = ToCamelCase(name)
	}

	if name == "style" {
		return " style={" + ParseStyle(attr.Value).Expression() + "}", true
	}

	return " " + name + `="` + attr.Value + `"`, true
}

// ToCamelCase converts kebab-case to camelCase. Every hyphen followed by a
// lowercase ASCII letter is removed and the letter upper-cased; any other
// hyphen is left in place ("stroke-width" -> "strokeWidth", "x-1" -> "x-1").
func ToCamelCase(s string) string {
	if !strings.Contains(s, "-") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '-' && i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z' {
			b.WriteByte(s[i+1] - 'a' + 'A')
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

package transform

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Declaration is one parsed CSS declaration of an inline style attribute.
type Declaration struct {
	Property string // camelCased
	Value    string // raw, trimmed
}

// Style is an ordered set of declarations. A property declared twice keeps
// the position of its first occurrence and the value of its last.
type Style struct {
	decls []Declaration
	index map[string]int
}

// ParseStyle parses the value of a style attribute ("fill:red; stroke-width:2").
// Declarations without a property, a value, or a ':' separator are dropped.
// Values are split at the first ':' only, so "url(http://x)" stays intact.
func ParseStyle(s string) *Style {
	style := &Style{index: make(map[string]int)}

	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		value = strings.TrimSpace(value)
		if prop == "" || value == "" {
			continue
		}
		style.Set(ToCamelCase(prop), value)
	}

	return style
}

// Set adds or replaces a declaration.
func (s *Style) Set(prop, value string) {
	if i, ok := s.index[prop]; ok {
		s.decls[i].Value = value
		return
	}
	s.index[prop] = len(s.decls)
	s.decls = append(s.decls, Declaration{Property: prop, Value: value})
}

// Declarations returns the declarations in source order.
func (s *Style) Declarations() []Declaration {
	out := make([]Declaration, len(s.decls))
	copy(out, s.decls)
	return out
}

// Expression serializes the style as an object literal with double-quoted
// keys and values: {"fill":"red","strokeWidth":"2"}.
func (s *Style) Expression() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, d := range s.Declarations() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quote(d.Property))
		b.WriteByte(':')
		b.WriteString(quote(d.Value))
	}
	b.WriteByte('}')
	return b.String()
}

// quote returns s as a JSON string literal without HTML escaping, matching
// what a script engine's JSON serializer produces for plain strings.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// strings always encode.
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

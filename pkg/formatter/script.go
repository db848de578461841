package formatter

import (
	"fmt"
	"strings"
)

// formatScript lays out component source: markup lines are re-indented tag
// by tag, long import lists are broken one name per line, and every other
// line is kept as written.
func formatScript(src string, width int) (string, error) {
	lines := strings.Split(strings.TrimSpace(src), "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		ln := strings.TrimRight(lines[i], " \t\r")
		trimmed := strings.TrimSpace(ln)

		switch {
		case strings.HasPrefix(trimmed, "<"):
			// Collect the contiguous markup block.
			base := ln[:len(ln)-len(strings.TrimLeft(ln, " \t"))]
			block := []string{trimmed}
			for i+1 < len(lines) && !isStatementEnd(strings.TrimSpace(lines[i+1])) {
				i++
				block = append(block, strings.TrimSpace(lines[i]))
			}

			tokens, err := scanJSX(strings.Join(block, "\n"))
			if err != nil {
				return "", err
			}
			formatted, err := layoutJSX(tokens, base, width)
			if err != nil {
				return "", err
			}
			out = append(out, formatted...)

		case strings.HasPrefix(trimmed, "import {") && len(ln) > width:
			out = append(out, breakImport(trimmed)...)

		default:
			out = append(out, ln)
		}
	}

	return strings.Join(out, "\n") + "\n", nil
}

func isStatementEnd(s string) bool {
	return s == ");" || s == ")" || s == ""
}

// breakImport turns `import { A, B } from 'x';` into one name per line.
func breakImport(line string) []string {
	open := strings.Index(line, "{")
	end := strings.Index(line, "}")
	if open < 0 || end < open {
		return []string{line}
	}

	out := []string{"import {"}
	for _, name := range strings.Split(line[open+1:end], ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, indentUnit+name+",")
		}
	}
	return append(out, "}"+line[end+1:])
}

type jsxKind int

const (
	jsxOpen jsxKind = iota
	jsxClose
	jsxVoid
	jsxText
)

type jsxToken struct {
	kind  jsxKind
	name  string   // tag name, or the text for jsxText
	attrs []string // raw attribute text: name="v", name={...}, name
}

// scanJSX splits markup into tags and text. Quoted attribute values and
// brace expressions (with nested braces and string literals) are kept whole.
func scanJSX(s string) ([]jsxToken, error) {
	var tokens []jsxToken

	i := 0
	for i < len(s) {
		if s[i] != '<' {
			j := strings.IndexByte(s[i:], '<')
			if j < 0 {
				j = len(s) - i
			}
			if text := strings.TrimSpace(s[i : i+j]); text != "" {
				tokens = append(tokens, jsxToken{kind: jsxText, name: text})
			}
			i += j
			continue
		}

		i++
		if i < len(s) && s[i] == '/' {
			j := strings.IndexByte(s[i:], '>')
			if j < 0 {
				return nil, fmt.Errorf("unterminated closing tag at offset %d", i)
			}
			tokens = append(tokens, jsxToken{kind: jsxClose, name: strings.TrimSpace(s[i+1 : i+j])})
			i += j + 1
			continue
		}

		start := i
		for i < len(s) && !isSpace(s[i]) && s[i] != '>' && s[i] != '/' {
			i++
		}
		tok := jsxToken{kind: jsxOpen, name: s[start:i]}
		if tok.name == "" {
			return nil, fmt.Errorf("missing tag name at offset %d", start)
		}

	attrs:
		for {
			for i < len(s) && isSpace(s[i]) {
				i++
			}
			if i >= len(s) {
				return nil, fmt.Errorf("unterminated tag <%s>", tok.name)
			}

			switch {
			case s[i] == '>':
				i++
				break attrs
			case s[i] == '/' && i+1 < len(s) && s[i+1] == '>':
				tok.kind = jsxVoid
				i += 2
				break attrs
			}

			start := i
			for i < len(s) && !isSpace(s[i]) && s[i] != '=' && s[i] != '>' && s[i] != '/' {
				i++
			}
			if i == start {
				return nil, fmt.Errorf("unexpected %q in tag <%s>", s[i], tok.name)
			}
			if i < len(s) && s[i] == '=' {
				i++
				end, err := scanValue(s, i)
				if err != nil {
					return nil, fmt.Errorf("attribute %s of <%s>: %w", s[start:i-1], tok.name, err)
				}
				i = end
				if i < len(s) && !isSpace(s[i]) && s[i] != '>' && !strings.HasPrefix(s[i:], "/>") {
					return nil, fmt.Errorf("unexpected %q after attribute %s of <%s>", s[i], s[start:i], tok.name)
				}
			}
			tok.attrs = append(tok.attrs, s[start:i])
		}

		tokens = append(tokens, tok)
	}

	return tokens, nil
}

// scanValue returns the offset just past the attribute value starting at i.
func scanValue(s string, i int) (int, error) {
	if i >= len(s) {
		return 0, fmt.Errorf("missing value")
	}

	switch q := s[i]; q {
	case '"', '\'':
		j := strings.IndexByte(s[i+1:], q)
		if j < 0 {
			return 0, fmt.Errorf("unterminated string")
		}
		return i + j + 2, nil
	case '{':
		depth := 0
		for j := i; j < len(s); j++ {
			switch c := s[j]; c {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return j + 1, nil
				}
			case '"', '\'', '`':
				// skip string literal, honoring escapes
				for j++; j < len(s) && s[j] != c; j++ {
					if s[j] == '\\' {
						j++
					}
				}
				if j >= len(s) {
					return 0, fmt.Errorf("unterminated string in expression")
				}
			}
		}
		return 0, fmt.Errorf("unbalanced braces")
	default:
		return 0, fmt.Errorf("unquoted value")
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func layoutJSX(tokens []jsxToken, base string, width int) ([]string, error) {
	out := newLayout(width)
	for i, tok := range tokens {
		switch tok.kind {
		case jsxOpen:
			out.tag("<", tok.name, tok.attrs, ">")
		case jsxVoid:
			out.tag("<", tok.name, tok.attrs, "/>")
		case jsxClose:
			if err := out.close(tok.name); err != nil {
				return nil, err
			}
		case jsxText:
			out.line(tok.name)
		default:
			return nil, fmt.Errorf("unknown token %d", i)
		}
	}

	if len(out.stack) > 0 {
		return nil, fmt.Errorf("unclosed element <%s>", out.stack[len(out.stack)-1])
	}

	lines := make([]string, len(out.lines))
	for i, ln := range out.lines {
		lines[i] = base + ln
	}
	return lines, nil
}

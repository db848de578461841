package formatter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

const indentUnit = "  "

// Builtin lays out markup and generated component source without any
// external tooling: one tag per line, two-space indentation, attributes
// broken onto their own lines when a tag does not fit PrintWidth.
type Builtin struct {
	PrintWidth int
}

// Format implements Formatter.
func (f *Builtin) Format(ctx context.Context, src string, kind Kind) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &FormatError{Kind: kind, Err: err}
	}

	width := f.PrintWidth
	if width <= 0 {
		width = DefaultPrintWidth
	}

	var (
		out string
		err error
	)
	switch kind {
	case Markup:
		out, err = formatMarkup(src, width)
	case Script:
		out, err = formatScript(src, width)
	default:
		err = fmt.Errorf("unsupported kind %d", kind)
	}
	if err != nil {
		return "", &FormatError{Kind: kind, Err: err}
	}
	return out, nil
}

// layout accumulates indented output lines.
type layout struct {
	width int
	lines []string
	stack []string

	// index of the line holding the most recent start tag while it has no
	// content yet, -1 otherwise.
	pending int
}

func newLayout(width int) *layout {
	return &layout{width: width, pending: -1}
}

func (l *layout) indent(extra int) string {
	return strings.Repeat(indentUnit, len(l.stack)+extra)
}

func (l *layout) line(s string) {
	l.lines = append(l.lines, l.indent(0)+s)
	l.pending = -1
}

// tag writes a start tag. end is ">" for an open element, "/>" or "?>" for a
// void one; open elements are pushed onto the stack.
func (l *layout) tag(prefix, name string, attrs []string, end string) {
	sep := ""
	if end == "/>" {
		sep = " "
	}

	single := l.indent(0) + prefix + name
	for _, a := range attrs {
		single += " " + a
	}
	single += sep + end

	if len(attrs) <= 1 || len(single) <= l.width {
		l.lines = append(l.lines, single)
	} else {
		l.lines = append(l.lines, l.indent(0)+prefix+name)
		for _, a := range attrs {
			l.lines = append(l.lines, l.indent(1)+a)
		}
		l.lines = append(l.lines, l.indent(0)+end)
	}

	l.pending = -1
	if end == ">" {
		l.stack = append(l.stack, name)
		l.pending = len(l.lines) - 1
	}
}

func (l *layout) close(name string) error {
	if len(l.stack) == 0 {
		return fmt.Errorf("unexpected closing tag </%s>", name)
	}
	if open := l.stack[len(l.stack)-1]; open != name {
		return fmt.Errorf("closing tag </%s> does not match <%s>", name, open)
	}
	l.stack = l.stack[:len(l.stack)-1]

	if l.pending >= 0 && l.pending == len(l.lines)-1 {
		l.lines[l.pending] += "</" + name + ">"
	} else {
		l.line("</" + name + ">")
	}
	l.pending = -1
	return nil
}

func (l *layout) done() (string, error) {
	if len(l.stack) > 0 {
		return "", fmt.Errorf("unclosed element <%s>", l.stack[len(l.stack)-1])
	}
	return strings.Join(l.lines, "\n") + "\n", nil
}

// formatMarkup re-indents SVG/XML text. Attribute text is kept exactly as
// written, quotes and entities included.
func formatMarkup(src string, width int) (string, error) {
	lex := xml.NewLexer(parse.NewInputString(src))
	out := newLayout(width)

	var (
		inTag  bool
		prefix string
		name   string
		attrs  []string
	)

	for {
		tt, data := lex.Next()
		text := string(data)

		switch tt {
		case xml.ErrorToken:
			if err := lex.Err(); err != io.EOF {
				return "", err
			}
			if inTag {
				return "", fmt.Errorf("unexpected end of input in <%s>", name)
			}
			return out.done()

		case xml.StartTagToken:
			inTag, prefix, name, attrs = true, "<", strings.TrimSpace(strings.TrimPrefix(text, "<")), nil

		case xml.StartTagPIToken:
			inTag, prefix, name, attrs = true, "<?", strings.TrimSpace(strings.TrimPrefix(text, "<?")), nil

		case xml.AttributeToken:
			if a := strings.TrimSpace(text); a != "" {
				attrs = append(attrs, a)
			}

		case xml.StartTagCloseToken:
			out.tag(prefix, name, attrs, ">")
			inTag = false

		case xml.StartTagCloseVoidToken:
			out.tag(prefix, name, attrs, "/>")
			inTag = false

		case xml.StartTagClosePIToken:
			out.tag(prefix, name, attrs, "?>")
			inTag = false

		case xml.EndTagToken:
			closing := strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(text, "</"), ">"))
			if err := out.close(closing); err != nil {
				return "", err
			}

		case xml.TextToken:
			for _, ln := range strings.Split(text, "\n") {
				if ln = strings.TrimSpace(ln); ln != "" {
					out.line(ln)
				}
			}

		case xml.CommentToken, xml.CDATAToken, xml.DOCTYPEToken:
			out.line(strings.TrimSpace(text))
		}
	}
}

package markup

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// RootName is the local tag name recognized as the document root.
const RootName = "svg"

// Attribute is a single element attribute. Name keeps its namespace prefix
// exactly as written (e.g. "xlink:href", "xmlns:xlink").
type Attribute struct {
	Name  string
	Value string
}

// Element is a node of the parsed SVG tree. Only element children are kept;
// text, comments, CDATA and processing instructions are dropped while parsing.
type Element struct {
	Name     string
	Attrs    []Attribute
	Children []*Element
}

// Count returns the number of elements in the subtree rooted at e, e included.
func (e *Element) Count() int {
	if e == nil {
		return 0
	}
	n := 1
	for _, c := range e.Children {
		n += c.Count()
	}
	return n
}

// ParseError reports that no usable <svg> root element could be read.
type ParseError struct {
	Reason string
	Err    error // underlying decoder error, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse svg: %s: %v", e.Reason, e.Err)
	}
	return "parse svg: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads markup text and returns the first <svg> element, in document
// order, as an owned element tree. It fails with a *ParseError when the input
// is empty, is not well-formed, or contains no svg element.
func Parse(text string) (*Element, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Reason: "empty input"}
	}

	doc, err := build(text)
	if err != nil {
		return nil, err
	}

	root := findRoot(doc)
	if root == nil {
		return nil, &ParseError{Reason: fmt.Sprintf("no <%s> element found", RootName)}
	}

	return root, nil
}

func keepUTF8(_ string, r io.Reader) (io.Reader, error) { return r, nil }

// build decodes the whole document into a tree and returns its top-level element.
func build(text string) (*Element, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	// text is already UTF-8; the prolog encoding describes bytes decoded elsewhere.
	dec.CharsetReader = keepUTF8

	var (
		top   *Element
		stack []*Element
	)

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Reason: "malformed markup", Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{
				Name:  qualified(t.Name),
				Attrs: make([]Attribute, 0, len(t.Attr)),
			}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attribute{Name: qualified(a.Name), Value: a.Value})
			}

			if len(stack) == 0 {
				if top != nil {
					return nil, &ParseError{Reason: fmt.Sprintf("unexpected element <%s> after document element", el.Name)}
				}
				top = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			name := qualified(t.Name)
			if len(stack) == 0 {
				return nil, &ParseError{Reason: fmt.Sprintf("unexpected closing tag </%s>", name)}
			}
			if open := stack[len(stack)-1]; open.Name != name {
				return nil, &ParseError{Reason: fmt.Sprintf("closing tag </%s> does not match <%s>", name, open.Name)}
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		return nil, &ParseError{Reason: fmt.Sprintf("unclosed element <%s>", stack[len(stack)-1].Name)}
	}

	return top, nil
}

// findRoot returns the first svg element in pre-order.
func findRoot(e *Element) *Element {
	if e == nil {
		return nil
	}
	if localName(e.Name) == RootName {
		return e
	}
	for _, c := range e.Children {
		if found := findRoot(c); found != nil {
			return found
		}
	}
	return nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func localName(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

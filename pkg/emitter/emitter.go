package emitter

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kataras/svg2jsx/pkg/markup"
	"github.com/kataras/svg2jsx/pkg/transform"
)

// ConversionError reports a failure while walking the element tree.
type ConversionError struct {
	Err error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert svg: %v", e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// TagUsage is the ordered set of distinct tag names emitted during one Native
// emission. Names are kept in discovery order.
type TagUsage struct {
	names []string
	seen  map[string]struct{}
}

// NewTagUsage returns an empty set.
func NewTagUsage() *TagUsage {
	return &TagUsage{seen: make(map[string]struct{})}
}

// Add records name, ignoring duplicates.
func (u *TagUsage) Add(name string) {
	if u.Has(name) {
		return
	}
	u.seen[name] = struct{}{}
	u.names = append(u.names, name)
}

// Has reports whether name was recorded.
func (u *TagUsage) Has(name string) bool {
	if u == nil {
		return false
	}
	_, ok := u.seen[name]
	return ok
}

// Names returns the recorded names in discovery order.
func (u *TagUsage) Names() []string {
	if u == nil || len(u.names) == 0 {
		return nil
	}
	out := make([]string, len(u.names))
	copy(out, u.names)
	return out
}

// Len returns the number of distinct names.
func (u *TagUsage) Len() int {
	if u == nil {
		return 0
	}
	return len(u.names)
}

// TagName returns the emitted tag name of a source tag for the dialect.
// Web keeps the source name; Native maps "svg" to "Svg" and upper-cases only
// the first character of every other name ("linearGradient" -> "LinearGradient").
func TagName(name string, d transform.Dialect) string {
	if d != transform.Native {
		return name
	}
	if name == markup.RootName {
		return "Svg"
	}
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// Emit renders root and its element descendants as dialect markup, depth
// first. For Native it also returns the set of emitted tag names; for Web the
// returned set is empty. Any failure during traversal is returned as a
// *ConversionError, never a panic.
func Emit(root *markup.Element, d transform.Dialect) (out string, usage *TagUsage, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, usage = "", nil
			if e, ok := r.(error); ok {
				err = &ConversionError{Err: e}
				return
			}
			err = &ConversionError{Err: fmt.Errorf("%v", r)}
		}
	}()

	if root == nil {
		return "", nil, &ConversionError{Err: fmt.Errorf("nil root element")}
	}

	e := &emitter{dialect: d, usage: NewTagUsage()}
	e.node(root)
	return e.buf.String(), e.usage, nil
}

type emitter struct {
	dialect transform.Dialect
	usage   *TagUsage
	buf     strings.Builder
}

func (e *emitter) node(n *markup.Element) {
	tag := TagName(n.Name, e.dialect)
	if e.dialect == transform.Native {
		e.usage.Add(tag)
	}

	e.buf.WriteByte('<')
	e.buf.WriteString(tag)
	for _, attr := range n.Attrs {
		if text, ok := transform.Transform(attr, e.dialect); ok {
			e.buf.WriteString(text)
		}
	}

	if len(n.Children) == 0 {
		e.buf.WriteString(" />")
		return
	}

	e.buf.WriteByte('>')
	for _, child := range n.Children {
		e.node(child)
	}
	e.buf.WriteString("</")
	e.buf.WriteString(tag)
	e.buf.WriteByte('>')
}

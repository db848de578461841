package assembler

import (
	"regexp"
	"strings"

	"github.com/kataras/svg2jsx/pkg/emitter"
	"github.com/kataras/svg2jsx/pkg/transform"
)

// NativeLibrary is the module every Native component is imported from.
const NativeLibrary = "react-native-svg"

// Wrapper names the generated component declaration.
type Wrapper struct {
	ComponentName string // default "Icon"
	PropsName     string // default "props"
}

// DefaultWrapper produces `export const Icon = (props) => (...)`.
var DefaultWrapper = Wrapper{ComponentName: "Icon", PropsName: "props"}

var classNameAttr = regexp.MustCompile(` ?className=".*?"`)

// Assemble wraps emitted markup into a complete component source. Native
// output starts with an import of every name in usage and never contains a
// className attribute.
func Assemble(markup string, usage *emitter.TagUsage, d transform.Dialect, w Wrapper) string {
	if w.ComponentName == "" {
		w.ComponentName = DefaultWrapper.ComponentName
	}
	if w.PropsName == "" {
		w.PropsName = DefaultWrapper.PropsName
	}

	var b strings.Builder

	if d == transform.Native {
		if usage.Len() > 0 {
			b.WriteString(ImportLine(usage.Names()))
			b.WriteString("\n\n")
		}
		markup = classNameAttr.ReplaceAllString(markup, "")
	}

	b.WriteString("export const ")
	b.WriteString(w.ComponentName)
	b.WriteString(" = (")
	b.WriteString(w.PropsName)
	b.WriteString(") => (\n  ")
	b.WriteString(markup)
	b.WriteString("\n);")

	return b.String()
}

// ImportLine returns the import statement for the given Native components.
func ImportLine(names []string) string {
	return "import { " + strings.Join(names, ", ") + " } from '" + NativeLibrary + "';"
}

package formatter

import (
	"fmt"
	"strings"
)

// Output is one generated source shown in a markdown report.
type Output struct {
	Title    string // section heading, e.g. "React Component"
	Language string // fence language, e.g. "jsx"
	Source   string
}

// ToMarkdown renders conversion outputs into a markdown document: a title
// naming the source file, an optional list of diagnostics, and one fenced
// code block per output.
func ToMarkdown(fileName string, outputs []Output, diagnostics []string) string {
	var sb strings.Builder

	if fileName == "" {
		fileName = "stdin"
	}
	sb.WriteString(fmt.Sprintf("# SVG Components - %s\n\n", fileName))
	sb.WriteString("This document contains the components generated from the SVG source.\n\n")

	if len(diagnostics) > 0 {
		sb.WriteString("## Diagnostics\n\n")
		for _, d := range diagnostics {
			sb.WriteString(fmt.Sprintf("- %s\n", d))
		}
		sb.WriteString("\n")
	}

	for _, o := range outputs {
		sb.WriteString(fmt.Sprintf("## %s\n\n", o.Title))
		sb.WriteString(fmt.Sprintf("```%s\n", o.Language))
		sb.WriteString(strings.TrimRight(o.Source, "\n"))
		sb.WriteString("\n```\n\n")
	}

	return sb.String()
}

// ToPascalCase converts a file or node name into a component identifier:
// "arrow-left" -> "ArrowLeft", "2 icons_v1" -> "Icon2IconsV1".
// An empty result falls back to "Icon".
func ToPascalCase(s string) string {
	var sb strings.Builder
	upper := true
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			if upper && r >= 'a' && r <= 'z' {
				r -= 'a' - 'A'
			}
			sb.WriteRune(r)
			upper = false
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
			upper = true
		default:
			upper = true
		}
	}

	name := sb.String()
	if name == "" {
		return "Icon"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "Icon" + name
	}
	return name
}

package formatter

import (
	"context"
	"fmt"
)

// Kind tells a Formatter which syntax it is looking at.
type Kind int

const (
	// Markup is SVG/XML text.
	Markup Kind = iota
	// Script is generated component source.
	Script
)

func (k Kind) String() string {
	switch k {
	case Markup:
		return "markup"
	case Script:
		return "script"
	default:
		return "unknown"
	}
}

// DefaultPrintWidth is the line width formatters aim for.
const DefaultPrintWidth = 80

// Formatter pretty-prints source text. Implementations return a *FormatError
// on failure; callers are expected to fall back to the unformatted text.
type Formatter interface {
	Format(ctx context.Context, src string, kind Kind) (string, error)
}

// Func adapts a plain function to the Formatter interface.
type Func func(ctx context.Context, src string, kind Kind) (string, error)

// Format calls f.
func (f Func) Format(ctx context.Context, src string, kind Kind) (string, error) {
	return f(ctx, src, kind)
}

// FormatError reports a failed formatting attempt.
type FormatError struct {
	Kind Kind
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format %s: %v", e.Kind, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// None returns its input unchanged.
var None Formatter = Func(func(_ context.Context, src string, _ Kind) (string, error) {
	return src, nil
})

// Options configures the formatter returned by New.
type Options struct {
	PrintWidth  int
	PrettierBin string
}

// New returns the formatter registered under name: "builtin", "prettier" or "none".
func New(name string, opts Options) (Formatter, error) {
	if opts.PrintWidth <= 0 {
		opts.PrintWidth = DefaultPrintWidth
	}

	switch name {
	case "", "builtin":
		return &Builtin{PrintWidth: opts.PrintWidth}, nil
	case "prettier":
		return &Prettier{Bin: opts.PrettierBin, PrintWidth: opts.PrintWidth}, nil
	case "none":
		return None, nil
	default:
		return nil, fmt.Errorf("unknown formatter %q (must be builtin, prettier, or none)", name)
	}
}

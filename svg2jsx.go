package svg2jsx

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kataras/svg2jsx/pkg/assembler"
	"github.com/kataras/svg2jsx/pkg/emitter"
	"github.com/kataras/svg2jsx/pkg/formatter"
	"github.com/kataras/svg2jsx/pkg/markup"
	"github.com/kataras/svg2jsx/pkg/transform"
)

// Version is the current release.
const Version = "0.1.0"

// Placeholders substituted for an output that could not be produced.
const (
	InvalidPlaceholder = "// Invalid SVG"
	ErrorPlaceholder   = "// Error converting SVG"
)

// Dialect re-exports transform.Dialect so callers need a single import.
type Dialect = transform.Dialect

// Supported dialects.
const (
	Web    = transform.Web
	Native = transform.Native
)

// Target names one of the three outputs of a conversion.
type Target string

// Output targets.
const (
	TargetSVG         Target = "svg"
	TargetReact       Target = "react"
	TargetReactNative Target = "reactNative"
)

// Targets lists every output in display order.
var Targets = []Target{TargetSVG, TargetReact, TargetReactNative}

// ParseTarget accepts a target name as typed on a command line. "native"
// and "react-native" are accepted for TargetReactNative.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "svg":
		return TargetSVG, nil
	case "react", "web":
		return TargetReact, nil
	case "reactnative", "react-native", "native":
		return TargetReactNative, nil
	default:
		return "", fmt.Errorf("invalid target %q (must be svg, react, or native)", s)
	}
}

// Options configures a conversion.
type Options struct {
	ComponentName string              // default "Icon"
	PropsName     string              // default "props"
	Formatter     formatter.Formatter // nil = outputs are left unformatted
	Logger        Logger              // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result holds the three outputs of a conversion.
type Result struct {
	SVG         string   `json:"svg"`
	React       string   `json:"react"`
	ReactNative string   `json:"reactNative"`
	Diagnostics []string `json:"diagnostics,omitempty"` // non-fatal problems, sorted
}

// Get returns the output for target.
func (r *Result) Get(target Target) string {
	switch target {
	case TargetSVG:
		return r.SVG
	case TargetReact:
		return r.React
	case TargetReactNative:
		return r.ReactNative
	default:
		return ""
	}
}

// Outputs returns the outputs as markdown report sections.
func (r *Result) Outputs() []formatter.Output {
	return []formatter.Output{
		{Title: "SVG Code", Language: "svg", Source: r.SVG},
		{Title: "React Component", Language: "jsx", Source: r.React},
		{Title: "React Native", Language: "jsx", Source: r.ReactNative},
	}
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *Options) logError(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Errorf(f, a...)
	}
}

func (o *Options) wrapper() assembler.Wrapper {
	return assembler.Wrapper{ComponentName: o.ComponentName, PropsName: o.PropsName}
}

// Convert produces the formatted markup, the Web component and the Native
// component for input. It never fails: input without a valid <svg> root
// yields InvalidPlaceholder for all three outputs, and a conversion failure
// yields ErrorPlaceholder for the affected output only. Formatting failures
// fall back to the unformatted text and are reported in Result.Diagnostics.
func Convert(ctx context.Context, input string, opts Options) *Result {
	root, err := markup.Parse(input)
	if err != nil {
		opts.logWarn("%v", err)
		return &Result{
			SVG:         InvalidPlaceholder,
			React:       InvalidPlaceholder,
			ReactNative: InvalidPlaceholder,
			Diagnostics: []string{err.Error()},
		}
	}
	opts.logInfo("Parsed <%s> with %d element(s)", root.Name, root.Count())

	var (
		result = new(Result)
		mu     sync.Mutex
	)
	report := func(err error) {
		mu.Lock()
		result.Diagnostics = append(result.Diagnostics, err.Error())
		mu.Unlock()
	}

	// Each goroutine writes a distinct field; the tree is only read.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result.SVG = opts.format(gctx, input, formatter.Markup, TargetSVG, report)
		return nil
	})

	g.Go(func() error {
		result.React = opts.target(gctx, root, Web, TargetReact, report)
		return nil
	})

	g.Go(func() error {
		result.ReactNative = opts.target(gctx, root, Native, TargetReactNative, report)
		return nil
	})

	_ = g.Wait()

	sort.Strings(result.Diagnostics)
	return result
}

// target generates and formats one component output.
func (o *Options) target(ctx context.Context, root *markup.Element, d Dialect, t Target, report func(error)) string {
	raw, err := generate(root, d, o.wrapper())
	if err != nil {
		o.logError("%s: %v", t, err)
		report(fmt.Errorf("%s: %w", t, err))
		return ErrorPlaceholder
	}
	return o.format(ctx, raw, formatter.Script, t, report)
}

// format runs the configured formatter, falling back to src on failure.
func (o *Options) format(ctx context.Context, src string, kind formatter.Kind, t Target, report func(error)) string {
	if o.Formatter == nil {
		return src
	}

	out, err := o.Formatter.Format(ctx, src, kind)
	if err != nil {
		o.logWarn("Formatting %s output failed, using unformatted text: %v", t, err)
		report(fmt.Errorf("%s: %w", t, err))
		return src
	}
	return out
}

// Generate returns the unformatted component source of input for one dialect.
// The result is deterministic: identical input yields identical output.
func Generate(input string, d Dialect, opts Options) (string, error) {
	root, err := markup.Parse(input)
	if err != nil {
		return "", err
	}
	return generate(root, d, opts.wrapper())
}

func generate(root *markup.Element, d Dialect, w assembler.Wrapper) (string, error) {
	out, usage, err := emitter.Emit(root, d)
	if err != nil {
		return "", err
	}
	return assembler.Assemble(out, usage, d, w), nil
}

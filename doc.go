// Package svg2jsx converts SVG markup into component source code for two
// targets: React (browser JSX using intrinsic SVG elements) and React Native
// (components from react-native-svg).
//
// The CLI lives in cmd/svg2jsx; this root package exposes the same pipeline
// as a Go API so that callers can embed conversion in their own tools
// without shelling out.
//
// # Quick start
//
//	f, _ := formatter.New("builtin", formatter.Options{})
//	result := svg2jsx.Convert(ctx, string(data), svg2jsx.Options{
//	    Formatter: f,
//	})
//	os.WriteFile("Icon.jsx", []byte(result.React), 0644)
//
// Convert never fails. Input without an <svg> root produces
// [InvalidPlaceholder] for every output; a failure while generating one
// target produces [ErrorPlaceholder] for that target only.
//
// # Pipeline
//
// The input is parsed into an element tree (pkg/markup), every attribute is
// normalized for the target dialect (pkg/transform), the tree is emitted as
// component markup (pkg/emitter) and wrapped in a component declaration
// (pkg/assembler). The three outputs are computed concurrently and each is
// passed through the configured [formatter.Formatter]; a formatting failure
// falls back to the unformatted text.
//
// Use [Generate] for the raw, unformatted source of a single dialect.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
package svg2jsx

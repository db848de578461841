package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/kataras/svg2jsx"
	"github.com/kataras/svg2jsx/pkg/batch"
	"github.com/kataras/svg2jsx/pkg/config"
	"github.com/kataras/svg2jsx/pkg/formatter"
	"github.com/kataras/svg2jsx/pkg/markup"
	"github.com/kataras/svg2jsx/pkg/server"
	"github.com/kataras/svg2jsx/pkg/watch"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = svg2jsx.Version

var (
	configFile    string
	target        string
	outputFile    string
	reportFile    string
	copyOutput    bool
	watchInput    bool
	formatterName string
	componentName string
	printWidth    int

	outDir       string
	batchTargets string
	nameFromFile bool
	parallel     int

	addr string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "svg2jsx [file|url|-]",
		Short: "Convert SVG markup into React and React Native components",
		Long: "A tool to convert SVG markup into React (JSX) and React Native (react-native-svg) component source code.\n" +
			"Reads from a file, an http(s) URL, or stdin when no argument (or \"-\") is given.",
		Args:          cobra.MaximumNArgs(1),
		RunE:          runConvert,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&formatterName, "formatter", "builtin", "Formatter: builtin, prettier, none")
	rootCmd.PersistentFlags().StringVar(&componentName, "component-name", "Icon", "Name of the generated component")
	rootCmd.PersistentFlags().IntVar(&printWidth, "print-width", 80, "Line width used by the formatter")

	rootCmd.Flags().StringVarP(&target, "target", "t", "react", "Output: svg, react, native, all")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the output to a file instead of stdout")
	rootCmd.Flags().StringVarP(&reportFile, "report", "r", "", "Also write a markdown report with every output")
	rootCmd.Flags().BoolVar(&copyOutput, "copy", false, "Copy the selected output to the clipboard")
	rootCmd.Flags().BoolVarP(&watchInput, "watch", "w", false, "Convert again whenever the input file changes")

	batchCmd := &cobra.Command{
		Use:   "batch <file|dir|url>...",
		Short: "Convert many SVG files into component files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVar(&outDir, "out-dir", "components", "Output directory for component files")
	batchCmd.Flags().StringVar(&batchTargets, "targets", "react,native", "Comma-separated outputs: svg, react, native")
	batchCmd.Flags().BoolVar(&nameFromFile, "name-from-file", true, "Name each component after its source file")
	batchCmd.Flags().IntVar(&parallel, "parallel", 5, "Number of files converted concurrently")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the converter over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("svg2jsx version %s\n", version)
		},
	}

	rootCmd.AddCommand(batchCmd, serveCmd, versionCmd)
	return rootCmd
}

// loadConfig reads the config file and applies flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("formatter") {
		cfg.Formatter = formatterName
	}
	if flags.Changed("component-name") {
		cfg.ComponentName = componentName
	}
	if flags.Changed("print-width") {
		cfg.PrintWidth = printWidth
	}
	if flags.Lookup("target") != nil && flags.Changed("target") {
		cfg.Target = target
	}
	if flags.Lookup("parallel") != nil && flags.Changed("parallel") {
		cfg.Parallel = parallel
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.Addr = addr
	}

	return cfg, cfg.Validate()
}

func convertOptions(cfg config.Config) (svg2jsx.Options, error) {
	f, err := formatter.New(cfg.Formatter, formatter.Options{
		PrintWidth:  cfg.PrintWidth,
		PrettierBin: cfg.PrettierBin,
	})
	if err != nil {
		return svg2jsx.Options{}, err
	}

	return svg2jsx.Options{
		ComponentName: cfg.ComponentName,
		PropsName:     cfg.PropsName,
		Formatter:     f,
		Logger:        &cliLogger{},
	}, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := convertOptions(cfg)
	if err != nil {
		return err
	}

	source := "-"
	if len(args) == 1 {
		source = args[0]
	}

	var targets []svg2jsx.Target
	if cfg.Target == "all" {
		targets = svg2jsx.Targets
	} else {
		t, err := svg2jsx.ParseTarget(cfg.Target)
		if err != nil {
			return err
		}
		targets = []svg2jsx.Target{t}
	}

	if copyOutput && len(targets) != 1 {
		return fmt.Errorf("--copy needs a single --target")
	}

	ctx, cancel := signalContext()
	defer cancel()

	convertOnce := func() error {
		input, err := readInput(ctx, source)
		if err != nil {
			return err
		}
		result := svg2jsx.Convert(ctx, input, opts)
		return emit(result, source, targets)
	}

	if !watchInput {
		return convertOnce()
	}

	if source == "-" || strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fmt.Errorf("--watch needs a local file")
	}
	color.New(color.FgCyan).Fprintf(os.Stderr, "👀 Watching %s (debounce %s)\n", source, cfg.Debounce)

	if err := convertOnce(); err != nil {
		opts.Logger.Errorf("%v", err)
	}

	w, err := watch.New([]string{source}, cfg.Debounce, func(string) {
		if err := convertOnce(); err != nil {
			opts.Logger.Errorf("%v", err)
		}
	})
	if err != nil {
		return err
	}
	w.OnError = func(err error) { opts.Logger.Warnf("watch: %v", err) }

	return w.Run(ctx)
}

func readInput(ctx context.Context, source string) (string, error) {
	if source == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return markup.Decode(data, "")
	}
	return batch.ReadSource(ctx, source)
}

// emit writes the selected outputs to stdout or --output, then handles
// --report and --copy.
func emit(result *svg2jsx.Result, source string, targets []svg2jsx.Target) error {
	var text string
	if len(targets) == 1 {
		text = result.Get(targets[0])
	} else {
		parts := make([]string, 0, len(targets))
		for _, t := range targets {
			parts = append(parts, fmt.Sprintf("// ---- %s ----\n%s", t, strings.TrimRight(result.Get(t), "\n")))
		}
		text = strings.Join(parts, "\n\n")
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	green := color.New(color.FgGreen)

	if outputFile == "" {
		fmt.Print(text)
	} else {
		if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
			return fmt.Errorf("write %s: %w", outputFile, err)
		}
		green.Fprintf(os.Stderr, "💾 Wrote %s\n", outputFile)
	}

	if reportFile != "" {
		name := source
		if source != "-" {
			name = filepath.Base(source)
		}
		report := formatter.ToMarkdown(name, result.Outputs(), result.Diagnostics)
		if err := os.WriteFile(reportFile, []byte(report), 0644); err != nil {
			return fmt.Errorf("write %s: %w", reportFile, err)
		}
		green.Fprintf(os.Stderr, "📝 Wrote report %s\n", reportFile)
	}

	if copyOutput {
		if err := clipboard.WriteAll(result.Get(targets[0])); err != nil {
			return &copyError{err}
		}
		green.Fprintln(os.Stderr, "📋 Copied to clipboard")
	}

	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := convertOptions(cfg)
	if err != nil {
		return err
	}

	var targets []svg2jsx.Target
	for _, name := range strings.Split(batchTargets, ",") {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		t, err := svg2jsx.ParseTarget(name)
		if err != nil {
			return err
		}
		targets = append(targets, t)
	}

	sources, err := batch.CollectSources(args)
	if err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	cyan.Fprintf(os.Stderr, "\n🎨 Converting %d SVG source(s) into %s\n\n", len(sources), outDir)

	ctx, cancel := signalContext()
	defer cancel()

	// Per-file progress would interleave; keep batch logging to warnings and errors.
	opts.Logger = &cliLogger{quiet: true}

	result, err := batch.Run(ctx, sources, batch.Config{
		OutputDir:    outDir,
		Targets:      targets,
		NameFromFile: nameFromFile,
		Parallel:     cfg.Parallel,
		Options:      opts,
	})
	if err != nil {
		return err
	}

	for _, a := range result.Assets {
		fmt.Fprintf(os.Stderr, "  • %s → %s\n", a.Source, a.FileName)
	}
	for _, e := range result.Errors {
		opts.Logger.Errorf("%v", e)
	}

	green := color.New(color.FgGreen)
	green.Fprintf(os.Stderr, "\n✨ Wrote %d file(s), %d error(s)\n\n", len(result.Assets), len(result.Errors))

	if len(result.Errors) > 0 && len(result.Assets) == 0 {
		return fmt.Errorf("no files converted")
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := convertOptions(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger := &cliLogger{}
	srv := server.New(server.Options{Convert: opts, Logger: logger})

	color.New(color.FgCyan).Fprintf(os.Stderr, "🚀 Listening on %s\n", cfg.Addr)
	return srv.Run(ctx, cfg.Addr)
}

type copyError struct{ err error }

func (e *copyError) Error() string { return "copy to clipboard: " + e.err.Error() }
func (e *copyError) Unwrap() error { return e.err }

// cliLogger implements svg2jsx.Logger with colored output on stderr, so
// that generated code on stdout stays clean.
type cliLogger struct {
	quiet bool // drop Infof
}

func (l *cliLogger) Infof(format string, args ...any) {
	if l.quiet {
		return
	}
	color.New(color.FgYellow).Fprintf(os.Stderr, format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(os.Stderr, "⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

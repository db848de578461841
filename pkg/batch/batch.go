package batch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kataras/svg2jsx"
	"github.com/kataras/svg2jsx/pkg/formatter"
	"github.com/kataras/svg2jsx/pkg/markup"
)

// Config holds configuration for a batch conversion.
type Config struct {
	OutputDir    string           // local directory, default "components"
	Targets      []svg2jsx.Target // default: react and reactNative
	NameFromFile bool             // name each component after its source file
	Parallel     int              // concurrent conversions, default 5
	Options      svg2jsx.Options
}

// Asset is a single written output file.
type Asset struct {
	Source        string
	Target        svg2jsx.Target
	ComponentName string
	FileName      string
}

// Result holds the results of a batch conversion.
type Result struct {
	Assets []Asset
	Errors []error // non-fatal per-source failures
}

const defaultParallel = 5

var fetchClient = &http.Client{Timeout: 30 * time.Second}

// CollectSources expands the given arguments into a list of sources.
// Directories contribute their *.svg files (non-recursive); files and
// http(s) URLs are kept as given. Duplicates are removed.
func CollectSources(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var sources []string

	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			sources = append(sources, s)
		}
	}

	for _, arg := range args {
		if isURL(arg) {
			add(arg)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(arg, "*.svg"))
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", arg, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}

	return sources, nil
}

// Run converts every source concurrently and writes one file per target
// into the output directory. Per-source failures are collected in
// Result.Errors; only a failure to create the output directory is fatal.
func Run(ctx context.Context, sources []string, cfg Config) (*Result, error) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "components"
	}
	if len(cfg.Targets) == 0 {
		cfg.Targets = []svg2jsx.Target{svg2jsx.TargetReact, svg2jsx.TargetReactNative}
	}
	if cfg.Parallel <= 0 {
		cfg.Parallel = defaultParallel
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %q: %w", cfg.OutputDir, err)
	}

	result := &Result{}
	usedNames := make(map[string]int) // track filename collisions

	// Convert sources concurrently with a semaphore.
	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.Parallel)
	var mu sync.Mutex

	fail := func(err error) {
		mu.Lock()
		result.Errors = append(result.Errors, err)
		mu.Unlock()
	}

	for _, src := range sources {
		wg.Add(1)
		go func(src string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			input, err := ReadSource(ctx, src)
			if err != nil {
				fail(fmt.Errorf("failed to read %s: %w", src, err))
				return
			}

			opts := cfg.Options
			if cfg.NameFromFile {
				opts.ComponentName = formatter.ToPascalCase(sourceBase(src))
			}
			componentName := opts.ComponentName
			if componentName == "" {
				componentName = "Icon"
			}

			res := svg2jsx.Convert(ctx, input, opts)

			for _, target := range cfg.Targets {
				out := res.Get(target)
				if out == svg2jsx.InvalidPlaceholder || out == svg2jsx.ErrorPlaceholder {
					fail(fmt.Errorf("failed to convert %s to %s: %s", src, target, strings.Join(res.Diagnostics, "; ")))
					continue
				}

				// Deduplicate filenames.
				fileName := buildFileName(componentName, target)
				mu.Lock()
				if count, exists := usedNames[fileName]; exists {
					ext := fileExt(fileName)
					base := strings.TrimSuffix(fileName, ext)
					usedNames[fileName] = count + 1
					fileName = fmt.Sprintf("%s-%d%s", base, count+1, ext)
				} else {
					usedNames[fileName] = 1
				}
				mu.Unlock()

				destPath := filepath.Join(cfg.OutputDir, fileName)
				if err := os.WriteFile(destPath, []byte(out), 0644); err != nil {
					fail(fmt.Errorf("failed to write %q: %w", destPath, err))
					continue
				}

				mu.Lock()
				result.Assets = append(result.Assets, Asset{
					Source:        src,
					Target:        target,
					ComponentName: componentName,
					FileName:      fileName,
				})
				mu.Unlock()
			}
		}(src)
	}

	wg.Wait()

	sort.Slice(result.Assets, func(i, j int) bool {
		return result.Assets[i].FileName < result.Assets[j].FileName
	})

	return result, nil
}

// ReadSource returns the text of a local file or an http(s) URL, decoded
// to UTF-8 from the declared charset.
func ReadSource(ctx context.Context, src string) (string, error) {
	if !isURL(src) {
		data, err := os.ReadFile(src)
		if err != nil {
			return "", err
		}
		return markup.Decode(data, "")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := fetchClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP GET failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d downloading svg", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return markup.Decode(data, resp.Header.Get("Content-Type"))
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// sourceBase returns the file name of src without directory, query or extension.
func sourceBase(src string) string {
	name := src
	if isURL(src) {
		if i := strings.IndexAny(name, "?#"); i >= 0 {
			name = name[:i]
		}
		name = path.Base(name)
	} else {
		name = filepath.Base(name)
	}
	return strings.TrimSuffix(name, path.Ext(name))
}

// buildFileName returns the output file name of a component for a target:
// Name.svg, Name.jsx or Name.native.jsx.
func buildFileName(componentName string, target svg2jsx.Target) string {
	switch target {
	case svg2jsx.TargetSVG:
		return componentName + ".svg"
	case svg2jsx.TargetReactNative:
		return componentName + ".native.jsx"
	default:
		return componentName + ".jsx"
	}
}

// fileExt is filepath.Ext aware of the two-part ".native.jsx" extension.
func fileExt(name string) string {
	if strings.HasSuffix(name, ".native.jsx") {
		return ".native.jsx"
	}
	return filepath.Ext(name)
}

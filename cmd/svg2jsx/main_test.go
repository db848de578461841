package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atotto/clipboard"
)

const testIcon = `<svg xmlns="http://www.w3.org/2000/svg" class="icon"><path fill-rule="evenodd" d="M0 0h24v24H0z"/></svg>`

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestConvertToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "arrow.svg")
	if err := os.WriteFile(in, []byte(testIcon), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		target string
		want   []string
	}{
		{"react", []string{"export const Icon = (props) => (", `className="icon"`, `fillRule="evenodd"`}},
		{"native", []string{"import { Svg, Path } from 'react-native-svg';", "<Svg>"}},
		{"svg", []string{`<svg xmlns="http://www.w3.org/2000/svg" class="icon">`, `fill-rule="evenodd"`}},
		{"all", []string{"// ---- svg ----", "// ---- react ----", "// ---- reactNative ----"}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			out := filepath.Join(dir, tt.target+".out")
			outputFile, reportFile = "", ""
			if err := execute(t, in, "-t", tt.target, "-o", out); err != nil {
				t.Fatalf("execute() error = %v", err)
			}

			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(string(data), w) {
					t.Errorf("output missing %q:\n%s", w, data)
				}
			}
		})
	}
}

func TestConvertReport(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "arrow.svg")
	if err := os.WriteFile(in, []byte(testIcon), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "Icon.jsx")
	report := filepath.Join(dir, "REPORT.md")

	outputFile, reportFile = "", ""
	if err := execute(t, in, "-o", out, "-r", report, "--component-name", "Arrow"); err != nil {
		t.Fatalf("execute() error = %v", err)
	}

	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range []string{"arrow.svg", "```jsx", "export const Arrow"} {
		if !strings.Contains(string(data), w) {
			t.Errorf("report missing %q", w)
		}
	}
}

func TestConvertErrors(t *testing.T) {
	outputFile, reportFile = "", ""

	if err := execute(t, filepath.Join(t.TempDir(), "missing.svg")); err == nil {
		t.Errorf("missing file: error = nil")
	}
	if err := execute(t, "x.svg", "-t", "vue"); err == nil {
		t.Errorf("invalid target: error = nil")
	}
	if err := execute(t, "x.svg", "--formatter", "gofmt"); err == nil {
		t.Errorf("invalid formatter: error = nil")
	}
	if err := execute(t, "x.svg", "-t", "all", "--copy"); err == nil {
		t.Errorf("--copy with all targets: error = nil")
	}
}

func TestBatch(t *testing.T) {
	src := t.TempDir()
	for _, name := range []string{"arrow-left.svg", "close.svg"} {
		if err := os.WriteFile(filepath.Join(src, name), []byte(testIcon), 0644); err != nil {
			t.Fatal(err)
		}
	}
	out := filepath.Join(t.TempDir(), "components")

	if err := execute(t, "batch", src, "--out-dir", out, "--targets", "react,native"); err != nil {
		t.Fatalf("batch error = %v", err)
	}

	for _, name := range []string{"ArrowLeft.jsx", "ArrowLeft.native.jsx", "Close.jsx", "Close.native.jsx"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestConvertCopy(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("no clipboard utility available")
	}

	in := filepath.Join(t.TempDir(), "arrow.svg")
	if err := os.WriteFile(in, []byte(testIcon), 0644); err != nil {
		t.Fatal(err)
	}

	outputFile, reportFile = "", ""
	out := filepath.Join(t.TempDir(), "Icon.jsx")
	err := execute(t, in, "-t", "native", "-o", out, "--copy")
	if err != nil {
		var copyErr *copyError
		if errors.As(err, &copyErr) {
			t.Skipf("clipboard not usable here: %v", err)
		}
		t.Fatalf("execute() error = %v", err)
	}

	got, err := clipboard.ReadAll()
	if err != nil {
		t.Skipf("clipboard not readable here: %v", err)
	}
	want, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimRight(got, "\n") != strings.TrimRight(string(want), "\n") {
		t.Errorf("clipboard = %q, want %q", got, want)
	}
}

package batch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kataras/svg2jsx"
)

const icon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M0 0h24" stroke-width="2"/></svg>`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCollectSources(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "b-arrow.svg", icon)
	b := writeFile(t, dir, "a-check.svg", icon)
	writeFile(t, dir, "notes.txt", "ignored")

	single := writeFile(t, t.TempDir(), "single.svg", icon)

	got, err := CollectSources([]string{dir, single, a, "https://example.com/x.svg"})
	if err != nil {
		t.Fatalf("CollectSources() error = %v", err)
	}

	want := []string{b, a, single, "https://example.com/x.svg"}
	if len(got) != len(want) {
		t.Fatalf("CollectSources() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CollectSources()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if _, err := CollectSources([]string{filepath.Join(dir, "missing.svg")}); err == nil {
		t.Errorf("CollectSources(missing) error = nil")
	}
}

func TestRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/remote-icon.svg" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write([]byte(icon))
	}))
	defer srv.Close()

	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "components")

	sources := []string{
		writeFile(t, in, "arrow-left.svg", icon),
		writeFile(t, in, "broken.svg", "<notsvg/>"),
		srv.URL + "/remote-icon.svg?v=1",
		srv.URL + "/missing.svg",
	}

	res, err := Run(context.Background(), sources, Config{
		OutputDir:    out,
		NameFromFile: true,
		Targets:      []svg2jsx.Target{svg2jsx.TargetReact, svg2jsx.TargetReactNative},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantFiles := []string{"ArrowLeft.jsx", "ArrowLeft.native.jsx", "RemoteIcon.jsx", "RemoteIcon.native.jsx"}
	if len(res.Assets) != len(wantFiles) {
		t.Fatalf("Run() wrote %d assets, want %d: %+v", len(res.Assets), len(wantFiles), res.Assets)
	}
	for i, name := range wantFiles {
		if res.Assets[i].FileName != name {
			t.Errorf("Assets[%d].FileName = %q, want %q", i, res.Assets[i].FileName, name)
		}
	}

	// broken.svg fails for both targets, missing.svg fails to download.
	if len(res.Errors) != 3 {
		t.Errorf("Run() errors = %v, want 3", res.Errors)
	}

	data, err := os.ReadFile(filepath.Join(out, "ArrowLeft.native.jsx"))
	if err != nil {
		t.Fatal(err)
	}
	src := string(data)
	if !strings.HasPrefix(src, "import { Svg, Path } from 'react-native-svg';") {
		t.Errorf("native file missing import:\n%s", src)
	}
	if !strings.Contains(src, "export const ArrowLeft = (props) => (") {
		t.Errorf("native file not named after source:\n%s", src)
	}
}

func TestRunDeduplicatesFileNames(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	sources := []string{
		writeFile(t, in, "one.svg", icon),
		writeFile(t, in, "two.svg", icon),
	}

	res, err := Run(context.Background(), sources, Config{
		OutputDir: out,
		Targets:   []svg2jsx.Target{svg2jsx.TargetSVG},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("Run() errors = %v", res.Errors)
	}

	got := []string{res.Assets[0].FileName, res.Assets[1].FileName}
	if got[0] != "Icon-2.svg" || got[1] != "Icon.svg" {
		t.Errorf("file names = %v, want [Icon-2.svg Icon.svg]", got)
	}
}

func TestBuildFileName(t *testing.T) {
	tests := []struct {
		name   string
		target svg2jsx.Target
		want   string
	}{
		{"Icon", svg2jsx.TargetSVG, "Icon.svg"},
		{"Icon", svg2jsx.TargetReact, "Icon.jsx"},
		{"Icon", svg2jsx.TargetReactNative, "Icon.native.jsx"},
	}

	for _, tt := range tests {
		if got := buildFileName(tt.name, tt.target); got != tt.want {
			t.Errorf("buildFileName(%q, %q) = %q, want %q", tt.name, tt.target, got, tt.want)
		}
	}

	if got := fileExt("Icon.native.jsx"); got != ".native.jsx" {
		t.Errorf("fileExt() = %q", got)
	}
}

func TestSourceBase(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"icons/arrow-left.svg", "arrow-left"},
		{"https://cdn.example.com/i/check.svg?v=2#x", "check"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := sourceBase(tt.src); got != tt.want {
			t.Errorf("sourceBase(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestReadSourceDecodesCharset(t *testing.T) {
	latin1 := "<svg aria-label=\"caf\xe9\"/>"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml; charset=ISO-8859-1")
		w.Write([]byte(latin1))
	}))
	defer srv.Close()

	got, err := ReadSource(context.Background(), srv.URL+"/icon.svg")
	if err != nil {
		t.Fatalf("ReadSource(url) error = %v", err)
	}
	if want := `<svg aria-label="café"/>`; got != want {
		t.Errorf("ReadSource(url) = %q, want %q", got, want)
	}

	file := writeFile(t, t.TempDir(), "icon.svg", `<?xml version="1.0" encoding="ISO-8859-1"?>`+latin1)
	got, err = ReadSource(context.Background(), file)
	if err != nil {
		t.Fatalf("ReadSource(file) error = %v", err)
	}
	if !strings.HasSuffix(got, `<svg aria-label="café"/>`) {
		t.Errorf("ReadSource(file) = %q, want decoded latin-1", got)
	}
}

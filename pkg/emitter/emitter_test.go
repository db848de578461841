package emitter

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kataras/svg2jsx/pkg/markup"
	"github.com/kataras/svg2jsx/pkg/transform"
)

const icon = `<svg xmlns="http://www.w3.org/2000/svg" class="icon" viewBox="0 0 24 24">
  <defs>
    <linearGradient id="g"><stop offset="0" stop-color="#000"/></linearGradient>
  </defs>
  <g fill-rule="evenodd">
    <path d="M0 0h24" style="fill:red;stroke-width:2"/>
    <path d="M0 12h24"/>
    <foreignObject width="1" height="1"/>
  </g>
</svg>`

func mustParse(t *testing.T, s string) *markup.Element {
	t.Helper()
	root, err := markup.Parse(s)
	if err != nil {
		t.Fatalf("markup.Parse() error = %v", err)
	}
	return root
}

func TestEmit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		dialect transform.Dialect
		want    string
		usage   []string
	}{
		{
			name:    "web keeps tags",
			input:   `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1 1"><path stroke-width="2" d="M0"/></svg>`,
			dialect: transform.Web,
			want:    `<svg viewBox="0 0 1 1"><path strokeWidth="2" d="M0" /></svg>`,
		},
		{
			name:    "native capitalizes tags",
			input:   `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1 1"><path stroke-width="2" d="M0"/></svg>`,
			dialect: transform.Native,
			want:    `<Svg viewBox="0 0 1 1"><Path strokeWidth="2" d="M0" /></Svg>`,
			usage:   []string{"Svg", "Path"},
		},
		{
			name:    "self closing root",
			input:   `<svg/>`,
			dialect: transform.Web,
			want:    `<svg />`,
		},
		{
			name:    "style and class web",
			input:   `<svg><path class="a" style="fill:red;stroke-width:2"/></svg>`,
			dialect: transform.Web,
			want:    `<svg><path className="a" style={{"fill":"red","strokeWidth":"2"}} /></svg>`,
		},
		{
			name:    "class dropped native",
			input:   `<svg class="x"><path class="a" d="M0"/></svg>`,
			dialect: transform.Native,
			want:    `<Svg><Path d="M0" /></Svg>`,
			usage:   []string{"Svg", "Path"},
		},
		{
			name:    "native usage in discovery order without duplicates",
			input:   icon,
			dialect: transform.Native,
			usage:   []string{"Svg", "Defs", "LinearGradient", "Stop", "G", "Path", "ForeignObject"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, usage, err := Emit(mustParse(t, tt.input), tt.dialect)
			if err != nil {
				t.Fatalf("Emit() error = %v", err)
			}
			if tt.want != "" && got != tt.want {
				t.Errorf("Emit() = %s\nwant %s", got, tt.want)
			}
			if diff := cmp.Diff(tt.usage, usage.Names()); diff != "" {
				t.Errorf("usage mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

var openTag = regexp.MustCompile(`<[A-Za-z]`)

func TestEmitTagCountMatchesTree(t *testing.T) {
	root := mustParse(t, icon)
	want := root.Count()

	for _, d := range []transform.Dialect{transform.Web, transform.Native} {
		got, _, err := Emit(root, d)
		if err != nil {
			t.Fatalf("Emit(%v) error = %v", d, err)
		}
		if n := len(openTag.FindAllString(got, -1)); n != want {
			t.Errorf("Emit(%v) produced %d tags, want %d:\n%s", d, n, want, got)
		}
		if strings.Contains(got, "xmlns") {
			t.Errorf("Emit(%v) kept xmlns: %s", d, got)
		}
	}
}

func TestEmitDeterministic(t *testing.T) {
	root := mustParse(t, icon)
	for _, d := range []transform.Dialect{transform.Web, transform.Native} {
		first, _, _ := Emit(root, d)
		for i := 0; i < 10; i++ {
			again, _, _ := Emit(root, d)
			if again != first {
				t.Fatalf("Emit(%v) not deterministic:\n%s\n%s", d, first, again)
			}
		}
	}
}

func TestEmitUsageNotShared(t *testing.T) {
	_, a, _ := Emit(mustParse(t, `<svg><path/></svg>`), transform.Native)
	_, b, _ := Emit(mustParse(t, `<svg><circle/></svg>`), transform.Native)

	if a.Has("Circle") || b.Has("Path") {
		t.Errorf("usage sets leaked between calls: %v %v", a.Names(), b.Names())
	}

	_, w, _ := Emit(mustParse(t, `<svg><path/></svg>`), transform.Web)
	if w.Len() != 0 {
		t.Errorf("web usage = %v, want empty", w.Names())
	}
}

func TestEmitConversionError(t *testing.T) {
	tests := []struct {
		name string
		root *markup.Element
	}{
		{name: "nil root", root: nil},
		{name: "nil child", root: &markup.Element{Name: "svg", Children: []*markup.Element{nil}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, usage, err := Emit(tt.root, transform.Native)
			var ce *ConversionError
			if !errors.As(err, &ce) {
				t.Fatalf("Emit() error = %v, want *ConversionError", err)
			}
			if out != "" || usage != nil {
				t.Errorf("Emit() = %q, %v; want empty results on error", out, usage)
			}
		})
	}
}

func TestTagName(t *testing.T) {
	tests := []struct {
		in      string
		dialect transform.Dialect
		want    string
	}{
		{"svg", transform.Web, "svg"},
		{"linearGradient", transform.Web, "linearGradient"},
		{"svg", transform.Native, "Svg"},
		{"linearGradient", transform.Native, "LinearGradient"},
		{"foreignObject", transform.Native, "ForeignObject"},
		{"g", transform.Native, "G"},
		{"", transform.Native, ""},
	}

	for _, tt := range tests {
		if got := TagName(tt.in, tt.dialect); got != tt.want {
			t.Errorf("TagName(%q, %v) = %q, want %q", tt.in, tt.dialect, got, tt.want)
		}
	}
}

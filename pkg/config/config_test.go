package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "svg2jsx.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
	if cfg.Debounce != 800*time.Millisecond || cfg.PrintWidth != 80 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
component_name: ArrowIcon
formatter: none
debounce: 250ms
target: native
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ComponentName != "ArrowIcon" {
		t.Errorf("ComponentName = %q", cfg.ComponentName)
	}
	if cfg.Formatter != "none" {
		t.Errorf("Formatter = %q", cfg.Formatter)
	}
	if cfg.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v", cfg.Debounce)
	}
	if cfg.Target != "native" {
		t.Errorf("Target = %q", cfg.Target)
	}
	// untouched keys keep defaults
	if cfg.PropsName != "props" || cfg.Parallel != 5 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "bad formatter", body: "formatter: gofmt\n", wantMsg: "formatter"},
		{name: "bad identifier", body: "component_name: 1Icon\n", wantMsg: "component_name"},
		{name: "bad width", body: "print_width: 0\n", wantMsg: "print_width"},
		{name: "bad target", body: "target: vue\n", wantMsg: "target"},
		{name: "bad yaml", body: "formatter: [\n", wantMsg: "parse config"},
		{name: "bad duration", body: "debounce: soon\n", wantMsg: "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatalf("Load() error = nil, want error mentioning %q", tt.wantMsg)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.wantMsg)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Load(missing) error = nil")
	}
}

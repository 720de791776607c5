package config

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDesignFilesDefaultGlobs(t *testing.T) {
	root := t.TempDir()

	top := filepath.Join(root, "top.hcl")
	alu := filepath.Join(root, "rtl", "alu.hcl")
	deep := filepath.Join(root, "rtl", "core", "fifo.hcl")
	writeFile(t, top, "")
	writeFile(t, alu, "")
	writeFile(t, deep, "")
	writeFile(t, filepath.Join(root, "rtl", "notes.txt"), "")

	files, err := DefaultConfig().DesignFiles(root)
	if err != nil {
		t.Fatalf("DesignFiles: %v", err)
	}

	want := []string{top, alu, deep}
	for i := range want {
		want[i] = filepath.Clean(want[i])
	}
	slices.Sort(want)

	if !reflect.DeepEqual(files, want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
}

func TestDesignFilesExplicitPattern(t *testing.T) {
	root := t.TempDir()

	alu := filepath.Join(root, "rtl", "alu.hcl")
	writeFile(t, alu, "")
	writeFile(t, filepath.Join(root, "sim", "tb.hcl"), "")

	cfg := Config{Designs: []string{"rtl/*.hcl", "rtl/alu.hcl"}}

	files, err := cfg.DesignFiles(root)
	if err != nil {
		t.Fatalf("DesignFiles: %v", err)
	}

	if len(files) != 1 || files[0] != filepath.Clean(alu) {
		t.Fatalf("expected only %s, got %v", alu, files)
	}
}

func TestMatchSuffix(t *testing.T) {
	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"a.hcl", "*.hcl", true},
		{"x/y/a.hcl", "*.hcl", true},
		{"x/rtl/a.hcl", "rtl/*.hcl", true},
		{"rtl/a.hcl", "rtl/*.hcl", true},
		{"sim/a.hcl", "rtl/*.hcl", false},
		{"a.txt", "*.hcl", false},
	}

	for _, tt := range tests {
		path := filepath.FromSlash(tt.path)
		pattern := filepath.FromSlash(tt.pattern)
		if got := matchSuffix(path, pattern); got != tt.want {
			t.Fatalf("matchSuffix(%q, %q) = %v, want %v", tt.path, tt.pattern, got, tt.want)
		}
	}
}

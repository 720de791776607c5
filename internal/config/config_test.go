package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, `{"dialect": "v17"}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if !cfg.IsV17() {
		t.Fatalf("expected v17 dialect, got %q", cfg.Dialect)
	}
	if cfg.Width != 100 {
		t.Fatalf("expected default width 100, got %d", cfg.Width)
	}
	if len(cfg.Designs) == 0 {
		t.Fatalf("expected default design globs")
	}
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, `{"dialect": "v05", "widht": 80}`)

	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected error for misspelled key")
	}
}

func TestLoadFileRejectsUnknownDialect(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, `{"dialect": "vhdl"}`)

	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected error for unknown dialect")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	cfg := DefaultConfig()
	cfg.Header = "// generated by hdl-emit"
	cfg.Width = 72

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if got.Header != cfg.Header || got.Width != 72 || got.Dialect != V05 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLoadFindsRootConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), `{"width": 64}`)

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cwd, FileName)); err == nil {
		t.Skip("working directory has its own config")
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Width != 64 {
		t.Fatalf("expected width from %s, got %d", root, cfg.Width)
	}
}

func TestOverride(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Override("v17", 0); err != nil {
		t.Fatalf("Override: %v", err)
	}
	if !cfg.IsV17() || cfg.Width != 100 {
		t.Fatalf("unexpected config after override: %+v", cfg)
	}

	if err := cfg.Override("", 60); err != nil {
		t.Fatalf("Override: %v", err)
	}
	if !cfg.IsV17() || cfg.Width != 60 {
		t.Fatalf("unexpected config after width override: %+v", cfg)
	}

	if err := cfg.Override("verilog", 0); err == nil {
		t.Fatalf("expected error for unknown dialect")
	}
}

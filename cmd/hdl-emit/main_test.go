package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robert-at-pretension-io/hdlgen/internal/config"
	"github.com/robert-at-pretension-io/hdlgen/internal/design"
	"github.com/robert-at-pretension-io/hdlgen/internal/facts"
	"github.com/robert-at-pretension-io/hdlgen/internal/policy"
)

const and2HCL = `
module "and2" {
  input "a" {}
  input "b" {}
  output "y" {}

  assign "y" {
    value = and(a, b)
  }
}

module "inv" {
  input "a" {}
  output "y" {}

  assign "y" {
    value = not(a)
  }
}
`

func TestRender(t *testing.T) {
	d, diags := design.Parse("and2.hcl", []byte(and2HCL))
	require.False(t, diags.HasErrors(), "diagnostics: %v", diags)

	cfg := config.DefaultConfig()
	cfg.Header = "generated"

	var buf bytes.Buffer
	require.NoError(t, render(context.Background(), &buf, cfg, []*design.Design{d}))

	want := "// generated\n" +
		"module and2 (input wire a, input wire b, output wire y);\n" +
		"    assign y = a & b;\n" +
		"endmodule\n" +
		"\n" +
		"// generated\n" +
		"module inv (input wire a, output wire y);\n" +
		"    assign y = ~a;\n" +
		"endmodule\n"
	require.Equal(t, want, buf.String())

	require.NoError(t, cfg.Override(config.V17, 0))
	buf.Reset()
	require.NoError(t, render(context.Background(), &buf, cfg, []*design.Design{d}))
	require.Contains(t, buf.String(), "module and2 (input logic a, input logic b, output logic y);")
}

func TestLoadDesigns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "and2.hcl")
	require.NoError(t, os.WriteFile(path, []byte(and2HCL), 0o644))

	ds, err := loadDesigns(context.Background(), config.DefaultConfig(), []string{path})
	require.NoError(t, err)
	require.Len(t, ds, 1)
	require.Len(t, ds[0].Modules, 2)

	_, err = loadDesigns(context.Background(), config.DefaultConfig(), []string{filepath.Join(dir, "missing.hcl")})
	require.Error(t, err)
}

func TestWriteAndReadTables(t *testing.T) {
	d, diags := design.Parse("and2.hcl", []byte(and2HCL))
	require.False(t, diags.HasErrors(), "diagnostics: %v", diags)

	path := filepath.Join(t.TempDir(), "facts.json")

	want := facts.BuildTables(d)
	require.NoError(t, writeJSON(path, want))

	got, err := readTables(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestPrintViolations(t *testing.T) {
	result := &policy.Result{Violations: []policy.Violation{{
		Rule:     "unknown_module",
		Severity: "warning",
		Module:   "top",
		Name:     "u1",
		Message:  "instance u1 targets ram, which is not defined here",
	}}}

	var buf bytes.Buffer
	require.NoError(t, printViolations(&buf, result))
	require.Equal(t, "top: u1: warning: instance u1 targets ram, which is not defined here [unknown_module]\n", buf.String())
}

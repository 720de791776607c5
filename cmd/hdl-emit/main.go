// =============================================================================
// hdl-emit - Main Entry Point
// =============================================================================
//
// This tool turns declarative HCL netlists into Verilog-2005 or
// SystemVerilog-2017 source, and can dump the same designs as relational
// fact tables for scripting.
//
// THE PIPELINE:
//   1. Config is loaded and checked against the CUE contract
//   2. HCL design files are decoded into the design model
//   3. The model is lowered to v05 or v17 module trees
//   4. The pretty printer lays each module out at the configured width
//
// The lint command runs Rego rules (OPA) over the fact tables instead of
// rendering.
//
// WHEN OUTPUT LOOKS WRONG:
//   Decode first (hdl-emit facts), then lowering, then rendering.
// =============================================================================

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/robert-at-pretension-io/hdlgen/internal/config"
	"github.com/robert-at-pretension-io/hdlgen/internal/design"
	"github.com/robert-at-pretension-io/hdlgen/internal/facts"
	"github.com/robert-at-pretension-io/hdlgen/internal/policy"
	"github.com/robert-at-pretension-io/hdlgen/internal/validator"
	"github.com/robert-at-pretension-io/hdlgen/pretty"
)

func main() {
	initCmd := &cli.Command{
		Name:        "init",
		Description: "write hdlgen.json with the default settings",
		Action:      initAct,
		Flags: []*cli.Flag{
			cli.NewFlag("force,f", false, "overwrite an existing file"),
		},
	}

	renderCmd := &cli.Command{
		Name:        "render",
		Description: "render design files as HDL source",
		Action:      renderAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			configFlag(),
			cli.NewFlag("dialect,d", "", "output dialect: v05 or v17"),
			cli.NewFlag("width,w", 0, "layout width in columns"),
		},
	}

	factsCmd := &cli.Command{
		Name:        "facts",
		Description: "print design inventory as JSON tables",
		Action:      factsAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			configFlag(),
			cli.NewFlag("output,o", "", "write facts JSON to file (default: stdout)"),
			cli.NewFlag("delta-from", "", "previous facts JSON to compute delta from"),
			cli.NewFlag("module,m", "", "keep only rows of this module"),
		},
	}

	lintCmd := &cli.Command{
		Name:        "lint",
		Description: "check designs against the builtin and extra Rego rules",
		Action:      lintAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			configFlag(),
			cli.NewFlag("policy,p", "", "directory with extra .rego rules"),
			cli.NewFlag("json", false, "print the result as JSON"),
		},
	}

	app := &cli.Command{
		Name:        "hdl-emit",
		Description: "hdl-emit renders HCL netlists as Verilog or SystemVerilog",
		Commands: []*cli.Command{
			initCmd,
			renderCmd,
			factsCmd,
			lintCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func configFlag() *cli.Flag {
	return cli.NewFlag("config,c", "", "config file (default: search for hdlgen.json)")
}

func initAct(c *cli.Command) error {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())
	tr := tlog.SpanFromContext(ctx)

	if _, err := os.Stat(config.FileName); err == nil && !c.Bool("force") {
		return errors.New("%v already exists", config.FileName)
	}

	if err := config.DefaultConfig().Save(config.FileName); err != nil {
		return errors.Wrap(err, "save config")
	}

	tr.Printw("config written", "path", config.FileName)

	return nil
}

func renderAct(c *cli.Command) error {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	cfg, err := loadConfig(ctx, c.String("config"))
	if err != nil {
		return err
	}

	if err := cfg.Override(c.String("dialect"), c.Int("width")); err != nil {
		return err
	}

	designs, err := loadDesigns(ctx, cfg, c.Args)
	if err != nil {
		return err
	}

	return render(ctx, os.Stdout, cfg, designs)
}

func render(ctx context.Context, w io.Writer, cfg *config.Config, designs []*design.Design) error {
	tr := tlog.SpanFromContext(ctx)

	var mods []pretty.Printer

	for _, d := range designs {
		if cfg.IsV17() {
			for _, m := range d.ToV17() {
				mods = append(mods, m)
			}
		} else {
			for _, m := range d.ToV05() {
				mods = append(mods, m)
			}
		}
	}

	for i, m := range mods {
		if i != 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return errors.Wrap(err, "write")
			}
		}

		if cfg.Header != "" {
			if _, err := fmt.Fprintf(w, "// %s\n", cfg.Header); err != nil {
				return errors.Wrap(err, "write")
			}
		}

		if _, err := fmt.Fprintln(w, pretty.String(m, cfg.Width)); err != nil {
			return errors.Wrap(err, "write")
		}
	}

	tr.Printw("rendered", "modules", len(mods), "dialect", cfg.Dialect, "width", cfg.Width)

	return nil
}

func factsAct(c *cli.Command) error {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	cfg, err := loadConfig(ctx, c.String("config"))
	if err != nil {
		return err
	}

	designs, err := loadDesigns(ctx, cfg, c.Args)
	if err != nil {
		return err
	}

	tables := facts.BuildTables(designs...)

	v, err := validator.New()
	if err != nil {
		return errors.Wrap(err, "validator")
	}

	if err := v.ValidateFacts(tables); err != nil {
		return errors.Wrap(err, "facts contract")
	}

	var out any = tables

	if prev := c.String("delta-from"); prev != "" {
		old, err := readTables(prev)
		if err != nil {
			return err
		}

		out = facts.ComputeDelta(old, tables)
	}

	if name := c.String("module"); name != "" {
		keep := map[string]bool{name: true}

		switch x := out.(type) {
		case facts.Tables:
			out = facts.FilterTablesByModules(x, keep)
		case facts.Delta:
			out = facts.FilterDeltaByModules(x, keep)
		}
	}

	return writeJSON(c.String("output"), out)
}

func lintAct(c *cli.Command) error {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())
	tr := tlog.SpanFromContext(ctx)

	cfg, err := loadConfig(ctx, c.String("config"))
	if err != nil {
		return err
	}

	designs, err := loadDesigns(ctx, cfg, c.Args)
	if err != nil {
		return err
	}

	var dirs []string
	if dir := c.String("policy"); dir != "" {
		dirs = append(dirs, dir)
	}

	engine, err := policy.New(ctx, dirs...)
	if err != nil {
		return errors.Wrap(err, "policy")
	}

	result, err := engine.Evaluate(ctx, facts.BuildTables(designs...))
	if err != nil {
		return errors.Wrap(err, "lint")
	}

	tr.Printw("lint", "violations", result.Summary.TotalViolations, "errors", result.Summary.Errors)

	if c.Bool("json") {
		err = writeJSON("", result)
	} else {
		err = printViolations(os.Stdout, result)
	}
	if err != nil {
		return err
	}

	if result.Summary.Errors > 0 {
		return errors.New("%d lint errors", result.Summary.Errors)
	}

	return nil
}

func printViolations(w io.Writer, result *policy.Result) error {
	for _, v := range result.Violations {
		_, err := fmt.Fprintf(w, "%s: %s: %s: %s [%s]\n", v.Module, v.Name, v.Severity, v.Message, v.Rule)
		if err != nil {
			return errors.Wrap(err, "write")
		}
	}

	return nil
}

func loadConfig(ctx context.Context, path string) (cfg *config.Config, err error) {
	tr := tlog.SpanFromContext(ctx)

	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		path = "."
		cfg, err = config.Load(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	tr.Printw("config", "path", path, "dialect", cfg.Dialect, "width", cfg.Width)

	return cfg, nil
}

// loadDesigns decodes the files named on the command line, or the files
// matched by the config's design globs when there are none.
func loadDesigns(ctx context.Context, cfg *config.Config, args []string) ([]*design.Design, error) {
	tr := tlog.SpanFromContext(ctx)

	files := args
	if len(files) == 0 {
		var err error

		files, err = cfg.DesignFiles(".")
		if err != nil {
			return nil, errors.Wrap(err, "design files")
		}
	}

	if len(files) == 0 {
		return nil, errors.New("no design files")
	}

	designs := make([]*design.Design, 0, len(files))

	for _, f := range files {
		d, err := design.LoadFile(f)
		if err != nil {
			return nil, err
		}

		tr.Printw("design loaded", "file", f, "modules", len(d.Modules))

		designs = append(designs, d)
	}

	return designs, nil
}

func readTables(path string) (facts.Tables, error) {
	var tables facts.Tables

	data, err := os.ReadFile(path)
	if err != nil {
		return tables, errors.Wrap(err, "read facts %v", path)
	}

	if err := json.Unmarshal(data, &tables); err != nil {
		return tables, errors.Wrap(err, "parse facts %v", path)
	}

	return tables, nil
}

func writeJSON(path string, payload any) error {
	w := io.Writer(os.Stdout)

	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "create %v", path)
		}
		defer f.Close()

		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(payload); err != nil {
		return errors.Wrap(err, "encode facts")
	}

	return nil
}

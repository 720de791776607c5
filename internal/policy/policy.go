package policy

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/open-policy-agent/opa/v1/rego"
	"tlog.app/go/errors"

	"github.com/robert-at-pretension-io/hdlgen/internal/facts"
)

//go:embed rules/*.rego
var builtin embed.FS

// Query roots; extra policies join the builtin package to add rules.
const (
	ViolationsQuery = "data.hdlgen.lint.all_violations"
	SummaryQuery    = "data.hdlgen.lint.summary"
)

// Engine evaluates Rego lint rules against design fact tables.
type Engine struct {
	queries map[string]rego.PreparedEvalQuery
}

// Violation represents a policy violation
type Violation struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Module   string `json:"module"`
	Name     string `json:"name"`
	Message  string `json:"message"`
}

// Result contains the evaluation results
type Result struct {
	Violations []Violation `json:"violations"`
	Summary    Summary     `json:"summary"`
}

// Summary provides aggregate counts
type Summary struct {
	TotalViolations int `json:"total_violations"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Info            int `json:"info"`
}

// New prepares the builtin rules plus every .rego file in policyDirs.
func New(ctx context.Context, policyDirs ...string) (*Engine, error) {
	engine := &Engine{
		queries: make(map[string]rego.PreparedEvalQuery),
	}

	modules, err := builtinModules()
	if err != nil {
		return nil, err
	}

	for _, dir := range policyDirs {
		files, err := filepath.Glob(filepath.Join(dir, "*.rego"))
		if err != nil {
			return nil, errors.Wrap(err, "finding policy files")
		}

		if len(files) == 0 {
			return nil, errors.New("no policy files found in %v", dir)
		}

		for _, f := range files {
			content, err := os.ReadFile(f)
			if err != nil {
				return nil, errors.Wrap(err, "reading %v", f)
			}
			modules = append(modules, rego.Module(f, string(content)))
		}
	}

	for key, q := range map[string]string{"violations": ViolationsQuery, "summary": SummaryQuery} {
		opts := append(modules[:len(modules):len(modules)], rego.Query(q))

		query, err := rego.New(opts...).PrepareForEval(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "preparing %v query", key)
		}
		engine.queries[key] = query
	}

	return engine, nil
}

func builtinModules() ([]func(*rego.Rego), error) {
	files, err := fs.Glob(builtin, "rules/*.rego")
	if err != nil {
		return nil, errors.Wrap(err, "finding builtin rules")
	}

	var modules []func(*rego.Rego)
	for _, f := range files {
		content, err := builtin.ReadFile(f)
		if err != nil {
			return nil, errors.Wrap(err, "reading %v", f)
		}
		modules = append(modules, rego.Module(f, string(content)))
	}

	return modules, nil
}

// Evaluate runs the policies against the tables.
func (e *Engine) Evaluate(ctx context.Context, tables facts.Tables) (*Result, error) {
	// OPA wants plain JSON values, keyed the way the tables marshal.
	inputMap, err := structToMap(tables)
	if err != nil {
		return nil, errors.Wrap(err, "converting input")
	}

	result := &Result{Violations: []Violation{}}

	rs, err := e.queries["violations"].Eval(ctx, rego.EvalInput(inputMap))
	if err != nil {
		return nil, errors.Wrap(err, "evaluating violations")
	}

	if len(rs) > 0 && len(rs[0].Expressions) > 0 {
		violations, ok := rs[0].Expressions[0].Value.([]interface{})
		if ok {
			for _, v := range violations {
				vmap, ok := v.(map[string]interface{})
				if !ok {
					continue
				}
				result.Violations = append(result.Violations, Violation{
					Rule:     getString(vmap, "rule"),
					Severity: getString(vmap, "severity"),
					Module:   getString(vmap, "module"),
					Name:     getString(vmap, "name"),
					Message:  getString(vmap, "message"),
				})
			}
		}
	}

	sort.SliceStable(result.Violations, func(i, j int) bool {
		a, b := result.Violations[i], result.Violations[j]
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Rule < b.Rule
	})

	rs, err = e.queries["summary"].Eval(ctx, rego.EvalInput(inputMap))
	if err != nil {
		return nil, errors.Wrap(err, "evaluating summary")
	}

	if len(rs) > 0 && len(rs[0].Expressions) > 0 {
		smap, ok := rs[0].Expressions[0].Value.(map[string]interface{})
		if ok {
			result.Summary = Summary{
				TotalViolations: getInt(smap, "total_violations"),
				Errors:          getInt(smap, "errors"),
				Warnings:        getInt(smap, "warnings"),
				Info:            getInt(smap, "info"),
			}
		}
	}

	return result, nil
}

// Has reports whether a violation of rule was found.
func (r *Result) Has(rule string) bool {
	for _, v := range r.Violations {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

// Helper functions
func structToMap(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var result map[string]interface{}
	err = json.Unmarshal(data, &result)
	return result, err
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case json.Number:
			i, _ := n.Int64()
			return int(i)
		}
	}
	return 0
}

package facts

import (
	"math"
	"sort"

	"github.com/robert-at-pretension-io/hdlgen/hdl"
	"github.com/robert-at-pretension-io/hdlgen/internal/design"
	"github.com/robert-at-pretension-io/hdlgen/pretty"
)

// Tables is the relational inventory of a set of designs.
// Each slice is a relation (table) with flat rows.
type Tables struct {
	Modules   []ModuleRow   `json:"modules"`
	Ports     []PortRow     `json:"ports"`
	Params    []ParamRow    `json:"params"`
	Signals   []SignalRow   `json:"signals"`
	Instances []InstanceRow `json:"instances"`
	Bindings  []BindingRow  `json:"bindings"`
}

type ModuleRow struct {
	Name string `json:"name"`
	File string `json:"file"`
}

type PortRow struct {
	Module    string `json:"module"`
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Width     uint64 `json:"width"`
	Reg       bool   `json:"reg,omitempty"`
}

// ParamRow carries the default value as rendered source text.
type ParamRow struct {
	Module string `json:"module"`
	Name   string `json:"name"`
	Value  string `json:"value"`
}

type SignalRow struct {
	Module string `json:"module"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Width  uint64 `json:"width"`
}

type InstanceRow struct {
	Module string `json:"module"`
	Name   string `json:"name"`
	Target string `json:"target"`
}

// BindingRow is one parameter override or port connection of an instance.
type BindingRow struct {
	Module   string `json:"module"`
	Instance string `json:"instance"`
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Value    string `json:"value"`
}

const (
	BindingParam = "param"
	BindingPort  = "port"

	// KindRegister marks signals declared through a register block.
	KindRegister = "register"
)

// BuildTables flattens designs into relations. Modules are ordered by name;
// the other relations keep declaration order within each module.
func BuildTables(designs ...*design.Design) Tables {
	tables := emptyTables()

	for _, d := range designs {
		if d == nil {
			continue
		}

		for _, m := range d.Modules {
			tables.Modules = append(tables.Modules, ModuleRow{Name: m.Name, File: d.File})
			tables.addModule(m)
		}
	}

	sort.SliceStable(tables.Modules, func(i, j int) bool {
		if tables.Modules[i].Name != tables.Modules[j].Name {
			return tables.Modules[i].Name < tables.Modules[j].Name
		}
		return tables.Modules[i].File < tables.Modules[j].File
	})

	return tables
}

func (t *Tables) addModule(m *design.Module) {
	for _, p := range m.Params {
		t.Params = append(t.Params, ParamRow{
			Module: m.Name,
			Name:   p.Name,
			Value:  render(p.Value),
		})
	}

	for _, p := range m.Ports {
		t.Ports = append(t.Ports, PortRow{
			Module:    m.Name,
			Name:      p.Name,
			Direction: p.Dir.String(),
			Width:     p.Width,
			Reg:       p.Reg,
		})
	}

	for _, it := range m.Items {
		switch it := it.(type) {
		case design.Signal:
			t.Signals = append(t.Signals, SignalRow{
				Module: m.Name,
				Name:   it.Name,
				Kind:   string(it.Kind),
				Width:  it.Width,
			})
		case design.Register:
			t.Signals = append(t.Signals, SignalRow{
				Module: m.Name,
				Name:   it.Name,
				Kind:   KindRegister,
				Width:  it.Width,
			})
		case design.Instance:
			t.Instances = append(t.Instances, InstanceRow{
				Module: m.Name,
				Name:   it.Name,
				Target: it.Module,
			})
			t.Bindings = append(t.Bindings, bindingRows(m.Name, it)...)
		}
	}
}

func bindingRows(module string, inst design.Instance) []BindingRow {
	rows := make([]BindingRow, 0, len(inst.Params)+len(inst.Ports))

	add := func(kind string, binds map[string]hdl.Expr) {
		for name, v := range binds {
			rows = append(rows, BindingRow{
				Module:   module,
				Instance: inst.Name,
				Kind:     kind,
				Name:     name,
				Value:    render(v),
			})
		}
	}

	add(BindingParam, inst.Params)
	add(BindingPort, inst.Ports)

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Kind != rows[j].Kind {
			return rows[i].Kind < rows[j].Kind
		}
		return rows[i].Name < rows[j].Name
	})

	return rows
}

// render prints an expression on a single line.
func render(e hdl.Expr) string {
	return pretty.String(e, math.MaxInt32)
}

func emptyTables() Tables {
	return Tables{
		Modules:   []ModuleRow{},
		Ports:     []PortRow{},
		Params:    []ParamRow{},
		Signals:   []SignalRow{},
		Instances: []InstanceRow{},
		Bindings:  []BindingRow{},
	}
}

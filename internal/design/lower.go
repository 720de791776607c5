package design

import (
	"github.com/robert-at-pretension-io/hdlgen/hdl"
	"github.com/robert-at-pretension-io/hdlgen/v05"
	"github.com/robert-at-pretension-io/hdlgen/v17"
)

// ToV05 lowers every module to the older dialect.
func (d *Design) ToV05() []*v05.Module {
	out := make([]*v05.Module, 0, len(d.Modules))
	for _, m := range d.Modules {
		out = append(out, m.ToV05())
	}

	return out
}

// ToV17 lowers every module to the newer dialect.
func (d *Design) ToV17() []*v17.Module {
	out := make([]*v17.Module, 0, len(d.Modules))
	for _, m := range d.Modules {
		out = append(out, m.ToV17())
	}

	return out
}

// ToV05 lowers m: wire and reg declarations, and one always @(posedge)
// process per register. An output driven by a register is declared
// output reg whether or not the port says so.
func (m *Module) ToV05() *v05.Module {
	out := v05.NewModule(m.Name)
	out.SetAttr(m.Attr)

	for _, p := range m.Params {
		out.AddParam(v05.NewParam(p.Name, p.Value))
	}

	for _, p := range m.Ports {
		switch {
		case p.Dir == hdl.Input:
			out.AddInput(p.Name, p.Width)
		case p.Reg, m.registered(p.Name):
			out.AddOutputReg(p.Name, p.Width)
		default:
			out.AddOutput(p.Name, p.Width)
		}
	}

	for _, it := range m.Items {
		switch it := it.(type) {
		case Signal:
			switch it.Kind {
			case KindWire:
				out.AddWire(it.Name, it.Width)
			case KindReg:
				out.AddReg(it.Name, it.Width)
			case KindInteger:
				out.AddDecl(v05.NewInt(it.Name))
			}
		case Assign:
			out.AddAssign(hdl.NewRef(it.LHS), it.Value)
		case Register:
			if _, ok := m.Port(it.Name); !ok {
				out.AddReg(it.Name, it.Width)
			}

			proc := v05.NewAlways(v05.Event{Edge: hdl.Posedge, Expr: it.Clock})
			proc.AddSeq(v05Load(it))
			out.AddAlways(proc)
		case Instance:
			out.AddInstance(it.newInstance())
		}
	}

	return out
}

func (m *Module) registered(name string) bool {
	for _, it := range m.Items {
		if r, ok := it.(Register); ok && r.Name == name {
			return true
		}
	}

	return false
}

func v05Load(r Register) v05.Sequential {
	load := v05.NewNonblkAssign(hdl.NewRef(r.Name), r.Next)
	if r.Enable == nil {
		return load
	}

	gate := v05.NewIfElse(r.Enable)
	gate.AddSeq(load)

	return gate
}

// ToV17 lowers m: every signal becomes logic, parameters are typed int and
// registers get an always_ff process.
func (m *Module) ToV17() *v17.Module {
	out := v17.NewModule(m.Name)
	out.SetAttr(m.Attr)

	for _, p := range m.Params {
		out.AddParam(v17.NewParam(p.Name, v17.NewIntTy(), p.Value))
	}

	for _, p := range m.Ports {
		if p.Dir == hdl.Input {
			out.AddInput(p.Name, p.Width)
		} else {
			out.AddOutput(p.Name, p.Width)
		}
	}

	for _, it := range m.Items {
		switch it := it.(type) {
		case Signal:
			if it.Kind == KindInteger {
				out.AddDecl(v17.NewInt(it.Name))
			} else {
				out.AddLogic(it.Name, it.Width)
			}
		case Assign:
			out.AddAssign(hdl.NewRef(it.LHS), it.Value)
		case Register:
			if _, ok := m.Port(it.Name); !ok {
				out.AddLogic(it.Name, it.Width)
			}

			proc := v17.NewAlwaysFF(v17.Event{Edge: hdl.Posedge, Expr: it.Clock})
			proc.AddSeq(v17Load(it))
			out.AddAlwaysFF(proc)
		case Instance:
			out.AddInstance(it.newInstance())
		}
	}

	return out
}

func v17Load(r Register) v17.Sequential {
	load := v17.NewNonblkAssign(hdl.NewRef(r.Name), r.Next)
	if r.Enable == nil {
		return load
	}

	gate := v17.NewIfElse(r.Enable)
	gate.AddSeq(load)

	return gate
}

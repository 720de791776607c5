// Package design reads declarative HCL netlist descriptions into a
// dialect-neutral model and lowers that model to v05 or v17 modules.
package design

import (
	"github.com/robert-at-pretension-io/hdlgen/hdl"
)

// Design is everything decoded from one file.
type Design struct {
	File    string
	Modules []*Module
}

type Module struct {
	Name   string
	Attr   hdl.Attribute
	Params []Param
	Ports  []Port
	Items  []Item
}

type Param struct {
	Name  string
	Value hdl.Expr
}

type Port struct {
	Name  string
	Dir   hdl.Direction
	Width uint64
	Reg   bool
}

// Item is a module body entry; Items keep source order.
type Item interface {
	isItem()
}

type SignalKind string

const (
	KindWire    SignalKind = "wire"
	KindReg     SignalKind = "reg"
	KindInteger SignalKind = "integer"
)

type (
	Signal struct {
		Name  string
		Kind  SignalKind
		Width uint64
	}

	Assign struct {
		LHS   string
		Value hdl.Expr
	}

	// Register is a clocked register: declaration plus the process
	// that loads Next on every rising Clock edge, gated by Enable if set.
	Register struct {
		Name   string
		Width  uint64
		Clock  hdl.Expr
		Next   hdl.Expr
		Enable hdl.Expr
	}

	Instance struct {
		Name   string
		Module string
		Params map[string]hdl.Expr
		Ports  map[string]hdl.Expr
	}
)

func (Signal) isItem()   {}
func (Assign) isItem()   {}
func (Register) isItem() {}
func (Instance) isItem() {}

// Port returns the port called name.
func (m *Module) Port(name string) (Port, bool) {
	for _, p := range m.Ports {
		if p.Name == name {
			return p, true
		}
	}

	return Port{}, false
}

// newInstance builds a fresh hdl.Instance; dialect modules own theirs.
func (i Instance) newInstance() *hdl.Instance {
	inst := hdl.NewInstance(i.Name, i.Module)

	for name, v := range i.Params {
		inst.AddParam(name, v)
	}

	for name, v := range i.Ports {
		inst.Connect(name, v)
	}

	return inst
}

package v05

import (
	"strconv"

	"github.com/robert-at-pretension-io/hdlgen/hdl"
)

func NewInt(name string) Decl { return Int{Name: name} }

// NewWire panics if width is zero.
func NewWire(name string, width uint64) Decl {
	return Wire{Name: name, Ty: NewWidthTy(hdl.Width(width))}
}

// NewReg panics if width is zero.
func NewReg(name string, width uint64) Decl {
	return Reg{Name: name, Ty: NewWidthTy(hdl.Width(width))}
}

func NewParam(name string, value hdl.Expr) Decl { return Param{Name: name, Value: value} }

// NewParamUint declares a parameter holding a 32-bit decimal literal.
func NewParamUint(name string, value uint32) Decl {
	return NewParam(name, hdl.NewULitDec(32, strconv.FormatUint(uint64(value), 10)))
}

func NewParamStr(name, value string) Decl { return NewParam(name, hdl.NewStr(value)) }

func NewInput(name string, width uint64) Port { return hdl.NewInput(NewWire(name, width)) }

func NewOutput(name string, width uint64) Port { return hdl.NewOutput(NewWire(name, width)) }

func NewOutputReg(name string, width uint64) Port { return hdl.NewOutput(NewReg(name, width)) }

func NewPosedge(name string) Sequential {
	return Event{Edge: hdl.Posedge, Expr: hdl.NewRef(name)}
}

func NewNegedge(name string) Sequential {
	return Event{Edge: hdl.Negedge, Expr: hdl.NewRef(name)}
}

func NewBlkAssign(lhs, rhs hdl.Expr) Sequential {
	return Assign{LHS: lhs, RHS: rhs, Kind: hdl.Blocking}
}

func NewNonblkAssign(lhs, rhs hdl.Expr) Sequential {
	return Assign{LHS: lhs, RHS: rhs, Kind: hdl.NonBlocking}
}

// NewCall builds a task call statement, e.g. NewCall("$display", hdl.NewStr("x")).
func NewCall(name string, args ...hdl.Expr) Sequential {
	return Call{Name: name, Args: append([]hdl.Expr(nil), args...)}
}

func NewCase(cond hdl.Expr) Case { return Case{hdl.NewCase[Sequential](cond)} }

func NewBranch(cond hdl.Expr) *Branch { return hdl.NewCaseBranch[Sequential](cond) }

func NewDefault() *Deflt { return hdl.NewCaseDefault[Sequential]() }

func NewAssign(lhs, rhs hdl.Expr) Parallel { return ContAssign{LHS: lhs, RHS: rhs} }

func DeclStmt(d Decl) Stmt { return hdl.DeclStmt[Decl, Parallel](d) }

func ParallelStmt(p Parallel) Stmt { return hdl.ParallelStmt[Decl](p) }

func AlwaysStmt(a *Always) Stmt { return ParallelStmt(a) }

func InstanceStmt(inst *hdl.Instance) Stmt { return ParallelStmt(Inst{inst}) }

// Module is a v05 module.
type Module struct {
	*hdl.Module[Decl, Parallel]
}

func NewModule(name string) *Module {
	return &Module{hdl.NewModule[Decl, Parallel](name)}
}

func (m *Module) AddParamUint(name string, value uint32) { m.AddParam(NewParamUint(name, value)) }

func (m *Module) AddParamStr(name, value string) { m.AddParam(NewParamStr(name, value)) }

func (m *Module) AddInput(name string, width uint64) { m.AddPort(NewInput(name, width)) }

func (m *Module) AddOutput(name string, width uint64) { m.AddPort(NewOutput(name, width)) }

func (m *Module) AddOutputReg(name string, width uint64) { m.AddPort(NewOutputReg(name, width)) }

func (m *Module) AddWire(name string, width uint64) { m.AddDecl(NewWire(name, width)) }

func (m *Module) AddReg(name string, width uint64) { m.AddDecl(NewReg(name, width)) }

func (m *Module) AddInstance(inst *hdl.Instance) { m.AddStmt(InstanceStmt(inst)) }

func (m *Module) AddAssign(lhs, rhs hdl.Expr) { m.AddParallel(NewAssign(lhs, rhs)) }

func (m *Module) AddAlways(a *Always) { m.AddStmt(AlwaysStmt(a)) }

package v17

import (
	"slices"
	"strconv"

	"github.com/robert-at-pretension-io/hdlgen/hdl"
)

func NewInt(name string) Decl { return Int{Name: name} }

// NewLogic panics if width is zero.
func NewLogic(name string, width uint64) Decl {
	return Logic{Name: name, Ty: NewWidthTy(hdl.Width(width))}
}

func NewParam(name string, ty Ty, value hdl.Expr) Decl {
	return Param{Name: name, Ty: ty, Value: value}
}

// NewParamUint declares an int parameter holding a 32-bit decimal literal.
func NewParamUint(name string, value uint32) Decl {
	return NewParam(name, NewIntTy(), hdl.NewULitDec(32, strconv.FormatUint(uint64(value), 10)))
}

func NewFunction(name string, ret Ty) *Function {
	return &Function{hdl.NewFunction[Decl, Sequential](name, ret)}
}

func NewInput(name string, width uint64) Port { return hdl.NewInput(NewLogic(name, width)) }

func NewOutput(name string, width uint64) Port { return hdl.NewOutput(NewLogic(name, width)) }

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

func NewCall(name string, args ...hdl.Expr) Sequential {
	return Call{Name: name, Args: slices.Clone(args)}
}

func NewCase(cond hdl.Expr) Case { return Case{hdl.NewCase[Sequential](cond)} }

func NewBranch(cond hdl.Expr) *Branch { return hdl.NewCaseBranch[Sequential](cond) }

func NewDefault() *Deflt { return hdl.NewCaseDefault[Sequential]() }

func NewAssign(lhs, rhs hdl.Expr) Parallel { return ContAssign{LHS: lhs, RHS: rhs} }

func DeclStmt(d Decl) Stmt { return hdl.DeclStmt[Decl, Parallel](d) }

func ParallelStmt(p Parallel) Stmt { return hdl.ParallelStmt[Decl](p) }

func InstanceStmt(inst *hdl.Instance) Stmt { return ParallelStmt(Inst{inst}) }

type Module struct {
	*hdl.Module[Decl, Parallel]
}

func NewModule(name string) *Module {
	return &Module{hdl.NewModule[Decl, Parallel](name)}
}

func (m *Module) AddParamUint(name string, value uint32) { m.AddParam(NewParamUint(name, value)) }

func (m *Module) AddInput(name string, width uint64) { m.AddPort(NewInput(name, width)) }

func (m *Module) AddOutput(name string, width uint64) { m.AddPort(NewOutput(name, width)) }

func (m *Module) AddLogic(name string, width uint64) { m.AddDecl(NewLogic(name, width)) }

func (m *Module) AddFunction(f *Function) { m.AddDecl(f) }

func (m *Module) AddInstance(inst *hdl.Instance) { m.AddStmt(InstanceStmt(inst)) }

func (m *Module) AddAssign(lhs, rhs hdl.Expr) { m.AddParallel(NewAssign(lhs, rhs)) }

func (m *Module) AddAlwaysComb(p *AlwaysComb) { m.AddParallel(p) }

func (m *Module) AddAlwaysFF(p *AlwaysFF) { m.AddParallel(p) }

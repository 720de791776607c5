// Package v05 is the older, Verilog-2005 flavoured dialect: wires and regs,
// a single always process, blocking and non-blocking assignment.
package v05

import (
	"slices"

	"github.com/robert-at-pretension-io/hdlgen/hdl"
	"github.com/robert-at-pretension-io/hdlgen/pretty"
)

type (
	Port   = hdl.Port[Decl]
	Stmt   = hdl.Stmt[Decl, Parallel]
	Branch = hdl.CaseBranch[Sequential]
	Deflt  = hdl.CaseDefault[Sequential]
)

type tyKind uint8

const (
	tyInt tyKind = iota
	tyWidth
)

// Ty is either an unconstrained integer or a fixed width vector.
type Ty struct {
	kind  tyKind
	width hdl.Width
}

func NewIntTy() Ty { return Ty{kind: tyInt} }

// NewWidthTy panics if w is zero.
func NewWidthTy(w hdl.Width) Ty {
	return Ty{kind: tyWidth, width: hdl.NewWidth(uint64(w))}
}

func (t Ty) IsInt() bool { return t.kind == tyInt }

func (t Ty) Width() (hdl.Width, bool) {
	return t.width, t.kind == tyWidth
}

func (t Ty) MustWidth() hdl.Width {
	w, ok := t.Width()
	if !ok {
		panic("v05: type does not support width")
	}

	return w
}

func (t Ty) rng() pretty.Doc {
	if t.kind == tyInt {
		return pretty.Nil()
	}

	return t.width.Doc()
}

// Decl is the v05 declaration set: Int, Wire, Reg and Param.
type Decl interface {
	hdl.Declaration
	isDecl()
}

type (
	Int struct {
		Name string
	}

	Wire struct {
		Name string
		Ty   Ty
	}

	Reg struct {
		Name string
		Ty   Ty
	}

	Param struct {
		Name  string
		Value hdl.Expr
	}
)

func (Int) isDecl()   {}
func (Wire) isDecl()  {}
func (Reg) isDecl()   {}
func (Param) isDecl() {}

func (d Int) Doc() pretty.Doc { return pretty.Text("integer " + d.Name) }

func (d Wire) Doc() pretty.Doc {
	return pretty.Words(pretty.Text("wire"), d.Ty.rng(), pretty.Text(d.Name))
}

func (d Reg) Doc() pretty.Doc {
	return pretty.Words(pretty.Text("reg"), d.Ty.rng(), pretty.Text(d.Name))
}

func (d Param) Doc() pretty.Doc {
	return pretty.Concat(pretty.Text("parameter "+d.Name+" = "), d.Value.Doc())
}

func (d Int) DeclDoc() pretty.Doc   { return terminated(d) }
func (d Wire) DeclDoc() pretty.Doc  { return terminated(d) }
func (d Reg) DeclDoc() pretty.Doc   { return terminated(d) }
func (d Param) DeclDoc() pretty.Doc { return terminated(d) }

func terminated(p pretty.Printer) pretty.Doc {
	return pretty.Concat(p.Doc(), pretty.Text(";"))
}

// Sequential is a statement inside an always process.
type Sequential interface {
	pretty.Printer
	isSequential()
}

type (
	// Wildcard is the implicit sensitivity list, @(*).
	Wildcard struct{}

	// Event waits for an edge of Expr.
	Event struct {
		Edge hdl.EventTy
		Expr hdl.Expr
	}

	// Assign is a procedural assignment.
	Assign struct {
		LHS  hdl.Expr
		RHS  hdl.Expr
		Kind hdl.AssignTy
	}

	// Call is a task call statement such as $display("x").
	Call struct {
		Name string
		Args []hdl.Expr
	}

	Case struct {
		*hdl.Case[Sequential]
	}
)

func (Wildcard) isSequential() {}
func (Event) isSequential()    {}
func (Assign) isSequential()   {}
func (Call) isSequential()     {}
func (Case) isSequential()     {}
func (*IfElse) isSequential()  {}

func (Wildcard) Doc() pretty.Doc { return pretty.Text("@(*);") }

func (s Event) Doc() pretty.Doc {
	return pretty.Concat(pretty.Text("@("), s.trigger(), pretty.Text(");"))
}

func (s Event) trigger() pretty.Doc {
	return pretty.Words(s.Edge.Doc(), s.Expr.Doc())
}

func (s Assign) Doc() pretty.Doc {
	return pretty.Group(pretty.Concat(
		s.LHS.Doc(),
		pretty.Text(" "+s.Kind.String()),
		pretty.Nest(hdl.Indent, pretty.Concat(pretty.Line(), s.RHS.Doc())),
		pretty.Text(";"),
	))
}

func (s Call) Doc() pretty.Doc {
	return pretty.Concat(hdl.Call{Name: s.Name, Args: s.Args}.Doc(), pretty.Text(";"))
}

// IfElse is a conditional. Without a condition it is a plain begin/end
// block, which is how a multi statement else branch is spelled.
type IfElse struct {
	cond   hdl.Expr
	body   []Sequential
	elseBr Sequential
}

func NewIfElse(cond hdl.Expr) *IfElse { return &IfElse{cond: cond} }

// NewBlock is an IfElse without a condition.
func NewBlock() *IfElse { return &IfElse{} }

func (s *IfElse) Cond() (hdl.Expr, bool) { return s.cond, s.cond != nil }

func (s *IfElse) Body() []Sequential { return slices.Clone(s.body) }

func (s *IfElse) ElseBranch() (Sequential, bool) { return s.elseBr, s.elseBr != nil }

func (s *IfElse) AddSeq(seq Sequential) { s.body = append(s.body, seq) }

// SetElse sets the else branch. Another *IfElse continues the chain as
// else if, or as else begin/end when it has no condition.
func (s *IfElse) SetElse(seq Sequential) { s.elseBr = seq }

func (s *IfElse) Doc() pretty.Doc {
	if s.cond == nil {
		return hdl.Block(s.body)
	}

	d := pretty.Concat(pretty.Text("if ("), s.cond.Doc(), pretty.Text(") "), hdl.Block(s.body))
	if s.elseBr == nil {
		return d
	}

	var els pretty.Doc
	if ie, ok := s.elseBr.(*IfElse); ok {
		els = ie.Doc()
	} else {
		els = hdl.Block([]Sequential{s.elseBr})
	}

	return pretty.Concat(d, pretty.Text(" else "), els)
}

// Parallel is a concurrent module item.
type Parallel interface {
	hdl.Concurrent
	isParallel()
}

type (
	Inst struct {
		*hdl.Instance
	}

	// ContAssign is a continuous assignment.
	ContAssign struct {
		LHS hdl.Expr
		RHS hdl.Expr
	}
)

func (Inst) isParallel()       {}
func (ContAssign) isParallel() {}
func (*Always) isParallel()    {}

func (p ContAssign) Doc() pretty.Doc {
	return pretty.Group(pretty.Concat(
		pretty.Text("assign "),
		p.LHS.Doc(),
		pretty.Text(" ="),
		pretty.Nest(hdl.Indent, pretty.Concat(pretty.Line(), p.RHS.Doc())),
		pretty.Text(";"),
	))
}

// Always is an always process with a single trigger: an edge Event or
// Wildcard.
type Always struct {
	event Sequential
	body  []Sequential
}

func NewAlways(event Sequential) *Always { return &Always{event: event} }

func (p *Always) Event() Sequential { return p.event }

func (p *Always) Body() []Sequential { return slices.Clone(p.body) }

func (p *Always) AddSeq(seq Sequential) { p.body = append(p.body, seq) }

func (p *Always) Doc() pretty.Doc {
	return pretty.Concat(
		pretty.Text("always @("), trigger(p.event), pretty.Text(") "),
		hdl.Block(p.body),
	)
}

func trigger(s Sequential) pretty.Doc {
	switch s := s.(type) {
	case Event:
		return s.trigger()
	case Wildcard:
		return pretty.Text("*")
	}

	return s.Doc()
}

// ID names the item: the instance name or the assigned signal.
// Always processes have no name.
func ID(p Parallel) (string, bool) {
	switch p := p.(type) {
	case Inst:
		return p.ID(), true
	case ContAssign:
		return hdl.RefName(p.LHS)
	}

	return "", false
}

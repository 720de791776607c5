// Package v17 is the newer, SystemVerilog-2017 flavoured dialect: logic
// signals, typed parameters, functions, assertions and the dedicated
// always_comb and always_ff processes.
package v17

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
	tyVoid tyKind = iota
	tyInt
	tyWidth
)

// Ty is void, int or a logic vector of fixed width.
type Ty struct {
	kind  tyKind
	width hdl.Width
}

func NewVoidTy() Ty { return Ty{kind: tyVoid} }

func NewIntTy() Ty { return Ty{kind: tyInt} }

// NewWidthTy panics if w is zero.
func NewWidthTy(w hdl.Width) Ty {
	return Ty{kind: tyWidth, width: hdl.NewWidth(uint64(w))}
}

func (t Ty) IsVoid() bool { return t.kind == tyVoid }

func (t Ty) IsInt() bool { return t.kind == tyInt }

func (t Ty) Width() (hdl.Width, bool) {
	return t.width, t.kind == tyWidth
}

func (t Ty) MustWidth() hdl.Width {
	w, ok := t.Width()
	if !ok {
		panic("v17: type does not support width")
	}

	return w
}

func (t Ty) Doc() pretty.Doc {
	switch t.kind {
	case tyVoid:
		return pretty.Text("void")
	case tyInt:
		return pretty.Text("int")
	}

	return pretty.Words(pretty.Text("logic"), t.width.Doc())
}

// Decl is the v17 declaration set: Int, Logic, Param and *Function.
type Decl interface {
	hdl.Declaration
	isDecl()
}

type (
	Int struct {
		Name string
	}

	Logic struct {
		Name string
		Ty   Ty
	}

	Param struct {
		Name  string
		Ty    Ty
		Value hdl.Expr
	}

	Function struct {
		*hdl.Function[Decl, Sequential, Ty]
	}
)

func (Int) isDecl()       {}
func (Logic) isDecl()     {}
func (Param) isDecl()     {}
func (*Function) isDecl() {}

func (d Int) Doc() pretty.Doc { return pretty.Text("int " + d.Name) }

func (d Logic) Doc() pretty.Doc {
	return pretty.Words(d.Ty.Doc(), pretty.Text(d.Name))
}

func (d Param) Doc() pretty.Doc {
	return pretty.Concat(
		pretty.Words(pretty.Text("parameter"), d.Ty.Doc(), pretty.Text(d.Name)),
		pretty.Text(" = "),
		d.Value.Doc(),
	)
}

func (d Int) DeclDoc() pretty.Doc   { return terminated(d) }
func (d Logic) DeclDoc() pretty.Doc { return terminated(d) }
func (d Param) DeclDoc() pretty.Doc { return terminated(d) }

// DeclDoc is the full function; endfunction closes it.
func (f *Function) DeclDoc() pretty.Doc { return f.Doc() }

func terminated(p pretty.Printer) pretty.Doc {
	return pretty.Concat(p.Doc(), pretty.Text(";"))
}

// Sequential is a statement inside a process or function body.
type Sequential interface {
	pretty.Printer
	isSequential()
}

type (
	Event struct {
		Edge hdl.EventTy
		Expr hdl.Expr
	}

	Assign struct {
		LHS  hdl.Expr
		RHS  hdl.Expr
		Kind hdl.AssignTy
	}

	Call struct {
		Name string
		Args []hdl.Expr
	}

	Case struct {
		*hdl.Case[Sequential]
	}
)

func (Event) isSequential()   {}
func (Assign) isSequential()  {}
func (Call) isSequential()    {}
func (Case) isSequential()    {}
func (*IfElse) isSequential() {}
func (*Assert) isSequential() {}

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

// IfElse is a conditional; with no condition it is a begin/end block.
type IfElse struct {
	cond   hdl.Expr
	body   []Sequential
	elseBr Sequential
}

func NewIfElse(cond hdl.Expr) *IfElse { return &IfElse{cond: cond} }

func NewBlock() *IfElse { return &IfElse{} }

func (s *IfElse) Cond() (hdl.Expr, bool) { return s.cond, s.cond != nil }

func (s *IfElse) Body() []Sequential { return slices.Clone(s.body) }

func (s *IfElse) ElseBranch() (Sequential, bool) { return s.elseBr, s.elseBr != nil }

func (s *IfElse) AddSeq(seq Sequential) { s.body = append(s.body, seq) }

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

// Assert is an immediate assertion with an optional else action.
type Assert struct {
	cond   hdl.Expr
	action Sequential
}

func NewAssert(cond hdl.Expr) *Assert { return &Assert{cond: cond} }

func (s *Assert) Cond() hdl.Expr { return s.cond }

func (s *Assert) ElseAction() (Sequential, bool) { return s.action, s.action != nil }

func (s *Assert) SetElse(seq Sequential) { s.action = seq }

func (s *Assert) Doc() pretty.Doc {
	head := pretty.Concat(pretty.Text("assert ("), s.cond.Doc(), pretty.Text(")"))
	if s.action == nil {
		return pretty.Concat(head, pretty.Text(";"))
	}

	return pretty.Concat(head, pretty.Text(" else "), s.action.Doc())
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

	ContAssign struct {
		LHS hdl.Expr
		RHS hdl.Expr
	}
)

func (Inst) isParallel()        {}
func (ContAssign) isParallel()  {}
func (*AlwaysComb) isParallel() {}
func (*AlwaysFF) isParallel()   {}

func (p ContAssign) Doc() pretty.Doc {
	return pretty.Group(pretty.Concat(
		pretty.Text("assign "),
		p.LHS.Doc(),
		pretty.Text(" ="),
		pretty.Nest(hdl.Indent, pretty.Concat(pretty.Line(), p.RHS.Doc())),
		pretty.Text(";"),
	))
}

type AlwaysComb struct {
	body []Sequential
}

func NewAlwaysComb() *AlwaysComb { return &AlwaysComb{} }

func (p *AlwaysComb) Body() []Sequential { return slices.Clone(p.body) }

func (p *AlwaysComb) AddSeq(seq Sequential) { p.body = append(p.body, seq) }

func (p *AlwaysComb) Doc() pretty.Doc {
	return pretty.Concat(pretty.Text("always_comb "), hdl.Block(p.body))
}

// AlwaysFF is a clocked process triggered by event, normally an Event.
type AlwaysFF struct {
	event Sequential
	body  []Sequential
}

func NewAlwaysFF(event Sequential) *AlwaysFF { return &AlwaysFF{event: event} }

func (p *AlwaysFF) Event() Sequential { return p.event }

func (p *AlwaysFF) Body() []Sequential { return slices.Clone(p.body) }

func (p *AlwaysFF) AddSeq(seq Sequential) { p.body = append(p.body, seq) }

func (p *AlwaysFF) Doc() pretty.Doc {
	var trig pretty.Doc
	if ev, ok := p.event.(Event); ok {
		trig = ev.trigger()
	} else {
		trig = p.event.Doc()
	}

	return pretty.Concat(
		pretty.Text("always_ff @("), trig, pretty.Text(") "),
		hdl.Block(p.body),
	)
}

// ID names the item: the instance name or the assigned signal.
func ID(p Parallel) (string, bool) {
	switch p := p.(type) {
	case Inst:
		return p.ID(), true
	case ContAssign:
		return hdl.RefName(p.LHS)
	}

	return "", false
}

package hdl

import (
	"fmt"
	"slices"

	"github.com/robert-at-pretension-io/hdlgen/pretty"
)

// Declaration is what a dialect supplies as its declaration vocabulary.
// Doc is the list form used in port and parameter lists, DeclDoc the
// statement form used in a body, terminator included.
type Declaration interface {
	pretty.Printer
	DeclDoc() pretty.Doc
}

// Concurrent is what a dialect supplies as its concurrent statement
// vocabulary. Doc renders a complete statement.
type Concurrent interface {
	pretty.Printer
}

type Direction uint8

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	switch d {
	case Input:
		return "input"
	case Output:
		return "output"
	}

	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Port is an input or output declaration.
type Port[D Declaration] struct {
	dir  Direction
	decl D
}

func NewInput[D Declaration](decl D) Port[D] { return Port[D]{dir: Input, decl: decl} }

func NewOutput[D Declaration](decl D) Port[D] { return Port[D]{dir: Output, decl: decl} }

func (p Port[D]) Dir() Direction { return p.dir }

func (p Port[D]) Decl() D { return p.decl }

func (p Port[D]) Doc() pretty.Doc {
	return pretty.Words(pretty.Text(p.dir.String()), p.decl.Doc())
}

type stmtKind uint8

const (
	declStmt stmtKind = iota
	parallelStmt
)

// Stmt is one module body item: a declaration or a concurrent statement.
type Stmt[D Declaration, P Concurrent] struct {
	kind stmtKind
	decl D
	par  P
}

func DeclStmt[D Declaration, P Concurrent](decl D) Stmt[D, P] {
	return Stmt[D, P]{kind: declStmt, decl: decl}
}

func ParallelStmt[D Declaration, P Concurrent](par P) Stmt[D, P] {
	return Stmt[D, P]{kind: parallelStmt, par: par}
}

func (s Stmt[D, P]) Decl() (d D, ok bool) {
	if s.kind != declStmt {
		return d, false
	}

	return s.decl, true
}

func (s Stmt[D, P]) Parallel() (p P, ok bool) {
	if s.kind != parallelStmt {
		return p, false
	}

	return s.par, true
}

func (s Stmt[D, P]) Doc() pretty.Doc {
	if s.kind == declStmt {
		return s.decl.DeclDoc()
	}

	return s.par.Doc()
}

// Module is the dialect independent module skeleton.
type Module[D Declaration, P Concurrent] struct {
	name   string
	params []D
	ports  []Port[D]
	body   []Stmt[D, P]
	attr   Attribute
}

func NewModule[D Declaration, P Concurrent](name string) *Module[D, P] {
	return &Module[D, P]{name: name}
}

func (m *Module[D, P]) Name() string { return m.name }

func (m *Module[D, P]) Params() []D { return slices.Clone(m.params) }

func (m *Module[D, P]) Ports() []Port[D] { return slices.Clone(m.ports) }

func (m *Module[D, P]) Body() []Stmt[D, P] { return slices.Clone(m.body) }

func (m *Module[D, P]) Attr() Attribute { return m.attr }

func (m *Module[D, P]) SetAttr(attr Attribute) { m.attr = attr }

func (m *Module[D, P]) AddParam(decl D) { m.params = append(m.params, decl) }

func (m *Module[D, P]) AddPort(port Port[D]) { m.ports = append(m.ports, port) }

func (m *Module[D, P]) AddStmt(stmt Stmt[D, P]) { m.body = append(m.body, stmt) }

func (m *Module[D, P]) AddDecl(decl D) { m.AddStmt(DeclStmt[D, P](decl)) }

func (m *Module[D, P]) AddParallel(par P) { m.AddStmt(ParallelStmt[D](par)) }

// Doc renders
//
//	module name #(params) (ports);
//	    body
//	endmodule
//
// with the parameter and port lists broken one per line when they do not fit.
func (m *Module[D, P]) Doc() pretty.Doc {
	var params pretty.Doc = pretty.Nil()
	if len(m.params) != 0 {
		params = pretty.Concat(pretty.Text(" "), pretty.List("#(", ")", Indent, Docs(m.params)))
	}

	return pretty.Concat(
		m.attr.line(),
		pretty.Text("module "+m.name),
		params,
		pretty.Text(" "),
		pretty.List("(", ");", Indent, Docs(m.ports)),
		Lines(Docs(m.body)),
		pretty.HardLine(),
		pretty.Text("endmodule"),
	)
}

// Lines puts every doc on its own line, indented one level. It is nil when
// docs is empty.
func Lines(docs []pretty.Doc) pretty.Doc {
	if len(docs) == 0 {
		return pretty.Nil()
	}

	return pretty.Nest(Indent, pretty.Concat(pretty.HardLine(), pretty.Join(pretty.HardLine(), docs)))
}

// Block renders body between begin and end.
func Block[T pretty.Printer](body []T) pretty.Doc {
	return pretty.Concat(
		pretty.Text("begin"),
		Lines(Docs(body)),
		pretty.HardLine(),
		pretty.Text("end"),
	)
}

// CaseBranch is one labelled arm of a Case.
type CaseBranch[T pretty.Printer] struct {
	cond Expr
	body []T
}

func NewCaseBranch[T pretty.Printer](cond Expr) *CaseBranch[T] {
	return &CaseBranch[T]{cond: cond}
}

func (b *CaseBranch[T]) Cond() Expr { return b.cond }

func (b *CaseBranch[T]) Body() []T { return slices.Clone(b.body) }

func (b *CaseBranch[T]) AddSeq(seq T) { b.body = append(b.body, seq) }

func (b *CaseBranch[T]) Doc() pretty.Doc {
	return pretty.Concat(b.cond.Doc(), pretty.Text(": "), Block(b.body))
}

// CaseDefault is the default arm of a Case.
type CaseDefault[T pretty.Printer] struct {
	body []T
}

func NewCaseDefault[T pretty.Printer]() *CaseDefault[T] { return &CaseDefault[T]{} }

func (d *CaseDefault[T]) Body() []T { return slices.Clone(d.body) }

func (d *CaseDefault[T]) AddSeq(seq T) { d.body = append(d.body, seq) }

func (d *CaseDefault[T]) Doc() pretty.Doc {
	return pretty.Concat(pretty.Text("default: "), Block(d.body))
}

// Case selects a branch by comparing cond against each branch label.
// T is the dialect's sequential statement type.
type Case[T pretty.Printer] struct {
	cond     Expr
	branches []*CaseBranch[T]
	def      *CaseDefault[T]
}

func NewCase[T pretty.Printer](cond Expr) *Case[T] { return &Case[T]{cond: cond} }

func (c *Case[T]) Cond() Expr { return c.cond }

// AddBranch appends b. Like every other builder the case keeps the pointer,
// so statements added to b later are rendered too.
func (c *Case[T]) AddBranch(b *CaseBranch[T]) {
	c.branches = append(c.branches, b)
}

func (c *Case[T]) SetDefault(d *CaseDefault[T]) {
	c.def = d
}

func (c *Case[T]) Branches() []*CaseBranch[T] { return slices.Clone(c.branches) }

func (c *Case[T]) Default() (*CaseDefault[T], bool) { return c.def, c.def != nil }

func (c *Case[T]) Doc() pretty.Doc {
	arms := Docs(c.branches)
	if c.def != nil {
		arms = append(arms, c.def.Doc())
	}

	return pretty.Concat(
		pretty.Text("case ("), c.cond.Doc(), pretty.Text(")"),
		Lines(arms),
		pretty.HardLine(),
		pretty.Text("endcase"),
	)
}

// Function is a function declaration with input ports, local declarations,
// a statement body and a return type R.
type Function[D Declaration, S pretty.Printer, R pretty.Printer] struct {
	name   string
	ret    R
	inputs []Port[D]
	decls  []D
	body   []S
}

func NewFunction[D Declaration, S pretty.Printer, R pretty.Printer](name string, ret R) *Function[D, S, R] {
	return &Function[D, S, R]{name: name, ret: ret}
}

func (f *Function[D, S, R]) Name() string { return f.name }

func (f *Function[D, S, R]) Ret() R { return f.ret }

func (f *Function[D, S, R]) Inputs() []Port[D] { return slices.Clone(f.inputs) }

func (f *Function[D, S, R]) Decls() []D { return slices.Clone(f.decls) }

func (f *Function[D, S, R]) Body() []S { return slices.Clone(f.body) }

func (f *Function[D, S, R]) AddInput(decl D) { f.inputs = append(f.inputs, NewInput(decl)) }

func (f *Function[D, S, R]) AddDecl(decl D) { f.decls = append(f.decls, decl) }

func (f *Function[D, S, R]) AddSeq(seq S) { f.body = append(f.body, seq) }

func (f *Function[D, S, R]) Doc() pretty.Doc {
	items := make([]pretty.Doc, 0, len(f.decls)+len(f.body))
	for _, d := range f.decls {
		items = append(items, d.DeclDoc())
	}

	items = append(items, Docs(f.body)...)

	return pretty.Concat(
		pretty.Words(pretty.Text("function"), f.ret.Doc(), pretty.Text(f.name)),
		pretty.List("(", ");", Indent, Docs(f.inputs)),
		Lines(items),
		pretty.HardLine(),
		pretty.Text("endfunction"),
	)
}

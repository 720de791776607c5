package hdl

import (
	"slices"
	"strconv"
	"strings"

	"github.com/robert-at-pretension-io/hdlgen/pretty"
)

// Expr is an immutable expression tree. Grouping is carried by the tree
// itself; the renderer only adds parentheses where the text would
// otherwise regroup.
type Expr interface {
	pretty.Printer
	isExpr()
}

type (
	// Ref names a signal, parameter or variable.
	Ref struct {
		Name string
	}

	// Int is an unsized decimal integer.
	Int struct {
		Value int32
	}

	// ULit is a sized unsigned literal, e.g. 8'hff.
	ULit struct {
		Width Width
		Radix Radix
		Value string
	}

	Str struct {
		Value string
	}

	// Signed reinterprets X as signed: $signed(X).
	Signed struct {
		X Expr
	}

	// IPath is a hierarchical reference a.b.c with an optional bit index.
	IPath struct {
		Path  []string
		Index Expr
	}

	Unary struct {
		Op Unop
		X  Expr
	}

	Binary struct {
		Op   Binop
		L, R Expr
	}

	// Ternary is Mux(cond, t, f), Slice(x, hi, lo) or IndexSlice(x, base, width).
	Ternary struct {
		Op      Terop
		A, B, C Expr
	}

	Concat struct {
		Exprs []Expr
	}

	Call struct {
		Name string
		Args []Expr
	}
)

func (Ref) isExpr()     {}
func (Int) isExpr()     {}
func (ULit) isExpr()    {}
func (Str) isExpr()     {}
func (Signed) isExpr()  {}
func (IPath) isExpr()   {}
func (Unary) isExpr()   {}
func (Binary) isExpr()  {}
func (Ternary) isExpr() {}
func (Concat) isExpr()  {}
func (Call) isExpr()    {}

func NewRef(name string) Expr { return Ref{Name: name} }

func NewInt(v int32) Expr { return Int{Value: v} }

func NewStr(v string) Expr { return Str{Value: v} }

func newULit(w Width, r Radix, v string) Expr {
	return ULit{Width: NewWidth(uint64(w)), Radix: r, Value: v}
}

// NewULitDec is a sized decimal literal. It panics if w is zero.
func NewULitDec(w Width, v string) Expr { return newULit(w, Dec, v) }

// NewULitHex is a sized hexadecimal literal. It panics if w is zero.
func NewULitHex(w Width, v string) Expr { return newULit(w, Hex, v) }

// NewULitBin is a sized binary literal. It panics if w is zero.
func NewULitBin(w Width, v string) Expr { return newULit(w, Bin, v) }

func NewSigned(x Expr) Expr { return Signed{X: x} }

// NewIPath references a signal through the instance hierarchy.
func NewIPath(path ...string) Expr {
	return IPath{Path: slices.Clone(path)}
}

// NewIPathIndex is NewIPath followed by a bit select.
func NewIPathIndex(index Expr, path ...string) Expr {
	return IPath{Path: slices.Clone(path), Index: index}
}

func NewUnop(op Unop, x Expr) Expr { return Unary{Op: op, X: x} }

func NewBinop(op Binop, l, r Expr) Expr { return Binary{Op: op, L: l, R: r} }

func NewIndexBit(x, index Expr) Expr { return Binary{Op: IndexBit, L: x, R: index} }

func NewMux(cond, t, f Expr) Expr { return Ternary{Op: Mux, A: cond, B: t, C: f} }

func NewSlice(x, hi, lo Expr) Expr { return Ternary{Op: Slice, A: x, B: hi, C: lo} }

func NewIndexSlice(x, base, width Expr) Expr {
	return Ternary{Op: IndexSlice, A: x, B: base, C: width}
}

func NewConcat(exprs ...Expr) Expr { return Concat{Exprs: slices.Clone(exprs)} }

func NewCall(name string, args ...Expr) Expr { return Call{Name: name, Args: slices.Clone(args)} }

// RefName returns the name of a bare reference.
func RefName(e Expr) (string, bool) {
	if r, ok := e.(Ref); ok {
		return r.Name, true
	}

	return "", false
}

// MustRefName is RefName for places where e is known to be a reference,
// such as the left hand side of an assignment. It panics otherwise.
func MustRefName(e Expr) string {
	name, ok := RefName(e)
	if !ok {
		panic("hdl: expression is not a reference")
	}

	return name
}

func (e Ref) Doc() pretty.Doc { return pretty.Text(e.Name) }

func (e Int) Doc() pretty.Doc { return pretty.Text(strconv.FormatInt(int64(e.Value), 10)) }

func (e ULit) Doc() pretty.Doc {
	if e.Width == 0 {
		panic(errZeroWidth)
	}

	return pretty.Textf("%d'%v%s", uint64(e.Width), e.Radix, e.Value)
}

var strEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)

func (e Str) Doc() pretty.Doc { return pretty.Text(`"` + strEscaper.Replace(e.Value) + `"`) }

func (e Signed) Doc() pretty.Doc {
	return pretty.Concat(pretty.Text("$signed("), e.X.Doc(), pretty.Text(")"))
}

func (e IPath) Doc() pretty.Doc {
	d := pretty.Text(strings.Join(e.Path, "."))
	if e.Index == nil {
		return d
	}

	return pretty.Concat(d, pretty.Text("["), e.Index.Doc(), pretty.Text("]"))
}

func (e Unary) Doc() pretty.Doc {
	return pretty.Concat(e.Op.Doc(), operand(e.X, precAtom))
}

func (e Binary) Doc() pretty.Doc {
	if e.Op == IndexBit {
		return pretty.Concat(operand(e.L, precAtom), pretty.Text("["), e.R.Doc(), pretty.Text("]"))
	}

	p := e.Op.prec()

	return pretty.Concat(
		operand(e.L, p),
		pretty.Text(" "+e.Op.String()+" "),
		operand(e.R, p+1),
	)
}

func (e Ternary) Doc() pretty.Doc {
	switch e.Op {
	case Slice:
		return pretty.Concat(operand(e.A, precAtom),
			pretty.Text("["), e.B.Doc(), pretty.Text(":"), e.C.Doc(), pretty.Text("]"))
	case IndexSlice:
		return pretty.Concat(operand(e.A, precAtom),
			pretty.Text("["), e.B.Doc(), pretty.Text(" +: "), e.C.Doc(), pretty.Text("]"))
	}

	// the false branch chains without parentheses: a ? b : c ? d : e
	return pretty.Concat(
		operand(e.A, precTernary+1),
		pretty.Text(" ? "),
		operand(e.B, precTernary+1),
		pretty.Text(" : "),
		operand(e.C, precTernary),
	)
}

func (e Concat) Doc() pretty.Doc {
	return pretty.List("{", "}", Indent, Docs(e.Exprs))
}

func (e Call) Doc() pretty.Doc {
	return pretty.Concat(pretty.Text(e.Name), pretty.List("(", ")", Indent, Docs(e.Args)))
}

func prec(e Expr) int {
	switch e := e.(type) {
	case Binary:
		return e.Op.prec()
	case Ternary:
		if e.Op == Mux {
			return precTernary
		}
	case Unary:
		return precUnary
	case Int:
		if e.Value < 0 {
			return precUnary
		}
	}

	return precAtom
}

// operand renders e, parenthesized when it binds looser than least.
func operand(e Expr, least int) pretty.Doc {
	if prec(e) < least {
		return pretty.Concat(pretty.Text("("), e.Doc(), pretty.Text(")"))
	}

	return e.Doc()
}

// Docs renders every element of xs.
func Docs[T pretty.Printer](xs []T) []pretty.Doc {
	out := make([]pretty.Doc, len(xs))
	for i, x := range xs {
		out[i] = x.Doc()
	}

	return out
}

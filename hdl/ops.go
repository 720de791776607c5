package hdl

import (
	"fmt"

	"github.com/robert-at-pretension-io/hdlgen/pretty"
)

// Unop is a prefix operator. The reduction operators share their symbol
// with the binary bitwise ones but apply to a single operand.
type Unop uint8

const (
	LogicalNegation Unop = iota
	BitwiseNegation
	BitwiseAnd
	BitwiseNand
	BitwiseOr
	BitwiseNor
	BitwiseXor
	BitwiseXnor
)

var unopSymbols = [...]string{
	LogicalNegation: "!",
	BitwiseNegation: "~",
	BitwiseAnd:      "&",
	BitwiseNand:     "~&",
	BitwiseOr:       "|",
	BitwiseNor:      "~|",
	BitwiseXor:      "^",
	BitwiseXnor:     "~^",
}

// Unops lists every unary operator.
func Unops() []Unop {
	ops := make([]Unop, len(unopSymbols))
	for i := range ops {
		ops[i] = Unop(i)
	}

	return ops
}

func (op Unop) String() string {
	if int(op) < len(unopSymbols) {
		return unopSymbols[op]
	}

	return fmt.Sprintf("Unop(%d)", uint8(op))
}

func (op Unop) Doc() pretty.Doc { return pretty.Text(op.String()) }

// Binop is an infix operator. IndexBit is the odd one out and renders as
// a bit select, l[r].
type Binop uint8

const (
	LogOr Binop = iota
	LogAnd
	BitOr
	BitXor
	BitXnor
	BitAnd
	Equal
	NotEqual
	Lt
	Gt
	Leq
	Geq
	Shl
	Shr
	Add
	Sub
	Mul
	Div
	Mod
	IndexBit
)

type binopInfo struct {
	sym  string
	prec int
}

// Binding strength, loosest first. Unary operators and atoms bind tighter
// than any binary operator.
const (
	precTernary = 1
	precUnary   = 12
	precAtom    = 13
)

var binops = [...]binopInfo{
	LogOr:    {"||", 2},
	LogAnd:   {"&&", 3},
	BitOr:    {"|", 4},
	BitXor:   {"^", 5},
	BitXnor:  {"~^", 5},
	BitAnd:   {"&", 6},
	Equal:    {"==", 7},
	NotEqual: {"!=", 7},
	Lt:       {"<", 8},
	Gt:       {">", 8},
	Leq:      {"<=", 8},
	Geq:      {">=", 8},
	Shl:      {"<<", 9},
	Shr:      {">>", 9},
	Add:      {"+", 10},
	Sub:      {"-", 10},
	Mul:      {"*", 11},
	Div:      {"/", 11},
	Mod:      {"%", 11},
	IndexBit: {"[]", precAtom},
}

func (op Binop) String() string {
	if int(op) < len(binops) {
		return binops[op].sym
	}

	return fmt.Sprintf("Binop(%d)", uint8(op))
}

func (op Binop) prec() int {
	if int(op) < len(binops) {
		return binops[op].prec
	}

	return precAtom
}

// Terop is a three operand operator.
type Terop uint8

const (
	// Mux is c ? t : f.
	Mux Terop = iota
	// Slice is x[hi:lo].
	Slice
	// IndexSlice is x[base +: width].
	IndexSlice
)

func (op Terop) String() string {
	switch op {
	case Mux:
		return "?:"
	case Slice:
		return "[:]"
	case IndexSlice:
		return "[+:]"
	}

	return fmt.Sprintf("Terop(%d)", uint8(op))
}

// Radix is the base a sized literal's digits are written in.
type Radix uint8

const (
	Dec Radix = iota
	Bin
	Hex
)

func (r Radix) String() string {
	switch r {
	case Dec:
		return "d"
	case Bin:
		return "b"
	case Hex:
		return "h"
	}

	return fmt.Sprintf("Radix(%d)", uint8(r))
}

// EventTy is the edge an event waits for.
type EventTy uint8

const (
	Posedge EventTy = iota
	Negedge
)

func (e EventTy) String() string {
	switch e {
	case Posedge:
		return "posedge"
	case Negedge:
		return "negedge"
	}

	return fmt.Sprintf("EventTy(%d)", uint8(e))
}

func (e EventTy) Doc() pretty.Doc { return pretty.Text(e.String()) }

// AssignTy tells blocking (=) from non-blocking (<=) procedural assignment.
type AssignTy uint8

const (
	Blocking AssignTy = iota
	NonBlocking
)

func (a AssignTy) String() string {
	switch a {
	case Blocking:
		return "="
	case NonBlocking:
		return "<="
	}

	return fmt.Sprintf("AssignTy(%d)", uint8(a))
}

func (a AssignTy) Doc() pretty.Doc { return pretty.Text(a.String()) }

package design

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/robert-at-pretension-io/hdlgen/hdl"
)

var binops = map[*hclsyntax.Operation]hdl.Binop{
	hclsyntax.OpLogicalOr:          hdl.LogOr,
	hclsyntax.OpLogicalAnd:         hdl.LogAnd,
	hclsyntax.OpEqual:              hdl.Equal,
	hclsyntax.OpNotEqual:           hdl.NotEqual,
	hclsyntax.OpLessThan:           hdl.Lt,
	hclsyntax.OpGreaterThan:        hdl.Gt,
	hclsyntax.OpLessThanOrEqual:    hdl.Leq,
	hclsyntax.OpGreaterThanOrEqual: hdl.Geq,
	hclsyntax.OpAdd:                hdl.Add,
	hclsyntax.OpSubtract:           hdl.Sub,
	hclsyntax.OpMultiply:           hdl.Mul,
	hclsyntax.OpDivide:             hdl.Div,
	hclsyntax.OpModulo:             hdl.Mod,
}

var folds = map[string]hdl.Binop{
	"and":  hdl.BitAnd,
	"or":   hdl.BitOr,
	"xor":  hdl.BitXor,
	"xnor": hdl.BitXnor,
}

var reductions = map[string]hdl.Unop{
	"reduce_and":  hdl.BitwiseAnd,
	"reduce_nand": hdl.BitwiseNand,
	"reduce_or":   hdl.BitwiseOr,
	"reduce_nor":  hdl.BitwiseNor,
	"reduce_xor":  hdl.BitwiseXor,
	"reduce_xnor": hdl.BitwiseXnor,
}

var literals = map[string]func(hdl.Width, string) hdl.Expr{
	"dec": hdl.NewULitDec,
	"hex": hdl.NewULitHex,
	"bin": hdl.NewULitBin,
}

// ParseExpr parses a single HCL expression and converts it.
func ParseExpr(src string) (hdl.Expr, hcl.Diagnostics) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "<expr>", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}

	return ConvertExpr(expr)
}

// ConvertExpr maps HCL expression syntax onto an hdl.Expr tree. Nothing is
// evaluated: identifiers stay references and operators stay operators.
func ConvertExpr(expr hcl.Expression) (hdl.Expr, hcl.Diagnostics) {
	e, ok := expr.(hclsyntax.Expression)
	if !ok {
		return nil, hcl.Diagnostics{unsupported(expr, "only native syntax expressions can be converted")}
	}

	switch e := e.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		return traversal(e.Traversal, e.SrcRange)
	case *hclsyntax.LiteralValueExpr:
		return literal(e.Val, e)
	case *hclsyntax.TemplateExpr:
		if !e.IsStringLiteral() {
			return nil, hcl.Diagnostics{unsupported(e, "string templates cannot be interpolated")}
		}

		val, diags := e.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}

		return literal(val, e)
	case *hclsyntax.ParenthesesExpr:
		return ConvertExpr(e.Expression)
	case *hclsyntax.UnaryOpExpr:
		return unary(e)
	case *hclsyntax.BinaryOpExpr:
		op, ok := binops[e.Op]
		if !ok {
			return nil, hcl.Diagnostics{unsupported(e, "unknown operator")}
		}

		args, diags := convertAll(e.LHS, e.RHS)
		if diags.HasErrors() {
			return nil, diags
		}

		return hdl.NewBinop(op, args[0], args[1]), diags
	case *hclsyntax.ConditionalExpr:
		args, diags := convertAll(e.Condition, e.TrueResult, e.FalseResult)
		if diags.HasErrors() {
			return nil, diags
		}

		return hdl.NewMux(args[0], args[1], args[2]), diags
	case *hclsyntax.TupleConsExpr:
		args, diags := convertAll(e.Exprs...)
		if diags.HasErrors() {
			return nil, diags
		}

		return hdl.NewConcat(args...), diags
	case *hclsyntax.IndexExpr:
		args, diags := convertAll(e.Collection, e.Key)
		if diags.HasErrors() {
			return nil, diags
		}

		return hdl.NewIndexBit(args[0], args[1]), diags
	case *hclsyntax.RelativeTraversalExpr:
		src, diags := ConvertExpr(e.Source)
		if diags.HasErrors() {
			return nil, diags
		}

		return indexSteps(src, e.Traversal, e.SrcRange)
	case *hclsyntax.FunctionCallExpr:
		return call(e)
	}

	return nil, hcl.Diagnostics{unsupported(e, fmt.Sprintf("%T has no hardware meaning", e))}
}

func convertAll(exprs ...hclsyntax.Expression) ([]hdl.Expr, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	out := make([]hdl.Expr, 0, len(exprs))
	for _, e := range exprs {
		x, d := ConvertExpr(e)
		diags = append(diags, d...)
		out = append(out, x)
	}

	return out, diags
}

// traversal maps a.b.c to a hierarchical path, with at most one trailing
// index. A plain name with indexes selects bits.
func traversal(t hcl.Traversal, rng hcl.Range) (hdl.Expr, hcl.Diagnostics) {
	path := []string{t.RootName()}
	rest := t[1:]

	for len(rest) != 0 {
		attr, ok := rest[0].(hcl.TraverseAttr)
		if !ok {
			break
		}

		path = append(path, attr.Name)
		rest = rest[1:]
	}

	if len(path) == 1 {
		return indexSteps(hdl.NewRef(path[0]), rest, rng)
	}

	switch len(rest) {
	case 0:
		return hdl.NewIPath(path...), nil
	case 1:
		idx, ok := rest[0].(hcl.TraverseIndex)
		if !ok {
			break
		}

		i, diags := index(idx)
		if diags.HasErrors() {
			return nil, diags
		}

		return hdl.NewIPathIndex(i, path...), nil
	}

	return nil, hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Unsupported expression",
		Detail:   "A hierarchical path may only be indexed once, at its end.",
		Subject:  rng.Ptr(),
	}}
}

func indexSteps(x hdl.Expr, steps hcl.Traversal, rng hcl.Range) (hdl.Expr, hcl.Diagnostics) {
	for _, step := range steps {
		idx, ok := step.(hcl.TraverseIndex)
		if !ok {
			return nil, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Unsupported expression",
				Detail:   "Only bit selects may follow an expression.",
				Subject:  rng.Ptr(),
			}}
		}

		i, diags := index(idx)
		if diags.HasErrors() {
			return nil, diags
		}

		x = hdl.NewIndexBit(x, i)
	}

	return x, nil
}

func index(idx hcl.TraverseIndex) (hdl.Expr, hcl.Diagnostics) {
	var i int32
	if err := gocty.FromCtyValue(idx.Key, &i); err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid index",
			Detail:   fmt.Sprintf("Bit selects need an integer index: %v.", err),
			Subject:  idx.SrcRange.Ptr(),
		}}
	}

	return hdl.NewInt(i), nil
}

func literal(val cty.Value, e hclsyntax.Expression) (hdl.Expr, hcl.Diagnostics) {
	if val.IsNull() || !val.IsKnown() {
		return nil, hcl.Diagnostics{unsupported(e, "null has no hardware meaning")}
	}

	switch val.Type() {
	case cty.Number:
		var i int32
		if err := gocty.FromCtyValue(val, &i); err != nil {
			return nil, hcl.Diagnostics{unsupported(e, fmt.Sprintf("numbers must be 32-bit integers: %v", err))}
		}

		return hdl.NewInt(i), nil
	case cty.String:
		return hdl.NewStr(val.AsString()), nil
	case cty.Bool:
		if val.True() {
			return hdl.NewULitBin(1, "1"), nil
		}

		return hdl.NewULitBin(1, "0"), nil
	}

	return nil, hcl.Diagnostics{unsupported(e, "value of type "+val.Type().FriendlyName())}
}

func unary(e *hclsyntax.UnaryOpExpr) (hdl.Expr, hcl.Diagnostics) {
	switch e.Op {
	case hclsyntax.OpLogicalNot:
		x, diags := ConvertExpr(e.Val)
		if diags.HasErrors() {
			return nil, diags
		}

		return hdl.NewUnop(hdl.LogicalNegation, x), diags
	case hclsyntax.OpNegate:
		x, diags := ConvertExpr(e.Val)
		if diags.HasErrors() {
			return nil, diags
		}

		if n, ok := x.(hdl.Int); ok {
			return hdl.NewInt(-n.Value), nil
		}

		return hdl.NewBinop(hdl.Sub, hdl.NewInt(0), x), diags
	}

	return nil, hcl.Diagnostics{unsupported(e, "unknown operator")}
}

func call(e *hclsyntax.FunctionCallExpr) (hdl.Expr, hcl.Diagnostics) {
	if op, ok := literals[e.Name]; ok {
		return sized(e, op)
	}

	args, diags := convertAll(e.Args...)
	if diags.HasErrors() {
		return nil, diags
	}

	if op, ok := folds[e.Name]; ok {
		if len(args) < 2 {
			return nil, hcl.Diagnostics{arity(e, "at least 2")}
		}

		x := args[0]
		for _, y := range args[1:] {
			x = hdl.NewBinop(op, x, y)
		}

		return x, diags
	}

	if op, ok := reductions[e.Name]; ok {
		if len(args) != 1 {
			return nil, hcl.Diagnostics{arity(e, "1")}
		}

		return hdl.NewUnop(op, args[0]), diags
	}

	want := map[string]int{
		"not":    1,
		"signed": 1,
		"shl":    2,
		"shr":    2,
		"slice":  3,
		"islice": 3,
	}

	if n, ok := want[e.Name]; ok && len(args) != n {
		return nil, hcl.Diagnostics{arity(e, strconv.Itoa(n))}
	}

	switch e.Name {
	case "not":
		return hdl.NewUnop(hdl.BitwiseNegation, args[0]), diags
	case "signed":
		return hdl.NewSigned(args[0]), diags
	case "shl":
		return hdl.NewBinop(hdl.Shl, args[0], args[1]), diags
	case "shr":
		return hdl.NewBinop(hdl.Shr, args[0], args[1]), diags
	case "slice":
		return hdl.NewSlice(args[0], args[1], args[2]), diags
	case "islice":
		return hdl.NewIndexSlice(args[0], args[1], args[2]), diags
	case "cat":
		if len(args) == 0 {
			return nil, hcl.Diagnostics{arity(e, "at least 1")}
		}

		return hdl.NewConcat(args...), diags
	}

	return hdl.NewCall(e.Name, args...), diags
}

// sized builds w'<r>digits from hex(w, digits) and friends. Both arguments
// must be constants.
func sized(e *hclsyntax.FunctionCallExpr, lit func(hdl.Width, string) hdl.Expr) (hdl.Expr, hcl.Diagnostics) {
	if len(e.Args) != 2 {
		return nil, hcl.Diagnostics{arity(e, "2")}
	}

	wv, diags := e.Args[0].Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}

	var w uint64
	if err := gocty.FromCtyValue(wv, &w); err != nil || w == 0 {
		return nil, hcl.Diagnostics{unsupported(e.Args[0], "literal width must be a positive integer constant")}
	}

	dv, diags := e.Args[1].Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}

	var digits string

	switch {
	case dv.IsKnown() && !dv.IsNull() && dv.Type() == cty.Number:
		// A number has already lost its spelling, leading zeros included,
		// so only dec takes one.
		if e.Name != "dec" {
			return nil, hcl.Diagnostics{unsupported(e.Args[1], e.Name+" digits must be a quoted string")}
		}

		bf := dv.AsBigFloat()
		if !bf.IsInt() || bf.Sign() < 0 {
			return nil, hcl.Diagnostics{unsupported(e.Args[1], "dec digits must be a non-negative integer")}
		}

		digits = bf.Text('f', 0)
	default:
		if err := gocty.FromCtyValue(dv, &digits); err != nil || digits == "" {
			return nil, hcl.Diagnostics{unsupported(e.Args[1], "literal digits must be a constant")}
		}
	}

	return lit(hdl.Width(w), digits), nil
}

func arity(e *hclsyntax.FunctionCallExpr, want string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Wrong number of arguments",
		Detail:   fmt.Sprintf("Function %q takes %s arguments, got %d.", e.Name, want, len(e.Args)),
		Subject:  e.Range().Ptr(),
	}
}

func unsupported(e hcl.Expression, detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Unsupported expression",
		Detail:   detail + ".",
		Subject:  e.Range().Ptr(),
	}
}

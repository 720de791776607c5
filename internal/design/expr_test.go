package design

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/robert-at-pretension-io/hdlgen/hdl"
	"github.com/robert-at-pretension-io/hdlgen/pretty"
)

func TestConvertExpr(t *testing.T) {
	a, b, c := hdl.NewRef("a"), hdl.NewRef("b"), hdl.NewRef("c")

	tests := []struct {
		src  string
		want hdl.Expr
	}{
		{"a", a},
		{"top.u0.q", hdl.NewIPath("top", "u0", "q")},
		{"top.q[3]", hdl.NewIPathIndex(hdl.NewInt(3), "top", "q")},
		{"a[0]", hdl.NewIndexBit(a, hdl.NewInt(0))},
		{"a[b]", hdl.NewIndexBit(a, b)},
		{"42", hdl.NewInt(42)},
		{"-5", hdl.NewInt(-5)},
		{`"txt"`, hdl.NewStr("txt")},
		{"true", hdl.NewULitBin(1, "1")},
		{"false", hdl.NewULitBin(1, "0")},
		{"!a", hdl.NewUnop(hdl.LogicalNegation, a)},
		{"a + b * c", hdl.NewBinop(hdl.Add, a, hdl.NewBinop(hdl.Mul, b, c))},
		{"(a + b) * c", hdl.NewBinop(hdl.Mul, hdl.NewBinop(hdl.Add, a, b), c)},
		{"a == b && c", hdl.NewBinop(hdl.LogAnd, hdl.NewBinop(hdl.Equal, a, b), c)},
		{"a ? b : c", hdl.NewMux(a, b, c)},
		{"[a, b]", hdl.NewConcat(a, b)},
		{"and(a, b, c)", hdl.NewBinop(hdl.BitAnd, hdl.NewBinop(hdl.BitAnd, a, b), c)},
		{"xnor(a, b)", hdl.NewBinop(hdl.BitXnor, a, b)},
		{"not(a)", hdl.NewUnop(hdl.BitwiseNegation, a)},
		{"shl(a, 2)", hdl.NewBinop(hdl.Shl, a, hdl.NewInt(2))},
		{"reduce_xor(a)", hdl.NewUnop(hdl.BitwiseXor, a)},
		{`hex(8, "ff")`, hdl.NewULitHex(8, "ff")},
		{"dec(4, 9)", hdl.NewULitDec(4, "9")},
		{`bin(4, "0011")`, hdl.NewULitBin(4, "0011")},
		{`dec(8, "007")`, hdl.NewULitDec(8, "007")},
		{"signed(a)", hdl.NewSigned(a)},
		{"slice(a, 7, 4)", hdl.NewSlice(a, hdl.NewInt(7), hdl.NewInt(4))},
		{"islice(a, b, 8)", hdl.NewIndexSlice(a, b, hdl.NewInt(8))},
		{"cat(a)", hdl.NewConcat(a)},
		{"clog2(a)", hdl.NewCall("clog2", a)},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, diags := ParseExpr(tt.src)
			require.False(t, diags.HasErrors(), "diagnostics: %v", diags)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("ParseExpr(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestConvertedExprRenders(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"or(a, and(b, c))", "a | b & c"},
		{"and(or(a, b), c)", "(a | b) & c"},
		{"not(xor(a, b))", "~(a ^ b)"},
		{"a - (b - c)", "a - (b - c)"},
		{`cat(a, hex(4, "f"), slice(b, 3, 0))`, "{a, 4'hf, b[3:0]}"},
		{"en ? top.u0.q[2] : 0", "en ? top.u0.q[2] : 0"},
		{`bin(4, "0011")`, "4'b0011"},
	}

	for _, tt := range tests {
		got, diags := ParseExpr(tt.src)
		require.False(t, diags.HasErrors(), "%s: %v", tt.src, diags)
		require.Equal(t, tt.want, pretty.String(got, 80), tt.src)
	}
}

func TestConvertExprErrors(t *testing.T) {
	tests := []struct {
		src     string
		summary string
	}{
		{`hex(0, "f")`, "Unsupported expression"},
		{`hex(8, a)`, "Variables not allowed"},
		{"bin(4, 11)", "Unsupported expression"},
		{"hex(8, 10)", "Unsupported expression"},
		{"dec(4, 1.5)", "Unsupported expression"},
		{`"${a}"`, "Unsupported expression"},
		{`"x${a}"`, "Unsupported expression"},
		{"{ a = 1 }", "Unsupported expression"},
		{"and(a)", "Wrong number of arguments"},
		{"slice(a, 1)", "Wrong number of arguments"},
		{"a.b[0].c", "Unsupported expression"},
		{"1.5", "Unsupported expression"},
		{"null", "Unsupported expression"},
		{"a[1.5]", "Invalid index"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, diags := ParseExpr(tt.src)
			require.True(t, diags.HasErrors(), "expected an error for %s", tt.src)
			require.Equal(t, tt.summary, diags[0].Summary)
			require.NotNil(t, diags[0].Subject)
		})
	}
}

package v05

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robert-at-pretension-io/hdlgen/hdl"
	"github.com/robert-at-pretension-io/hdlgen/pretty"
)

func ref(name string) hdl.Expr { return hdl.NewRef(name) }

func TestAnd2(t *testing.T) {
	m := NewModule("and2")
	m.AddInput("a", 1)
	m.AddInput("b", 1)
	m.AddOutput("y", 1)
	m.AddAssign(ref("y"), hdl.NewBinop(hdl.BitAnd, ref("a"), ref("b")))

	want := "module and2 (input wire a, input wire b, output wire y);\n" +
		"    assign y = a & b;\n" +
		"endmodule"
	require.Equal(t, want, pretty.String(m, 80))
}

func TestDecls(t *testing.T) {
	tests := []struct {
		decl Decl
		want string
	}{
		{NewReg("cnt", 8), "reg [7:0] cnt;"},
		{NewReg("flag", 1), "reg flag;"},
		{NewWire("bus", 32), "wire [31:0] bus;"},
		{NewInt("i"), "integer i;"},
		{NewParamUint("DEPTH", 16), "parameter DEPTH = 32'd16;"},
		{NewParamStr("MODE", "fast"), `parameter MODE = "fast";`},
		{NewParam("W", hdl.NewBinop(hdl.Mul, ref("N"), hdl.NewInt(2))), "parameter W = N * 2;"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, pretty.Render(tt.decl.DeclDoc(), 80))
	}
}

func TestZeroWidthPanics(t *testing.T) {
	const msg = "hdl: width must be greater than zero"

	require.PanicsWithValue(t, msg, func() { NewWire("w", 0) })
	require.PanicsWithValue(t, msg, func() { NewReg("r", 0) })
	require.PanicsWithValue(t, msg, func() { NewInput("a", 0) })
	require.PanicsWithValue(t, msg, func() { NewModule("m").AddOutputReg("q", 0) })
}

func TestTy(t *testing.T) {
	w, ok := NewWidthTy(4).Width()
	require.True(t, ok)
	require.Equal(t, hdl.Width(4), w)
	require.Equal(t, hdl.Width(4), NewWidthTy(4).MustWidth())

	_, ok = NewIntTy().Width()
	require.False(t, ok)
	require.True(t, NewIntTy().IsInt())
	require.PanicsWithValue(t, "v05: type does not support width", func() { NewIntTy().MustWidth() })
}

func TestCounter(t *testing.T) {
	cnt := ref("cnt")

	m := NewModule("counter")
	m.AddInput("clk", 1)
	m.AddInput("en", 1)
	m.AddOutputReg("q", 8)
	m.AddReg("cnt", 8)

	inc := NewIfElse(ref("en"))
	inc.AddSeq(NewNonblkAssign(cnt, hdl.NewBinop(hdl.Add, cnt, hdl.NewInt(1))))

	hold := NewBlock()
	hold.AddSeq(NewNonblkAssign(cnt, cnt))
	inc.SetElse(hold)

	proc := NewAlways(NewPosedge("clk"))
	proc.AddSeq(inc)
	m.AddAlways(proc)
	m.AddAssign(ref("q"), cnt)

	want := "module counter (input wire clk, input wire en, output reg [7:0] q);\n" +
		"    reg [7:0] cnt;\n" +
		"    always @(posedge clk) begin\n" +
		"        if (en) begin\n" +
		"            cnt <= cnt + 1;\n" +
		"        end else begin\n" +
		"            cnt <= cnt;\n" +
		"        end\n" +
		"    end\n" +
		"    assign q = cnt;\n" +
		"endmodule"

	first := pretty.String(m, 80)
	require.Equal(t, want, first)
	require.Equal(t, first, pretty.String(m, 80))
}

func TestElseIfChain(t *testing.T) {
	y := ref("y")

	top := NewIfElse(ref("a"))
	top.AddSeq(NewBlkAssign(y, hdl.NewInt(1)))

	next := NewIfElse(ref("b"))
	next.AddSeq(NewBlkAssign(y, hdl.NewInt(2)))
	top.SetElse(next)

	last := NewBlkAssign(y, hdl.NewInt(0))
	next.SetElse(last)

	want := "if (a) begin\n" +
		"    y = 1;\n" +
		"end else if (b) begin\n" +
		"    y = 2;\n" +
		"end else begin\n" +
		"    y = 0;\n" +
		"end"
	require.Equal(t, want, pretty.String(top, 80))

	els, ok := next.ElseBranch()
	require.True(t, ok)
	require.Equal(t, last, els)

	_, ok = NewBlock().Cond()
	require.False(t, ok)
}

func TestWildcardCase(t *testing.T) {
	y := ref("y")

	c := NewCase(ref("sel"))

	b := NewBranch(hdl.NewULitBin(1, "0"))
	b.AddSeq(NewBlkAssign(y, ref("a")))
	c.AddBranch(b)

	d := NewDefault()
	d.AddSeq(NewBlkAssign(y, ref("b")))
	c.SetDefault(d)

	proc := NewAlways(Wildcard{})
	proc.AddSeq(c)

	want := "always @(*) begin\n" +
		"    case (sel)\n" +
		"        1'b0: begin\n" +
		"            y = a;\n" +
		"        end\n" +
		"        default: begin\n" +
		"            y = b;\n" +
		"        end\n" +
		"    endcase\n" +
		"end"
	require.Equal(t, want, pretty.String(proc, 80))
	require.Equal(t, Wildcard{}, proc.Event())
}

func TestSequentialForms(t *testing.T) {
	tests := []struct {
		seq  Sequential
		want string
	}{
		{NewNegedge("rst_n"), "@(negedge rst_n);"},
		{Wildcard{}, "@(*);"},
		{NewCall("$display", hdl.NewStr("x=%d"), ref("x")), `$display("x=%d", x);`},
		{NewBlkAssign(ref("a"), ref("b")), "a = b;"},
		{NewNonblkAssign(ref("a"), ref("b")), "a <= b;"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, pretty.String(tt.seq, 80))
	}
}

func TestInstanceAndID(t *testing.T) {
	inst := hdl.NewInstance("u0", "and2")
	inst.ConnectRef("y", "out")
	inst.ConnectRef("a", "x0")
	inst.ConnectRef("b", "x1")

	m := NewModule("top")
	m.AddParamUint("N", 4)
	m.AddInstance(inst)
	m.AddStmt(DeclStmt(NewWire("out", 1)))

	want := "module top #(parameter N = 32'd4) ();\n" +
		"    and2 u0 (.a(x0), .b(x1), .y(out));\n" +
		"    wire out;\n" +
		"endmodule"
	require.Equal(t, want, pretty.String(m, 80))

	body := m.Body()
	require.Len(t, body, 2)

	par, ok := body[0].Parallel()
	require.True(t, ok)

	id, ok := ID(par)
	require.True(t, ok)
	require.Equal(t, "u0", id)

	id, ok = ID(NewAssign(ref("y"), ref("a")))
	require.True(t, ok)
	require.Equal(t, "y", id)

	_, ok = ID(NewAlways(Wildcard{}))
	require.False(t, ok)

	_, ok = ID(NewAssign(hdl.NewIndexBit(ref("y"), hdl.NewInt(0)), ref("a")))
	require.False(t, ok)
}

func TestPortsInOrder(t *testing.T) {
	m := NewModule("m")
	m.AddOutput("z", 1)
	m.AddInput("a", 4)
	m.AddOutputReg("q", 2)

	ports := m.Ports()
	require.Len(t, ports, 3)
	require.Equal(t, hdl.Output, ports[0].Dir())
	require.Equal(t, Wire{Name: "a", Ty: NewWidthTy(4)}, ports[1].Decl())
	require.Equal(t, Reg{Name: "q", Ty: NewWidthTy(2)}, ports[2].Decl())
}

func TestLongAssignBreaks(t *testing.T) {
	rhs := hdl.NewConcat(ref("alpha"), ref("bravo"), ref("charlie"))

	want := "assign result =\n" +
		"    {\n" +
		"        alpha,\n" +
		"        bravo,\n" +
		"        charlie\n" +
		"    };"
	require.Equal(t, want, pretty.String(NewAssign(ref("result"), rhs), 16))
}

package pretty

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func abc() []Doc {
	return []Doc{Text("a"), Text("b"), Text("c")}
}

func TestListFitsOnOneLine(t *testing.T) {
	require.Equal(t, "(a, b, c)", Render(List("(", ")", 4, abc()), 80))
}

func TestListBreaksWhenTooWide(t *testing.T) {
	got := Render(List("(", ")", 4, abc()), 5)
	require.Equal(t, "(\n    a,\n    b,\n    c\n)", got)
}

func TestEmptyList(t *testing.T) {
	require.Equal(t, "()", Render(List("(", ")", 4, nil), 80))
}

func TestHardLineForcesGroupBreak(t *testing.T) {
	d := Group(Concat(Text("a"), Line(), Text("b"), HardLine(), Text("c")))
	require.Equal(t, "a\nb\nc", Render(d, 80))
}

func TestFitsAccountsForTrailingText(t *testing.T) {
	d := Concat(Group(Concat(Text("aaa"), Line(), Text("bbb"))), Text("cccc"))

	require.Equal(t, "aaa bbbcccc", Render(d, 11))
	require.Equal(t, "aaa\nbbbcccc", Render(d, 10))
}

func TestBlankLinesCarryNoIndent(t *testing.T) {
	d := Nest(4, Concat(Text("x"), HardLine(), HardLine(), Text("y")))
	require.Equal(t, "x\n\n    y", Render(d, 80))
}

func TestNestedGroupsBreakOutsideIn(t *testing.T) {
	inner := List("{", "}", 2, []Doc{Text("x"), Text("y")})
	outer := List("(", ")", 2, []Doc{Text("first"), inner})

	require.Equal(t, "(first, {x, y})", Render(outer, 80))
	require.Equal(t, "(\n  first,\n  {x, y}\n)", Render(outer, 12))
	require.Equal(t, "(\n  first,\n  {\n    x,\n    y\n  }\n)", Render(outer, 4))
}

func TestWordsSkipsNil(t *testing.T) {
	require.Equal(t, "wire a", Render(Words(Text("wire"), Nil(), Text("a")), 80))
	require.True(t, IsNil(Concat(Nil(), Text(""))))
}

func TestRenderIsDeterministic(t *testing.T) {
	d := List("(", ")", 4, abc())
	require.Equal(t, Render(d, 3), Render(d, 3))
}

func TestRenderRejectsNonPositiveWidth(t *testing.T) {
	require.PanicsWithValue(t, "pretty: width must be greater than zero", func() {
		Render(Text("a"), 0)
	})
}

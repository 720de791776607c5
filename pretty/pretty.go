// Package pretty is a small document algebra and the layout engine that
// turns documents into text against a maximum column width.
//
// A document is built from text leaves, concatenation, nesting, groups and
// line breaks. A group is laid out flat (every Line becomes a space, every
// SoftLine becomes nothing) when its content fits in the remaining width,
// and broken otherwise. HardLine always breaks and forces every enclosing
// group to break.
package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultWidth is the column budget used when callers have no preference.
const DefaultWidth = 100

// Doc is an abstract document.
type Doc interface {
	isDoc()
}

// Printer is implemented by anything that can describe itself as a document.
type Printer interface {
	Doc() Doc
}

type (
	nilDoc struct{}

	text string

	// line renders as flat when its group is laid out on one line.
	line struct {
		flat string
	}

	hardLine struct{}

	concat []Doc

	nest struct {
		indent int
		doc    Doc
	}

	group struct {
		doc Doc
	}
)

func (nilDoc) isDoc()   {}
func (text) isDoc()     {}
func (line) isDoc()     {}
func (hardLine) isDoc() {}
func (concat) isDoc()   {}
func (nest) isDoc()     {}
func (group) isDoc()    {}

// Nil is the empty document.
func Nil() Doc { return nilDoc{} }

// Text is a literal leaf. It must not contain newlines.
func Text(s string) Doc {
	if s == "" {
		return nilDoc{}
	}

	return text(s)
}

// Textf is Text with fmt formatting.
func Textf(format string, args ...any) Doc {
	return Text(fmt.Sprintf(format, args...))
}

// Line is a space when flat and a newline when broken.
func Line() Doc { return line{flat: " "} }

// SoftLine is nothing when flat and a newline when broken.
func SoftLine() Doc { return line{} }

// HardLine is always a newline.
func HardLine() Doc { return hardLine{} }

// Concat joins documents. Nil documents are dropped.
func Concat(docs ...Doc) Doc {
	out := make(concat, 0, len(docs))

	for _, d := range docs {
		if IsNil(d) {
			continue
		}

		out = append(out, d)
	}

	switch len(out) {
	case 0:
		return nilDoc{}
	case 1:
		return out[0]
	}

	return out
}

// Nest indents every line break inside d by n more columns.
func Nest(n int, d Doc) Doc {
	if IsNil(d) {
		return d
	}

	return nest{indent: n, doc: d}
}

// Group marks d as a unit that is laid out flat when it fits.
func Group(d Doc) Doc {
	if IsNil(d) {
		return d
	}

	return group{doc: d}
}

// Join puts sep between consecutive docs.
func Join(sep Doc, docs []Doc) Doc {
	out := make([]Doc, 0, 2*len(docs))

	for i, d := range docs {
		if i != 0 {
			out = append(out, sep)
		}

		out = append(out, d)
	}

	return Concat(out...)
}

// Words joins the non-nil docs with single spaces.
func Words(docs ...Doc) Doc {
	out := make([]Doc, 0, len(docs))

	for _, d := range docs {
		if !IsNil(d) {
			out = append(out, d)
		}
	}

	return Join(Text(" "), out)
}

// List renders items between open and close, separated by commas.
// Flat it reads "open a, b close", broken every item sits on its own line
// indented by indent.
func List(open, close string, indent int, items []Doc) Doc {
	if len(items) == 0 {
		return Text(open + close)
	}

	return Group(Concat(
		Text(open),
		Nest(indent, Concat(SoftLine(), Join(Concat(Text(","), Line()), items))),
		SoftLine(),
		Text(close),
	))
}

// IsNil reports whether d renders as nothing.
func IsNil(d Doc) bool {
	switch d := d.(type) {
	case nil, nilDoc:
		return true
	case concat:
		return len(d) == 0
	}

	return false
}

// String renders p's document.
func String(p Printer, width int) string {
	return Render(p.Doc(), width)
}

type mode uint8

const (
	modeBreak mode = iota
	modeFlat
)

type frame struct {
	indent int
	mode   mode
	doc    Doc
}

type renderer struct {
	b       strings.Builder
	width   int
	col     int
	pending int
}

// Render lays d out so that groups stay within width columns where they can.
// width must be positive.
func Render(d Doc, width int) string {
	if width < 1 {
		panic("pretty: width must be greater than zero")
	}

	r := renderer{width: width}
	r.run(d)

	return r.b.String()
}

func (r *renderer) run(d Doc) {
	stack := []frame{{mode: modeBreak, doc: d}}

	for len(stack) != 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch x := f.doc.(type) {
		case nil, nilDoc:
		case text:
			r.write(string(x))
		case concat:
			for i := len(x) - 1; i >= 0; i-- {
				stack = append(stack, frame{indent: f.indent, mode: f.mode, doc: x[i]})
			}
		case nest:
			stack = append(stack, frame{indent: f.indent + x.indent, mode: f.mode, doc: x.doc})
		case line:
			if f.mode == modeFlat {
				r.write(x.flat)
			} else {
				r.newline(f.indent)
			}
		case hardLine:
			r.newline(f.indent)
		case group:
			m := modeBreak
			flat := frame{indent: f.indent, mode: modeFlat, doc: x.doc}

			if f.mode == modeFlat || fits(r.width-r.col, flat, stack) {
				m = modeFlat
			}

			stack = append(stack, frame{indent: f.indent, mode: m, doc: x.doc})
		default:
			panic(fmt.Sprintf("pretty: unsupported document %T", x))
		}
	}
}

func (r *renderer) write(s string) {
	if s == "" {
		return
	}

	if r.pending != 0 {
		r.b.WriteString(strings.Repeat(" ", r.pending))
		r.pending = 0
	}

	r.b.WriteString(s)
	r.col += utf8.RuneCountInString(s)
}

// newline defers the indentation until something is written on the new
// line, so blank lines carry no trailing spaces.
func (r *renderer) newline(indent int) {
	r.b.WriteByte('\n')
	r.col = indent
	r.pending = indent
}

// fits measures next in flat mode followed by the rest of the stack up to
// the first line break that is already committed to breaking.
func fits(rem int, next frame, rest []frame) bool {
	stack := []frame{next}
	ri := len(rest)

	for rem >= 0 {
		if len(stack) == 0 {
			if ri == 0 {
				return true
			}

			ri--
			stack = append(stack, rest[ri])

			continue
		}

		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch x := f.doc.(type) {
		case nil, nilDoc:
		case text:
			rem -= utf8.RuneCountInString(string(x))
		case concat:
			for i := len(x) - 1; i >= 0; i-- {
				stack = append(stack, frame{indent: f.indent, mode: f.mode, doc: x[i]})
			}
		case nest:
			stack = append(stack, frame{indent: f.indent + x.indent, mode: f.mode, doc: x.doc})
		case line:
			if f.mode != modeFlat {
				return true
			}

			rem -= len(x.flat)
		case hardLine:
			return f.mode != modeFlat
		case group:
			stack = append(stack, frame{indent: f.indent, mode: f.mode, doc: x.doc})
		}
	}

	return false
}

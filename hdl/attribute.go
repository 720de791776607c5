package hdl

import (
	"slices"

	"github.com/robert-at-pretension-io/hdlgen/pretty"
)

// AttrEntry is one annotation: a bare value (keep) or a key/value pair
// (LOC = "X0Y0").
type AttrEntry struct {
	Name  string
	Value string
	pair  bool
}

func AttrVal(v string) AttrEntry { return AttrEntry{Name: v} }

func AttrStmt(name, v string) AttrEntry { return AttrEntry{Name: name, Value: v, pair: true} }

// IsPair reports whether the entry carries a value.
func (e AttrEntry) IsPair() bool { return e.pair }

func (e AttrEntry) Doc() pretty.Doc {
	if !e.pair {
		return pretty.Text(e.Name)
	}

	return pretty.Concat(pretty.Text(e.Name+" = "), Str{Value: e.Value}.Doc())
}

// Attribute is an ordered list of annotations rendered as (* ... *).
// The zero value is empty and renders as nothing.
type Attribute struct {
	entries []AttrEntry
}

func (a *Attribute) AddVal(v string) { a.entries = append(a.entries, AttrVal(v)) }

func (a *Attribute) AddStmt(name, v string) { a.entries = append(a.entries, AttrStmt(name, v)) }

func (a Attribute) Entries() []AttrEntry { return slices.Clone(a.entries) }

func (a Attribute) IsEmpty() bool { return len(a.entries) == 0 }

func (a Attribute) Doc() pretty.Doc {
	if a.IsEmpty() {
		return pretty.Nil()
	}

	return pretty.Concat(
		pretty.Text("(* "),
		pretty.Join(pretty.Text(", "), Docs(a.entries)),
		pretty.Text(" *)"),
	)
}

// line is the attribute on a line of its own, or nothing.
func (a Attribute) line() pretty.Doc {
	if a.IsEmpty() {
		return pretty.Nil()
	}

	return pretty.Concat(a.Doc(), pretty.HardLine())
}

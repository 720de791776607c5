package hdl

import (
	"github.com/robert-at-pretension-io/hdlgen/pretty"
)

// Indent is the number of columns a nested block is indented by.
const Indent = 4

const errZeroWidth = "hdl: width must be greater than zero"

// Width is a bit count. A valid width is at least 1.
type Width uint64

// NewWidth checks w and panics when it is zero.
func NewWidth(w uint64) Width {
	if w == 0 {
		panic(errZeroWidth)
	}

	return Width(w)
}

// Doc renders the packed range of w: nothing for a scalar, [w-1:0] otherwise.
func (w Width) Doc() pretty.Doc {
	switch w {
	case 0:
		panic(errZeroWidth)
	case 1:
		return pretty.Nil()
	}

	return pretty.Textf("[%d:0]", uint64(w)-1)
}

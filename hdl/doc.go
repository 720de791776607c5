/*
Package hdl holds everything the two dialect packages share: the expression
tree and its operator vocabulary, sized widths, instances, attributes, and
the generic module backbone.

The backbone is written once and instantiated per dialect:

	Module[D, P]   name, params []D, ports []Port[D], body []Stmt[D, P]
	Stmt[D, P]     a declaration D or a concurrent statement P
	Port[D]        input or output declaration D
	Case[T]        case over sequential statements T
	Function[D, S, R]

D must satisfy Declaration and P must satisfy Concurrent. Both are
pretty.Printer based, so the backbone renders itself and asks the dialect
only for the pieces it owns.

Construction and rendering never fail on a well formed tree. Misuse
(zero widths, asking a non-reference for its name through a Must accessor)
panics.
*/
package hdl

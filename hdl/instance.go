package hdl

import (
	"maps"
	"slices"
	"strconv"

	"github.com/robert-at-pretension-io/hdlgen/pretty"
)

// Binding connects a parameter or port name to an expression.
type Binding struct {
	Name  string
	Value Expr
}

func (b Binding) Doc() pretty.Doc {
	return pretty.Concat(pretty.Text("."+b.Name+"("), b.Value.Doc(), pretty.Text(")"))
}

// Instance is an instantiation of prim named id. Bindings are kept in maps
// and always emitted sorted by name, so insertion order never shows up in
// the output.
type Instance struct {
	id     string
	prim   string
	params map[string]Expr
	ports  map[string]Expr
	attr   Attribute
}

func NewInstance(id, prim string) *Instance {
	return &Instance{
		id:     id,
		prim:   prim,
		params: make(map[string]Expr),
		ports:  make(map[string]Expr),
	}
}

func (i *Instance) SetID(id string) { i.id = id }

func (i *Instance) SetPrim(prim string) { i.prim = prim }

func (i *Instance) SetAttr(attr Attribute) { i.attr = attr }

// AddParam binds parameter name to value, replacing an earlier binding.
func (i *Instance) AddParam(name string, value Expr) { i.params[name] = value }

// AddParamUint binds a 32-bit decimal literal.
func (i *Instance) AddParamUint(name string, value uint32) {
	i.params[name] = NewULitDec(32, strconv.FormatUint(uint64(value), 10))
}

func (i *Instance) AddParamStr(name, value string) { i.params[name] = NewStr(value) }

// Connect binds port to expr, replacing an earlier binding.
func (i *Instance) Connect(port string, expr Expr) { i.ports[port] = expr }

func (i *Instance) ConnectRef(port, id string) { i.ports[port] = NewRef(id) }

func (i *Instance) ID() string { return i.id }

func (i *Instance) Prim() string { return i.prim }

func (i *Instance) Attr() Attribute { return i.attr }

func (i *Instance) ParamMap() map[string]Expr { return maps.Clone(i.params) }

func (i *Instance) PortMap() map[string]Expr { return maps.Clone(i.ports) }

// Params returns the parameter bindings sorted by name.
func (i *Instance) Params() []Binding { return sorted(i.params) }

// Ports returns the port bindings sorted by name.
func (i *Instance) Ports() []Binding { return sorted(i.ports) }

func sorted(m map[string]Expr) []Binding {
	out := make([]Binding, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		out = append(out, Binding{Name: name, Value: m[name]})
	}

	return out
}

func (i *Instance) Doc() pretty.Doc {
	var params pretty.Doc = pretty.Nil()
	if len(i.params) != 0 {
		params = pretty.Concat(pretty.Text(" "), pretty.List("#(", ")", Indent, Docs(i.Params())))
	}

	return pretty.Concat(
		i.attr.line(),
		pretty.Text(i.prim),
		params,
		pretty.Text(" "+i.id+" "),
		pretty.List("(", ");", Indent, Docs(i.Ports())),
	)
}

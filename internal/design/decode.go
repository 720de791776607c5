package design

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty/gocty"
	"tlog.app/go/errors"

	"github.com/robert-at-pretension-io/hdlgen/hdl"
)

type (
	widthBody struct {
		Width *uint64 `hcl:"width,optional"`
	}

	outputBody struct {
		Width *uint64 `hcl:"width,optional"`
		Reg   bool    `hcl:"reg,optional"`
	}

	emptyBody struct{}

	valueBody struct {
		Value hcl.Expression `hcl:"value"`
	}

	registerBody struct {
		Width  *uint64        `hcl:"width,optional"`
		Clock  hcl.Expression `hcl:"clock"`
		Next   hcl.Expression `hcl:"next"`
		Enable hcl.Expression `hcl:"enable,optional"`
	}

	instanceBody struct {
		Module string         `hcl:"module"`
		Params hcl.Expression `hcl:"params,optional"`
		Ports  hcl.Expression `hcl:"ports,optional"`
	}

	attributeBody struct {
		Value *string `hcl:"value,optional"`
	}
)

// LoadFile reads and decodes the design in path.
func LoadFile(path string) (*Design, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read design")
	}

	d, diags := Parse(path, src)
	if diags.HasErrors() {
		return nil, errors.Wrap(diags, "decode %v", path)
	}

	return d, nil
}

// Parse decodes HCL source. filename is used for diagnostics and recorded
// in the Design.
func Parse(filename string, src []byte) (*Design, hcl.Diagnostics) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported file",
			Detail:   "Designs must be written in native HCL syntax.",
		})
	}

	diags = append(diags, noAttributes(body)...)

	d := &Design{File: filename}

	for _, block := range body.Blocks {
		if block.Type != "module" {
			diags = diags.Append(unexpectedBlock(block, "file"))
			continue
		}

		m, mdiags := decodeModule(block)
		diags = append(diags, mdiags...)

		if m != nil {
			d.Modules = append(d.Modules, m)
		}
	}

	return d, diags
}

func decodeModule(block *hclsyntax.Block) (*Module, hcl.Diagnostics) {
	name, diags := label(block)
	if diags.HasErrors() {
		return nil, diags
	}

	m := &Module{Name: name}

	diags = append(diags, noAttributes(block.Body)...)

	for _, b := range block.Body.Blocks {
		diags = append(diags, m.decodeItem(b)...)
	}

	return m, diags
}

func (m *Module) decodeItem(block *hclsyntax.Block) hcl.Diagnostics {
	name, diags := label(block)
	if diags.HasErrors() {
		return diags
	}

	switch block.Type {
	case "param":
		var b valueBody
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return diags
		}

		if diags := required(block, "value", b.Value); diags.HasErrors() {
			return diags
		}

		v, diags := ConvertExpr(b.Value)
		m.Params = append(m.Params, Param{Name: name, Value: v})

		return diags
	case "input":
		var b widthBody
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return diags
		}

		w, diags := width(block, b.Width)
		m.Ports = append(m.Ports, Port{Name: name, Dir: hdl.Input, Width: w})

		return diags
	case "output":
		var b outputBody
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return diags
		}

		w, diags := width(block, b.Width)
		m.Ports = append(m.Ports, Port{Name: name, Dir: hdl.Output, Width: w, Reg: b.Reg})

		return diags
	case "wire", "reg":
		var b widthBody
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return diags
		}

		w, diags := width(block, b.Width)
		m.Items = append(m.Items, Signal{Name: name, Kind: SignalKind(block.Type), Width: w})

		return diags
	case "integer":
		var b emptyBody
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return diags
		}

		m.Items = append(m.Items, Signal{Name: name, Kind: KindInteger, Width: 32})
	case "assign":
		var b valueBody
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return diags
		}

		if diags := required(block, "value", b.Value); diags.HasErrors() {
			return diags
		}

		v, diags := ConvertExpr(b.Value)
		m.Items = append(m.Items, Assign{LHS: name, Value: v})

		return diags
	case "register":
		return m.decodeRegister(name, block)
	case "instance":
		return m.decodeInstance(name, block)
	case "attribute":
		var b attributeBody
		if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
			return diags
		}

		if b.Value == nil {
			m.Attr.AddVal(name)
		} else {
			m.Attr.AddStmt(name, *b.Value)
		}
	default:
		return hcl.Diagnostics{unexpectedBlock(block, "module")}
	}

	return nil
}

func (m *Module) decodeRegister(name string, block *hclsyntax.Block) hcl.Diagnostics {
	var b registerBody
	if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
		return diags
	}

	diags := required(block, "clock", b.Clock)
	diags = append(diags, required(block, "next", b.Next)...)
	if diags.HasErrors() {
		return diags
	}

	w, diags := width(block, b.Width)

	clock, cdiags := ConvertExpr(b.Clock)
	diags = append(diags, cdiags...)

	next, ndiags := ConvertExpr(b.Next)
	diags = append(diags, ndiags...)

	r := Register{Name: name, Width: w, Clock: clock, Next: next}

	if present(b.Enable) {
		en, ediags := ConvertExpr(b.Enable)
		diags = append(diags, ediags...)
		r.Enable = en
	}

	m.Items = append(m.Items, r)

	return diags
}

func (m *Module) decodeInstance(name string, block *hclsyntax.Block) hcl.Diagnostics {
	var b instanceBody
	if diags := gohcl.DecodeBody(block.Body, nil, &b); diags.HasErrors() {
		return diags
	}

	params, diags := bindings(b.Params)

	ports, pdiags := bindings(b.Ports)
	diags = append(diags, pdiags...)

	m.Items = append(m.Items, Instance{
		Name:   name,
		Module: b.Module,
		Params: params,
		Ports:  ports,
	})

	return diags
}

// bindings converts an object constructor { name = expr, ... }.
func bindings(expr hcl.Expression) (map[string]hdl.Expr, hcl.Diagnostics) {
	out := make(map[string]hdl.Expr)
	if !present(expr) {
		return out, nil
	}

	pairs, diags := hcl.ExprMap(expr)
	if diags.HasErrors() {
		return out, diags
	}

	for _, kv := range pairs {
		key, kdiags := keyName(kv.Key)
		diags = append(diags, kdiags...)

		if kdiags.HasErrors() {
			continue
		}

		v, vdiags := ConvertExpr(kv.Value)
		diags = append(diags, vdiags...)

		out[key] = v
	}

	return out, diags
}

func keyName(expr hcl.Expression) (string, hcl.Diagnostics) {
	if kw := hcl.ExprAsKeyword(expr); kw != "" {
		return kw, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}

	var s string
	if err := gocty.FromCtyValue(val, &s); err != nil {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid binding name",
			Detail:   fmt.Sprintf("Binding names must be identifiers or strings: %v.", err),
			Subject:  expr.Range().Ptr(),
		}}
	}

	return s, nil
}

// present reports whether an optional expression was written. gohcl fills
// missing ones with a static null.
func present(expr hcl.Expression) bool {
	_, ok := expr.(hclsyntax.Expression)
	return ok
}

// required reports an attribute gohcl let through: it does not check
// expression fields, it fills them with a static null.
func required(block *hclsyntax.Block, name string, expr hcl.Expression) hcl.Diagnostics {
	if present(expr) {
		return nil
	}

	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Missing required argument",
		Detail:   fmt.Sprintf("The argument %q is required, but no definition was found.", name),
		Subject:  block.Body.MissingItemRange().Ptr(),
	}}
}

func width(block *hclsyntax.Block, w *uint64) (uint64, hcl.Diagnostics) {
	if w == nil {
		return 1, nil
	}

	if *w == 0 {
		return 1, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid width",
			Detail:   fmt.Sprintf("%s %q: width must be greater than zero.", block.Type, block.Labels[0]),
			Subject:  block.Body.Attributes["width"].SrcRange.Ptr(),
		}}
	}

	return *w, nil
}

func label(block *hclsyntax.Block) (string, hcl.Diagnostics) {
	if len(block.Labels) != 1 {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid block labels",
			Detail:   fmt.Sprintf("A %s block takes exactly one label, the name.", block.Type),
			Subject:  block.DefRange().Ptr(),
		}}
	}

	return block.Labels[0], nil
}

func noAttributes(body *hclsyntax.Body) hcl.Diagnostics {
	var diags hcl.Diagnostics

	for _, name := range slices.Sorted(maps.Keys(body.Attributes)) {
		attr := body.Attributes[name]
		diags = diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unexpected attribute",
			Detail:   fmt.Sprintf("Attribute %q is not allowed here; only blocks are.", name),
			Subject:  attr.SrcRange.Ptr(),
		})
	}

	return diags
}

func unexpectedBlock(block *hclsyntax.Block, where string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Unsupported block type",
		Detail:   fmt.Sprintf("Blocks of type %q are not expected in a %s.", block.Type, where),
		Subject:  block.TypeRange.Ptr(),
	}
}

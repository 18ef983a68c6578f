package shader

import (
	"fmt"

	"github.com/gogpu/naga/ir"
)

// Input is a vertex stage input declared with @location.
type Input struct {
	Location uint32
	Name     string
	// Type is the WGSL spelling of the input type, e.g. "vec3<f32>".
	Type string
}

// vertexInputs lists the located arguments of ep in declaration order.
// Arguments of struct type contribute their located members.
func vertexInputs(mod *ir.Module, ep *ir.EntryPoint) []Input {
	var inputs []Input
	for _, arg := range ep.Function.Arguments {
		if loc, ok := location(arg.Binding); ok {
			inputs = append(inputs, Input{Location: loc, Name: arg.Name, Type: typeName(mod, arg.Type)})
			continue
		}
		if arg.Binding != nil || int(arg.Type) >= len(mod.Types) {
			continue
		}
		st, ok := mod.Types[arg.Type].Inner.(ir.StructType)
		if !ok {
			continue
		}
		for _, m := range st.Members {
			if loc, ok := location(m.Binding); ok {
				inputs = append(inputs, Input{Location: loc, Name: m.Name, Type: typeName(mod, m.Type)})
			}
		}
	}
	return inputs
}

func location(b *ir.Binding) (uint32, bool) {
	if b == nil {
		return 0, false
	}
	switch lb := (*b).(type) {
	case ir.LocationBinding:
		return lb.Location, true
	case *ir.LocationBinding:
		return lb.Location, true
	}
	return 0, false
}

// typeName spells scalar and vector types the way WGSL declares them.
func typeName(mod *ir.Module, h ir.TypeHandle) string {
	if int(h) >= len(mod.Types) {
		return ""
	}
	t := mod.Types[h]
	switch inner := t.Inner.(type) {
	case ir.ScalarType:
		return scalarName(inner)
	case ir.VectorType:
		return fmt.Sprintf("vec%d<%s>", inner.Size, scalarName(inner.Scalar))
	}
	return t.Name
}

func scalarName(s ir.ScalarType) string {
	var prefix string
	switch s.Kind {
	case ir.ScalarSint:
		prefix = "i"
	case ir.ScalarUint:
		prefix = "u"
	case ir.ScalarFloat:
		prefix = "f"
	case ir.ScalarBool:
		return "bool"
	default:
		return "?"
	}
	return fmt.Sprintf("%s%d", prefix, int(s.Width)*8)
}

// LinkError reports a program that could not be linked. Log holds the
// reason, including any driver message when pipeline creation failed.
type LinkError struct {
	Label string
	Log   string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader: link program %q: %s", e.Label, e.Log)
}

// Program is a linked vertex and fragment stage pair.
type Program struct {
	Label    string
	Vertex   *Module
	Fragment *Module

	inputs map[string]Input
}

// Link pairs vs and fs into a program.
func Link(label string, vs, fs *Module) (*Program, error) {
	switch {
	case vs == nil || fs == nil:
		return nil, &LinkError{Label: label, Log: "missing stage"}
	case vs.Stage != StageVertex:
		return nil, &LinkError{Label: label, Log: fmt.Sprintf("%q is a %s stage, want vertex", vs.Label, vs.Stage)}
	case fs.Stage != StageFragment:
		return nil, &LinkError{Label: label, Log: fmt.Sprintf("%q is a %s stage, want fragment", fs.Label, fs.Stage)}
	}

	inputs := make(map[string]Input)
	for _, in := range vs.inputs {
		if prev, dup := inputs[in.Name]; dup {
			return nil, &LinkError{
				Label: label,
				Log:   fmt.Sprintf("input %q declared at locations %d and %d", in.Name, prev.Location, in.Location),
			}
		}
		inputs[in.Name] = in
	}

	return &Program{Label: label, Vertex: vs, Fragment: fs, inputs: inputs}, nil
}

// Build compiles vs and fs and links them.
func Build(label string, vs, fs Source) (*Program, error) {
	vm, err := Compile(vs)
	if err != nil {
		return nil, err
	}
	fm, err := Compile(fs)
	if err != nil {
		return nil, err
	}
	return Link(label, vm, fm)
}

// AttribLocation returns the location of the named vertex input, or -1 when
// the program does not reference it.
func (p *Program) AttribLocation(name string) int {
	in, ok := p.inputs[name]
	if !ok {
		return -1
	}
	return int(in.Location)
}

// InputType returns the WGSL type of the named vertex input.
func (p *Program) InputType(name string) (string, bool) {
	in, ok := p.inputs[name]
	return in.Type, ok
}

package layout

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Locator resolves a vertex input name to its shader location, or -1 when
// the program does not use it. InputType reports the declared WGSL type.
type Locator interface {
	AttribLocation(name string) int
	InputType(name string) (string, bool)
}

// Binding describes how the vertex buffer feeds one shader input.
type Binding struct {
	Name     string
	Type     Type
	Location uint32
}

// Layout returns the tightly packed vertex buffer layout for the binding.
func (b Binding) Layout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: b.Type.Size(),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: b.Type.Format(), Offset: 0, ShaderLocation: b.Location},
		},
	}
}

// Bind resolves the named input on loc and pairs it with the tagged type.
// The boolean result is false when loc does not reference name; the binding
// is then skipped and no error is returned. An unknown tag, or a tag whose
// type differs from the declared one, is an error.
func Bind(loc Locator, name, tag string) (Binding, bool, error) {
	location := loc.AttribLocation(name)
	if location < 0 {
		return Binding{}, false, nil
	}
	typ, err := ParseType(tag)
	if err != nil {
		return Binding{}, false, fmt.Errorf("shader variable %q: %w", name, err)
	}
	if declared, ok := loc.InputType(name); ok && declared != typ.WGSL() {
		return Binding{}, false, fmt.Errorf("shader variable %q: %w: tag %s, declared %s",
			name, ErrTypeMismatch, typ, declared)
	}
	return Binding{Name: name, Type: typ, Location: uint32(location)}, true, nil //nolint:gosec // location checked non-negative
}

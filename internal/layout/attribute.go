// Package layout maps vertex attribute type tags to GPU vertex buffer
// layouts.
package layout

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// ErrUnknownType is returned for an attribute type tag outside
// int, float, vec2, vec3 and vec4.
var ErrUnknownType = errors.New("layout: unknown attribute type")

// ErrTypeMismatch is returned when the tagged type differs from the type
// the shader declares for the input.
var ErrTypeMismatch = errors.New("layout: attribute type mismatch")

// Type is the element type of a vertex attribute.
type Type int

const (
	TypeInt Type = iota
	TypeFloat
	TypeVec2
	TypeVec3
	TypeVec4
)

// ParseType maps a type tag to a Type.
func ParseType(tag string) (Type, error) {
	switch tag {
	case "int":
		return TypeInt, nil
	case "float":
		return TypeFloat, nil
	case "vec2":
		return TypeVec2, nil
	case "vec3":
		return TypeVec3, nil
	case "vec4":
		return TypeVec4, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrUnknownType, tag)
	}
}

// String returns the type tag.
func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeVec2:
		return "vec2"
	case TypeVec3:
		return "vec3"
	case TypeVec4:
		return "vec4"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// WGSL returns the shader-side spelling of the type.
func (t Type) WGSL() string {
	switch t {
	case TypeInt:
		return "i32"
	case TypeFloat:
		return "f32"
	case TypeVec2:
		return "vec2<f32>"
	case TypeVec3:
		return "vec3<f32>"
	case TypeVec4:
		return "vec4<f32>"
	default:
		return ""
	}
}

// Format returns the vertex format read by the GPU.
func (t Type) Format() gputypes.VertexFormat {
	switch t {
	case TypeInt:
		return gputypes.VertexFormatSint32
	case TypeFloat:
		return gputypes.VertexFormatFloat32
	case TypeVec2:
		return gputypes.VertexFormatFloat32x2
	case TypeVec4:
		return gputypes.VertexFormatFloat32x4
	default:
		return gputypes.VertexFormatFloat32x3
	}
}

// Components returns the number of scalar components.
func (t Type) Components() int {
	switch t {
	case TypeVec2:
		return 2
	case TypeVec3:
		return 3
	case TypeVec4:
		return 4
	default:
		return 1
	}
}

// Size returns the byte size of one element. All components are 4 bytes.
func (t Type) Size() uint64 {
	return uint64(t.Components()) * 4
}

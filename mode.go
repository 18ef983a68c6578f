package shapedemo

// DrawMode is the primitive assembly used to interpret a shape's points.
type DrawMode int

const (
	// Points draws each vertex as a point.
	Points DrawMode = iota
	// Lines draws independent segments from consecutive pairs.
	Lines
	// LineStrip connects consecutive vertices.
	LineStrip
	// LineLoop connects consecutive vertices and closes back to the first.
	LineLoop
	// Triangles draws independent triangles from consecutive triples.
	Triangles
	// TriangleStrip draws a strip where each new vertex forms a triangle
	// with the previous two.
	TriangleStrip
	// TriangleFan draws triangles sharing the first vertex.
	TriangleFan
)

// String returns the mode name.
func (m DrawMode) String() string {
	switch m {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case LineStrip:
		return "line-strip"
	case LineLoop:
		return "line-loop"
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle-strip"
	case TriangleFan:
		return "triangle-fan"
	default:
		return "unknown"
	}
}

// Filled reports whether the mode produces filled area.
func (m DrawMode) Filled() bool {
	return m == Triangles || m == TriangleStrip || m == TriangleFan
}

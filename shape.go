package shapedemo

import (
	"encoding/binary"
	"math"
)

// Vec3 is a vertex position in normalized device coordinates.
type Vec3 struct {
	X, Y, Z float32
}

// V2 returns a Vec3 on the z=0 plane.
func V2(x, y float32) Vec3 {
	return Vec3{X: x, Y: y}
}

// VertexSize is the byte size of one packed vertex (3 x float32).
const VertexSize = 3 * 4

// Shape is a fixed list of points with the primitive mode used to draw them.
// A Shape is immutable: the point count is set at construction and the
// points cannot be changed afterwards.
type Shape struct {
	name   string
	mode   DrawMode
	points []Vec3
}

// NewShape creates a shape from a copy of points.
func NewShape(name string, mode DrawMode, points ...Vec3) Shape {
	pts := make([]Vec3, len(points))
	copy(pts, points)
	return Shape{name: name, mode: mode, points: pts}
}

// Name returns the shape name.
func (s Shape) Name() string { return s.name }

// Mode returns the primitive mode.
func (s Shape) Mode() DrawMode { return s.mode }

// Len returns the number of points.
func (s Shape) Len() int { return len(s.points) }

// Vertices returns a copy of the points.
func (s Shape) Vertices() []Vec3 {
	out := make([]Vec3, len(s.points))
	copy(out, s.points)
	return out
}

// PackVertices packs points as little-endian float32 triples.
func PackVertices(points []Vec3) []byte {
	buf := make([]byte, len(points)*VertexSize)
	for i, p := range points {
		off := i * VertexSize
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(p.X))
		binary.LittleEndian.PutUint32(buf[off+4:off+8], math.Float32bits(p.Y))
		binary.LittleEndian.PutUint32(buf[off+8:off+12], math.Float32bits(p.Z))
	}
	return buf
}

// Hexagon returns the six-point hexagon drawn as a triangle fan.
func Hexagon() Shape {
	return NewShape("hexagon", TriangleFan,
		V2(0.1, 0.4),
		V2(0.4, 0.2),
		V2(0.4, -0.1),
		V2(0.1, -0.4),
		V2(-0.4, -0.2),
		V2(-0.3, 0.3),
	)
}

// Star returns the outline of a six-point star drawn as a line loop.
func Star() Shape {
	return NewShape("star", LineLoop,
		V2(0.0, 0.5),
		V2(0.1, 0.3),
		V2(0.3, 0.3),
		V2(0.2, 0.1),
		V2(0.3, -0.1),
		V2(0.1, -0.1),
		V2(0.0, -0.3),
		V2(-0.1, -0.1),
		V2(-0.3, -0.1),
		V2(-0.2, 0.1),
		V2(-0.3, 0.3),
		V2(-0.1, 0.3),
	)
}

// Triangle returns a single filled triangle centered on the origin.
func Triangle() Shape {
	return NewShape("triangle", Triangles,
		V2(-0.5, -0.5),
		V2(0.5, -0.5),
		V2(0.0, 0.5),
	)
}

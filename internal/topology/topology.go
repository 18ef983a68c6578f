// Package topology converts draw modes to primitive topologies the GPU
// supports.
//
// WebGPU has no triangle fan or line loop primitive. Fans are expanded into
// triangle lists and loops into closed line strips, so a shape is still drawn
// with a single draw call over the expanded vertex stream.
package topology

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/shapedemo"
)

// Expand returns the topology and vertex stream that draw points with mode.
// The result is empty when there are too few points for the mode.
func Expand(mode shapedemo.DrawMode, points []shapedemo.Vec3) (gputypes.PrimitiveTopology, []shapedemo.Vec3) {
	topo := primitive(mode)
	k := Count(mode, len(points))
	if k == 0 {
		return topo, nil
	}
	out := make([]shapedemo.Vec3, 0, k)
	switch mode {
	case shapedemo.LineLoop:
		out = append(out, points...)
		out = append(out, points[0])
	case shapedemo.TriangleFan:
		for i := 1; i < len(points)-1; i++ {
			out = append(out, points[0], points[i], points[i+1])
		}
	default:
		out = append(out, points[:k]...)
	}
	return topo, out
}

func primitive(mode shapedemo.DrawMode) gputypes.PrimitiveTopology {
	switch mode {
	case shapedemo.Lines:
		return gputypes.PrimitiveTopologyLineList
	case shapedemo.LineStrip, shapedemo.LineLoop:
		return gputypes.PrimitiveTopologyLineStrip
	case shapedemo.Triangles, shapedemo.TriangleFan:
		return gputypes.PrimitiveTopologyTriangleList
	case shapedemo.TriangleStrip:
		return gputypes.PrimitiveTopologyTriangleStrip
	default:
		return gputypes.PrimitiveTopologyPointList
	}
}

// Count returns the number of vertices Expand produces for n points.
func Count(mode shapedemo.DrawMode, n int) int {
	switch mode {
	case shapedemo.Points:
		return n
	case shapedemo.Lines:
		return n - n%2
	case shapedemo.LineStrip:
		if n < 2 {
			return 0
		}
		return n
	case shapedemo.LineLoop:
		if n < 2 {
			return 0
		}
		return n + 1
	case shapedemo.Triangles:
		return n - n%3
	case shapedemo.TriangleStrip:
		if n < 3 {
			return 0
		}
		return n
	case shapedemo.TriangleFan:
		if n < 3 {
			return 0
		}
		return (n - 2) * 3
	default:
		return 0
	}
}

package topology

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/shapedemo"
)

func TestExpandHexagonFan(t *testing.T) {
	hex := shapedemo.Hexagon()
	pts := hex.Vertices()

	topo, out := Expand(hex.Mode(), pts)
	if topo != gputypes.PrimitiveTopologyTriangleList {
		t.Errorf("topology = %v, want TriangleList", topo)
	}
	// 6 points -> 4 triangles.
	if len(out) != 12 {
		t.Fatalf("len = %d, want 12", len(out))
	}
	for tri := 0; tri < 4; tri++ {
		a, b, c := out[tri*3], out[tri*3+1], out[tri*3+2]
		if a != pts[0] || b != pts[tri+1] || c != pts[tri+2] {
			t.Errorf("triangle %d = %v %v %v, want fan around point 0", tri, a, b, c)
		}
	}
}

func TestExpandStarLoop(t *testing.T) {
	star := shapedemo.Star()
	pts := star.Vertices()

	topo, out := Expand(star.Mode(), pts)
	if topo != gputypes.PrimitiveTopologyLineStrip {
		t.Errorf("topology = %v, want LineStrip", topo)
	}
	if len(out) != 13 {
		t.Fatalf("len = %d, want 13", len(out))
	}
	if out[12] != pts[0] {
		t.Errorf("loop not closed: last = %v, first = %v", out[12], pts[0])
	}
	for i := range pts {
		if out[i] != pts[i] {
			t.Errorf("vertex %d = %v, want %v", i, out[i], pts[i])
		}
	}
}

func TestExpandModes(t *testing.T) {
	five := []shapedemo.Vec3{
		shapedemo.V2(0, 0), shapedemo.V2(1, 0), shapedemo.V2(1, 1),
		shapedemo.V2(0, 1), shapedemo.V2(0.5, 0.5),
	}
	tests := []struct {
		mode shapedemo.DrawMode
		n    int
		topo gputypes.PrimitiveTopology
		want int
	}{
		{shapedemo.Points, 5, gputypes.PrimitiveTopologyPointList, 5},
		{shapedemo.Lines, 5, gputypes.PrimitiveTopologyLineList, 4},
		{shapedemo.LineStrip, 5, gputypes.PrimitiveTopologyLineStrip, 5},
		{shapedemo.LineStrip, 1, gputypes.PrimitiveTopologyLineStrip, 0},
		{shapedemo.LineLoop, 5, gputypes.PrimitiveTopologyLineStrip, 6},
		{shapedemo.LineLoop, 1, gputypes.PrimitiveTopologyLineStrip, 0},
		{shapedemo.Triangles, 5, gputypes.PrimitiveTopologyTriangleList, 3},
		{shapedemo.TriangleStrip, 5, gputypes.PrimitiveTopologyTriangleStrip, 5},
		{shapedemo.TriangleStrip, 2, gputypes.PrimitiveTopologyTriangleStrip, 0},
		{shapedemo.TriangleFan, 5, gputypes.PrimitiveTopologyTriangleList, 9},
		{shapedemo.TriangleFan, 2, gputypes.PrimitiveTopologyTriangleList, 0},
		{shapedemo.TriangleFan, 0, gputypes.PrimitiveTopologyTriangleList, 0},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			topo, out := Expand(tt.mode, five[:tt.n])
			if topo != tt.topo {
				t.Errorf("topology = %v, want %v", topo, tt.topo)
			}
			if len(out) != tt.want {
				t.Errorf("len = %d, want %d", len(out), tt.want)
			}
			if c := Count(tt.mode, tt.n); c != tt.want {
				t.Errorf("Count = %d, want %d", c, tt.want)
			}
		})
	}
}

func TestExpandDoesNotAlias(t *testing.T) {
	pts := shapedemo.Star().Vertices()
	_, out := Expand(shapedemo.LineStrip, pts)
	out[0] = shapedemo.V2(9, 9)
	if pts[0] == out[0] {
		t.Error("Expand returned a slice aliasing its input")
	}
}

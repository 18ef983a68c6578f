// Package soft rasterizes a shape on the CPU with gg. It produces the same
// frame as the GPU renderer and is used when no GPU is available.
package soft

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/shapedemo"
)

// ErrClosed is returned by Render after Close.
var ErrClosed = errors.New("soft: renderer closed")

// lineWidth is the stroke width for line modes, in pixels.
const lineWidth = 1.0

// Renderer draws a shape into a gg context.
type Renderer struct {
	shape  shapedemo.Shape
	cfg    shapedemo.Config
	dc     *gg.Context
	closed bool
}

// NewRenderer creates a CPU renderer for shape.
func NewRenderer(shape shapedemo.Shape, cfg shapedemo.Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{shape: shape, cfg: cfg}, nil
}

// Render draws one w x h frame.
func (r *Renderer) Render(w, h int) (*image.RGBA, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", shapedemo.ErrInvalidSize, w, h)
	}
	if r.dc == nil {
		r.dc = gg.NewContext(w, h)
	} else if err := r.dc.Resize(w, h); err != nil {
		return nil, err
	}
	dc := r.dc

	dc.ClearWithColor(toRGBA(r.cfg.ClearColor))
	fill := toRGBA(r.cfg.FillColor)
	dc.SetRGBA(fill.R, fill.G, fill.B, fill.A)
	dc.SetLineWidth(lineWidth)

	vp := viewport{w: float64(w), h: float64(h)}
	pts := r.shape.Vertices()
	var err error
	switch mode := r.shape.Mode(); {
	case mode.Filled():
		err = fillTriangles(dc, vp, triangles(mode, pts))
	case mode == shapedemo.Points:
		for _, p := range pts {
			x, y := vp.project(p)
			dc.DrawRectangle(x-0.5, y-0.5, 1, 1)
		}
		err = dc.Fill()
	default:
		err = strokeLines(dc, vp, mode, pts)
	}
	if err != nil {
		return nil, fmt.Errorf("soft: draw %s: %w", r.shape.Name(), err)
	}
	return toImage(dc.Image()), nil
}

// Close releases the gg context. Safe to call more than once.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	if r.dc != nil {
		_ = r.dc.Close()
		r.dc = nil
	}
}

// viewport maps normalized device coordinates to pixels, with y pointing up
// in device space and down in pixel space.
type viewport struct {
	w, h float64
}

func (v viewport) project(p shapedemo.Vec3) (x, y float64) {
	return (float64(p.X) + 1) / 2 * v.w, (1 - float64(p.Y)) / 2 * v.h
}

// triangles splits a filled mode into independent triangles.
func triangles(mode shapedemo.DrawMode, pts []shapedemo.Vec3) [][3]shapedemo.Vec3 {
	var out [][3]shapedemo.Vec3
	switch mode {
	case shapedemo.Triangles:
		for i := 0; i+2 < len(pts); i += 3 {
			out = append(out, [3]shapedemo.Vec3{pts[i], pts[i+1], pts[i+2]})
		}
	case shapedemo.TriangleStrip:
		for i := 0; i+2 < len(pts); i++ {
			out = append(out, [3]shapedemo.Vec3{pts[i], pts[i+1], pts[i+2]})
		}
	case shapedemo.TriangleFan:
		for i := 1; i+1 < len(pts); i++ {
			out = append(out, [3]shapedemo.Vec3{pts[0], pts[i], pts[i+1]})
		}
	}
	return out
}

// fillTriangles fills each triangle on its own so overlapping triangles of
// opposite winding do not cancel.
func fillTriangles(dc *gg.Context, vp viewport, tris [][3]shapedemo.Vec3) error {
	for _, tri := range tris {
		x, y := vp.project(tri[0])
		dc.MoveTo(x, y)
		for _, p := range tri[1:] {
			x, y = vp.project(p)
			dc.LineTo(x, y)
		}
		dc.ClosePath()
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

func strokeLines(dc *gg.Context, vp viewport, mode shapedemo.DrawMode, pts []shapedemo.Vec3) error {
	if len(pts) < 2 {
		return nil
	}
	if mode == shapedemo.Lines {
		for i := 0; i+1 < len(pts); i += 2 {
			x0, y0 := vp.project(pts[i])
			x1, y1 := vp.project(pts[i+1])
			dc.MoveTo(x0, y0)
			dc.LineTo(x1, y1)
		}
		return dc.Stroke()
	}

	x, y := vp.project(pts[0])
	dc.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = vp.project(p)
		dc.LineTo(x, y)
	}
	if mode == shapedemo.LineLoop {
		dc.ClosePath()
	}
	return dc.Stroke()
}

func toRGBA(c gputypes.Color) gg.RGBA {
	return gg.RGBA{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}

// toImage returns img as *image.RGBA, copying when it has another type.
func toImage(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

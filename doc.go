// Package shapedemo renders a single static 2D shape with a minimal GPU
// pipeline: one vertex buffer, a pass-through vertex stage and a solid color
// fragment stage.
//
// # Overview
//
// A [Shape] is a fixed list of points in normalized device coordinates plus
// the [DrawMode] used to assemble them. Two shapes ship with the package:
//
//	shapedemo.Hexagon() // six points, filled as a triangle fan
//	shapedemo.Star()    // twelve points, outlined as a line loop
//
// The commands in cmd/hexagon and cmd/star open a 400x400 window and draw
// one of them on a gray background in yellow.
//
// # Rendering
//
// Setup runs once: the shape is uploaded to a GPU vertex buffer, the WGSL
// shader pair is compiled with naga and linked into a render pipeline, and
// the position attribute is bound to the buffer. Each repaint clears the
// frame and issues a single draw call. When no GPU is available the same
// frame is rasterized on the CPU with gg.
//
// # Logging
//
// Nothing is logged by default. Use [SetLogger] to enable output:
//
//	shapedemo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
package shapedemo

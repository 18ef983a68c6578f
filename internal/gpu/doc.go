// Package gpu renders a shape offscreen through the wgpu HAL.
//
// Setup happens once in [NewRenderer]:
//
//	WGSL -> naga (SPIR-V) -> Program -> attribute Binding
//	Shape -> topology.Expand -> vertex buffer (Mesh)
//	Program + Binding + Mesh topology -> render pipeline
//
// Each [Renderer.Render] clears a BGRA8 target of the requested size, issues
// a single draw over every vertex of the mesh, copies the target into a
// staging buffer and returns the pixels as RGBA.
//
// Devices come from [OpenDevice] (a dedicated Vulkan device) or
// [FromProvider] (the device of a host window, which is never destroyed here).
// Tests run against the noop HAL backend.
package gpu

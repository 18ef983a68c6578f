// Package shader compiles and links the WGSL shader pair used to draw a
// shape.
//
// Each stage is compiled on its own with naga, which validates the source
// and produces SPIR-V. [Link] pairs a vertex and a fragment module into a
// [Program] that knows the locations of its vertex inputs. The GPU pipeline
// is created from a Program by package gpu.
package shader

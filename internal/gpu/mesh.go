package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shapedemo"
	"github.com/gogpu/shapedemo/internal/topology"
)

// Mesh is a shape's vertex stream uploaded to a GPU vertex buffer. It is
// written once at creation and never updated.
type Mesh struct {
	buffer   hal.Buffer
	count    uint32
	size     uint64
	topology gputypes.PrimitiveTopology
}

// UploadMesh expands shape for its draw mode and uploads the result.
// A shape with too few points for its mode yields an empty mesh with no
// buffer; drawing it is a no-op.
func UploadMesh(d *Device, shape shapedemo.Shape) (*Mesh, error) {
	topo, stream := topology.Expand(shape.Mode(), shape.Vertices())
	m := &Mesh{topology: topo}
	if len(stream) == 0 {
		return m, nil
	}

	data := shapedemo.PackVertices(stream)
	buf, err := d.Device.CreateBuffer(&hal.BufferDescriptor{
		Label: shape.Name() + "_vertices",
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create vertex buffer: %w", err)
	}
	if err := d.Queue.WriteBuffer(buf, 0, data); err != nil {
		d.Device.DestroyBuffer(buf)
		return nil, fmt.Errorf("gpu: write vertex buffer: %w", err)
	}

	m.buffer = buf
	m.count = uint32(len(stream)) //nolint:gosec // vertex count fits uint32
	m.size = uint64(len(data))
	shapedemo.Logger().Debug("gpu: mesh uploaded",
		"shape", shape.Name(), "mode", shape.Mode().String(), "vertices", m.count, "bytes", m.size)
	return m, nil
}

// Count returns the number of vertices drawn.
func (m *Mesh) Count() uint32 { return m.count }

// Size returns the vertex buffer size in bytes.
func (m *Mesh) Size() uint64 { return m.size }

// Topology returns the primitive topology of the stream.
func (m *Mesh) Topology() gputypes.PrimitiveTopology { return m.topology }

func (m *Mesh) destroy(device hal.Device) {
	if m.buffer != nil {
		device.DestroyBuffer(m.buffer)
		m.buffer = nil
	}
}

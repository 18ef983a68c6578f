package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"math"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shapedemo"
	"github.com/gogpu/shapedemo/internal/layout"
	"github.com/gogpu/shapedemo/internal/shader"
)

// ErrClosed is returned by Render after Close.
var ErrClosed = errors.New("gpu: renderer closed")

// copyPitchAlignment is the row alignment required for texture-to-buffer
// copies.
const copyPitchAlignment = 256

// Renderer draws one shape with a single draw call per frame.
//
// All GPU objects are created once by NewRenderer: the vertex buffer, the
// shader program, its pipeline and the fill uniform. Render only
// (re)allocates the offscreen target when the frame size changes.
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	dev      *Device
	cfg      shapedemo.Config
	program  *shader.Program
	binding  *layout.Binding
	mesh     *Mesh
	pipeline *Pipeline

	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup

	target target
	closed bool
}

// NewRenderer runs the one-time setup for shape: compile and link the
// shader pair, bind the configured attribute, upload the vertices and
// write the fill color.
func NewRenderer(dev *Device, shape shapedemo.Shape, cfg shapedemo.Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prog, err := shader.Build(shape.Name(), shader.PositionSource(), shader.SolidSource())
	if err != nil {
		return nil, err
	}

	binding, ok, err := layout.Bind(prog, cfg.Attribute, cfg.AttributeType)
	if err != nil {
		return nil, err
	}
	var bp *layout.Binding
	if ok {
		bp = &binding
	} else {
		shapedemo.Logger().Warn("gpu: attribute not referenced by program", "attribute", cfg.Attribute)
	}

	r := &Renderer{dev: dev, cfg: cfg, program: prog, binding: bp}

	if r.mesh, err = UploadMesh(dev, shape); err != nil {
		r.Close()
		return nil, err
	}
	if r.pipeline, err = newPipeline(dev, prog, bp, r.mesh.Topology()); err != nil {
		r.Close()
		return nil, err
	}
	if err := r.createFillUniform(); err != nil {
		r.Close()
		return nil, err
	}

	shapedemo.Logger().Debug("gpu: renderer ready",
		"shape", shape.Name(), "vertices", r.mesh.Count(), "topology", fmt.Sprint(r.mesh.Topology()))
	return r, nil
}

// Program returns the linked shader program.
func (r *Renderer) Program() *shader.Program { return r.program }

// Mesh returns the uploaded vertex stream.
func (r *Renderer) Mesh() *Mesh { return r.mesh }

func (r *Renderer) createFillUniform() error {
	data := fillUniform(r.cfg.FillColor)
	buf, err := r.dev.Device.CreateBuffer(&hal.BufferDescriptor{
		Label: "fill_uniform",
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: create fill uniform: %w", err)
	}
	r.uniformBuf = buf
	if err := r.dev.Queue.WriteBuffer(buf, 0, data); err != nil {
		return fmt.Errorf("gpu: write fill uniform: %w", err)
	}

	bg, err := r.dev.Device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "fill_bind",
		Layout: r.pipeline.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: 0, Size: fillUniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create fill bind group: %w", err)
	}
	r.bindGroup = bg
	return nil
}

// fillUniform packs a color as vec4<f32>.
func fillUniform(c gputypes.Color) []byte {
	buf := make([]byte, fillUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(c.R)))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(c.G)))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(float32(c.B)))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(float32(c.A)))
	return buf
}

// Render draws one frame of w x h pixels and reads it back. The viewport
// covers the whole frame.
func (r *Renderer) Render(w, h int) (*image.RGBA, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", shapedemo.ErrInvalidSize, w, h)
	}
	uw, uh := uint32(w), uint32(h) //nolint:gosec // checked positive
	device := r.dev.Device

	if err := r.target.ensure(device, uw, uh); err != nil {
		return nil, err
	}

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "shape_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create command encoder: %w", err)
	}
	defer encoder.Destroy()
	if err := encoder.BeginEncoding("shape_frame"); err != nil {
		return nil, fmt.Errorf("gpu: begin encoding: %w", err)
	}
	ended := false
	defer func() {
		if !ended {
			encoder.DiscardEncoding()
		}
	}()

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "shape_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       r.target.view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: r.cfg.ClearColor,
		}},
	})
	r.recordDraw(rp)
	rp.End()

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.target.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	bytesPerRow := uw * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(uh)

	staging, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "shape_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create staging buffer: %w", err)
	}
	defer device.DestroyBuffer(staging)

	encoder.CopyTextureToBuffer(r.target.tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: uh},
		TextureBase:  hal.ImageCopyTexture{Texture: r.target.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: uw, Height: uh, DepthOrArrayLayers: 1},
	}})

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.target.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("gpu: end encoding: %w", err)
	}
	ended = true
	defer device.FreeCommandBuffer(cmdBuf)

	if _, err := r.dev.Queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return nil, fmt.Errorf("gpu: submit: %w", err)
	}
	if err := device.WaitIdle(); err != nil {
		return nil, fmt.Errorf("gpu: wait for frame: %w", err)
	}

	readback, err := readBuffer(device, staging, stagingSize)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	copyBGRARows(img.Pix, readback, int(bytesPerRow), int(alignedBytesPerRow), h)
	return img, nil
}

// recordDraw binds the program and vertex buffer and issues the single
// draw call. An empty mesh records nothing. Without an attribute binding the
// pipeline has no vertex buffer slot, so none is set.
func (r *Renderer) recordDraw(rp hal.RenderPassEncoder) {
	if r.mesh == nil || r.mesh.count == 0 {
		return
	}
	rp.SetPipeline(r.pipeline.pipeline)
	rp.SetBindGroup(0, r.bindGroup, nil)
	if r.binding != nil {
		rp.SetVertexBuffer(0, r.mesh.buffer, 0)
	}
	rp.Draw(r.mesh.count, 1, 0, 0)
}

// readBuffer copies size bytes out of a mapped staging buffer.
func readBuffer(device hal.Device, buf hal.Buffer, size uint64) ([]byte, error) {
	m, err := device.MapBuffer(buf, 0, size)
	if err != nil {
		return nil, fmt.Errorf("gpu: map staging buffer: %w", err)
	}
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(m.Ptr), size))
	if err := device.UnmapBuffer(buf); err != nil {
		return nil, fmt.Errorf("gpu: unmap staging buffer: %w", err)
	}
	return out, nil
}

// copyBGRARows strips row padding from src and swaps B and R into dst.
func copyBGRARows(dst, src []byte, rowBytes, srcPitch, rows int) {
	for y := 0; y < rows; y++ {
		s := src[y*srcPitch : y*srcPitch+rowBytes]
		d := dst[y*rowBytes : (y+1)*rowBytes]
		for i := 0; i < rowBytes; i += 4 {
			d[i+0] = s[i+2]
			d[i+1] = s[i+1]
			d[i+2] = s[i+0]
			d[i+3] = s[i+3]
		}
	}
}

// Close releases all GPU objects in reverse creation order. The device is
// not closed. Safe to call more than once.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	device := r.dev.Device
	if device == nil {
		return
	}
	r.target.destroy(device)
	if r.bindGroup != nil {
		device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.uniformBuf != nil {
		device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.pipeline != nil {
		r.pipeline.destroy(device)
		r.pipeline = nil
	}
	if r.mesh != nil {
		r.mesh.destroy(device)
	}
}

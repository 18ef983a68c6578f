package gpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shapedemo/internal/layout"
	"github.com/gogpu/shapedemo/internal/shader"
)

// targetFormat is the color format of the offscreen frame.
const targetFormat = gputypes.TextureFormatBGRA8Unorm

// fillUniformSize is the byte size of the fill color uniform (vec4<f32>).
const fillUniformSize = 16

// Pipeline is a linked shader program turned into a GPU render pipeline.
type Pipeline struct {
	vertexModule   hal.ShaderModule
	fragmentModule hal.ShaderModule
	uniformLayout  hal.BindGroupLayout
	pipeLayout     hal.PipelineLayout
	pipeline       hal.RenderPipeline
}

// newPipeline creates shader modules for both stages of prog, the fill
// uniform layout and the render pipeline. A nil binding creates a pipeline
// without vertex buffers. Any failure is reported as a *shader.LinkError
// carrying the driver message.
func newPipeline(d *Device, prog *shader.Program, binding *layout.Binding, topo gputypes.PrimitiveTopology) (*Pipeline, error) {
	p := &Pipeline{}
	fail := func(step string, err error) (*Pipeline, error) {
		p.destroy(d.Device)
		return nil, &shader.LinkError{Label: prog.Label, Log: step + ": " + err.Error()}
	}

	var err error
	if p.vertexModule, err = createShaderModule(d, prog.Vertex); err != nil {
		return fail("create vertex module", err)
	}
	if p.fragmentModule, err = createShaderModule(d, prog.Fragment); err != nil {
		return fail("create fragment module", err)
	}

	p.uniformLayout, err = d.Device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: prog.Label + "_fill_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fail("create uniform layout", err)
	}

	p.pipeLayout, err = d.Device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            prog.Label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		return fail("create pipeline layout", err)
	}

	var buffers []gputypes.VertexBufferLayout
	if binding != nil {
		buffers = []gputypes.VertexBufferLayout{binding.Layout()}
	}

	p.pipeline, err = d.Device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  prog.Label + "_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.vertexModule,
			EntryPoint: shader.VertexEntry,
			Buffers:    buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     p.fragmentModule,
			EntryPoint: shader.FragmentEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    targetFormat,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: topo,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fail("create render pipeline", err)
	}
	return p, nil
}

// createShaderModule uploads a compiled stage. Vulkan devices opened by
// this package take the SPIR-V; shared devices take WGSL and translate it
// for their own backend.
func createShaderModule(d *Device, m *shader.Module) (hal.ShaderModule, error) {
	src := hal.ShaderSource{WGSL: m.WGSL}
	if d.spirv && len(m.SPIRV) > 0 {
		src = hal.ShaderSource{SPIRV: m.SPIRV}
	}
	return d.Device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  m.Label,
		Source: src,
	})
}

// destroy releases pipeline objects in reverse creation order.
func (p *Pipeline) destroy(device hal.Device) {
	if device == nil {
		return
	}
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.fragmentModule != nil {
		device.DestroyShaderModule(p.fragmentModule)
		p.fragmentModule = nil
	}
	if p.vertexModule != nil {
		device.DestroyShaderModule(p.vertexModule)
		p.vertexModule = nil
	}
}

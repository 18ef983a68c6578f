package shader

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"
)

// Entry point names used by all stages.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

//go:embed shaders/position.wgsl
var positionSource string

//go:embed shaders/solid.wgsl
var solidSource string

// Stage identifies a pipeline stage.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

// entry returns the entry point name and naga stage for s.
func (s Stage) entry() (string, ir.ShaderStage) {
	if s == StageFragment {
		return FragmentEntry, ir.StageFragment
	}
	return VertexEntry, ir.StageVertex
}

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Source is WGSL code for one stage.
type Source struct {
	Stage Stage
	Label string
	Code  string
}

// PositionSource returns the pass-through vertex stage. It reads a vec3
// position at location 0.
func PositionSource() Source {
	return Source{Stage: StageVertex, Label: "position_vs", Code: positionSource}
}

// SolidSource returns the solid color fragment stage. The color comes from a
// 16-byte uniform at group 0, binding 0.
func SolidSource() Source {
	return Source{Stage: StageFragment, Label: "solid_fs", Code: solidSource}
}

// Module is a compiled stage. IR is the lowered naga module the SPIR-V was
// generated from; vertex inputs are read from it.
type Module struct {
	Stage Stage
	Label string
	WGSL  string
	IR    *ir.Module
	SPIRV []uint32

	inputs []Input
}

// Inputs returns the located vertex inputs of the stage entry point.
// Fragment modules have none.
func (m *Module) Inputs() []Input {
	out := make([]Input, len(m.inputs))
	copy(out, m.inputs)
	return out
}

// CompileError reports a stage that failed to compile. Log holds the
// compiler output.
type CompileError struct {
	Stage Stage
	Label string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader: compile %s stage %q: %s", e.Stage, e.Label, e.Log)
}

// Compile parses and lowers src with naga, checks that it declares the
// stage's entry point, validates it and generates SPIR-V.
func Compile(src Source) (*Module, error) {
	fail := func(log string) (*Module, error) {
		return nil, &CompileError{Stage: src.Stage, Label: src.Label, Log: log}
	}

	ast, err := naga.Parse(src.Code)
	if err != nil {
		return fail(err.Error())
	}
	mod, err := naga.LowerWithSource(ast, src.Code)
	if err != nil {
		return fail(err.Error())
	}

	name, stage := src.Stage.entry()
	ep := findEntryPoint(mod, name, stage)
	if ep == nil {
		return fail(fmt.Sprintf("entry point %s not found", name))
	}

	issues, err := naga.Validate(mod)
	if err != nil {
		return fail(err.Error())
	}
	if len(issues) > 0 {
		return fail(issues[0].Error())
	}

	var inputs []Input
	if src.Stage == StageVertex {
		inputs = vertexInputs(mod, ep)
	}

	spirvBytes, err := naga.GenerateSPIRV(mod, spirv.Options{Version: naga.DefaultOptions().SPIRVVersion})
	if err != nil {
		return fail(err.Error())
	}

	return &Module{
		Stage:  src.Stage,
		Label:  src.Label,
		WGSL:   src.Code,
		IR:     mod,
		SPIRV:  spirvWords(spirvBytes),
		inputs: inputs,
	}, nil
}

func findEntryPoint(mod *ir.Module, name string, stage ir.ShaderStage) *ir.EntryPoint {
	for i := range mod.EntryPoints {
		if ep := &mod.EntryPoints[i]; ep.Name == name && ep.Stage == stage {
			return ep
		}
	}
	return nil
}

// spirvWords converts little-endian SPIR-V bytes to 32-bit words.
func spirvWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}

package shader

import (
	"errors"
	"testing"
)

func compileVertex(t *testing.T, code string) *Module {
	t.Helper()
	m, err := Compile(Source{Stage: StageVertex, Label: "test_vs", Code: code})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return m
}

func TestModuleInputs(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []Input
	}{
		{
			name: "arguments",
			code: `
@vertex
fn vs_main(@location(0) position: vec3<f32>, @location(2) weight: f32, @builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(position, weight + f32(idx));
}`,
			want: []Input{
				{Location: 0, Name: "position", Type: "vec3<f32>"},
				{Location: 2, Name: "weight", Type: "f32"},
			},
		},
		{
			name: "struct members",
			code: `
struct VsIn {
    @location(1) offset: vec2<f32>,
    @location(4) id: i32,
}

@vertex
fn vs_main(v: VsIn) -> @builtin(position) vec4<f32> {
    return vec4<f32>(v.offset, f32(v.id), 1.0);
}`,
			want: []Input{
				{Location: 1, Name: "offset", Type: "vec2<f32>"},
				{Location: 4, Name: "id", Type: "i32"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compileVertex(t, tt.code).Inputs()
			if len(got) != len(tt.want) {
				t.Fatalf("Inputs = %+v, want %+v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("input %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Commented-out declarations and vertex outputs are not inputs.
const tintedSource = `
struct VsOut {
    @builtin(position) pos: vec4<f32>,
    @location(0) tint: vec4<f32>,
}

// @location(3) ghost: f32
@vertex
fn vs_main(@location(0) position: vec3<f32>) -> VsOut {
    var result: VsOut;
    result.pos = vec4<f32>(position, 1.0);
    result.tint = vec4<f32>(1.0, 1.0, 0.0, 1.0);
    return result;
}`

func TestAttribLocationIgnoresCommentsAndOutputs(t *testing.T) {
	fs, err := Compile(SolidSource())
	if err != nil {
		t.Fatalf("Compile fragment: %v", err)
	}
	p, err := Link("tinted", compileVertex(t, tintedSource), fs)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	for name, want := range map[string]int{"position": 0, "ghost": -1, "tint": -1, "pos": -1} {
		if got := p.AttribLocation(name); got != want {
			t.Errorf("AttribLocation(%s) = %d, want %d", name, got, want)
		}
	}
}

func TestLinkOutputSharingInputName(t *testing.T) {
	vs := compileVertex(t, `
struct VsOut {
    @builtin(position) clip: vec4<f32>,
    @location(0) position: vec3<f32>,
}

@vertex
fn vs_main(@location(0) position: vec3<f32>) -> VsOut {
    var result: VsOut;
    result.clip = vec4<f32>(position, 1.0);
    result.position = position;
    return result;
}`)
	fs, err := Compile(SolidSource())
	if err != nil {
		t.Fatalf("Compile fragment: %v", err)
	}
	p, err := Link("echo", vs, fs)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if loc := p.AttribLocation("position"); loc != 0 {
		t.Errorf("AttribLocation(position) = %d, want 0", loc)
	}
}

func TestBuildDefaultProgram(t *testing.T) {
	p, err := Build("shape", PositionSource(), SolidSource())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if loc := p.AttribLocation("position"); loc != 0 {
		t.Errorf("AttribLocation(position) = %d, want 0", loc)
	}
	if loc := p.AttribLocation("vPos"); loc != -1 {
		t.Errorf("AttribLocation(vPos) = %d, want -1", loc)
	}
	typ, ok := p.InputType("position")
	if !ok || typ != "vec3<f32>" {
		t.Errorf("InputType(position) = %q, %v", typ, ok)
	}
}

func TestLinkErrors(t *testing.T) {
	vs, err := Compile(PositionSource())
	if err != nil {
		t.Fatalf("Compile vertex: %v", err)
	}
	fs, err := Compile(SolidSource())
	if err != nil {
		t.Fatalf("Compile fragment: %v", err)
	}

	tests := []struct {
		name   string
		vs, fs *Module
	}{
		{"missing fragment", vs, nil},
		{"missing vertex", nil, fs},
		{"swapped", fs, vs},
		{"two vertex", vs, vs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Link("bad", tt.vs, tt.fs)
			var le *LinkError
			if !errors.As(err, &le) {
				t.Fatalf("Link error = %v, want *LinkError", err)
			}
			if le.Label != "bad" || le.Log == "" {
				t.Errorf("LinkError = %+v", le)
			}
		})
	}
}

func TestLinkDuplicateInput(t *testing.T) {
	vs := &Module{
		Stage: StageVertex,
		Label: "dup",
		inputs: []Input{
			{Location: 0, Name: "p", Type: "vec3<f32>"},
			{Location: 1, Name: "p", Type: "vec2<f32>"},
		},
	}
	fs := &Module{Stage: StageFragment, Label: "fs"}
	var le *LinkError
	if _, err := Link("dup", vs, fs); !errors.As(err, &le) {
		t.Fatalf("Link error = %v, want *LinkError", err)
	}
}

func TestBuildPropagatesCompileError(t *testing.T) {
	bad := Source{Stage: StageFragment, Label: "bad_fs", Code: "@fragment fn fs_main( {"}
	_, err := Build("shape", PositionSource(), bad)
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("Build error = %v, want *CompileError", err)
	}
	if ce.Stage != StageFragment {
		t.Errorf("Stage = %s, want fragment", ce.Stage)
	}
}

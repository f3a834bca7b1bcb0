package gpu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validWGSL = `
@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    var positions = array<vec2<f32>, 3>(
        vec2<f32>(-1.0, -1.0),
        vec2<f32>(3.0, -1.0),
        vec2<f32>(-1.0, 3.0)
    );
    return vec4<f32>(positions[idx], 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 1.0, 1.0);
}
`

const brokenWGSL = `
@vertex
fn vs_main( -> @builtin(position vec4<f32> {
    return vec4<f32>(
`

func TestValidateWGSLAcceptsWorkingSource(t *testing.T) {
	assert.NoError(t, validateWGSL(validWGSL))
}

func TestValidateWGSLRejectsBrokenSource(t *testing.T) {
	assert.Error(t, validateWGSL(brokenWGSL))
}

// Edit cycle as seen by the validation layer: working source, a broken
// edit, then the fix. The source is re-read from disk on every attempt.
func TestValidateWGSLObservesSourceEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edited.wgsl")

	require.NoError(t, os.WriteFile(path, []byte(validWGSL), 0o644))
	source, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NoError(t, validateWGSL(string(source)))

	require.NoError(t, os.WriteFile(path, []byte(brokenWGSL), 0o644))
	source, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Error(t, validateWGSL(string(source)))

	require.NoError(t, os.WriteFile(path, []byte(validWGSL), 0o644))
	source, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NoError(t, validateWGSL(string(source)))
}

func TestRecompileKeepsPipelineOnValidationFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pass.wgsl")
	require.NoError(t, os.WriteFile(path, []byte(brokenWGSL), 0o644))

	m := newTestManager()
	h := Handle{
		index: m.shaders.add(&Shader{desc: ShaderDesc{
			Label: "pass",
			VS:    ShaderModuleDesc{Path: path, EntryPoint: "vs_main"},
		}}),
		kind: KindShader,
	}

	m.Recompile(h)

	assert.NotEmpty(t, m.CompileError())
	// The arena slot is untouched: no new pipeline was installed.
	assert.Nil(t, m.GetShader(h).Pipeline())
	assert.Equal(t, path, m.GetShader(h).Desc().VS.Path)
}

func TestRecompileReportsMissingSource(t *testing.T) {
	m := newTestManager()
	h := Handle{
		index: m.shaders.add(&Shader{desc: ShaderDesc{
			VS: ShaderModuleDesc{Path: filepath.Join(t.TempDir(), "gone.wgsl"), EntryPoint: "vs_main"},
		}}),
		kind: KindShader,
	}

	m.Recompile(h)
	assert.NotEmpty(t, m.CompileError())
}

// Every attempt overwrites the diagnostic; messages never accumulate.
func TestRecompileOverwritesDiagnostic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pass.wgsl")
	require.NoError(t, os.WriteFile(path, []byte(brokenWGSL), 0o644))

	m := newTestManager()
	m.compileError = "stale diagnostic from an earlier attempt"
	h := Handle{
		index: m.shaders.add(&Shader{desc: ShaderDesc{
			VS: ShaderModuleDesc{Path: path, EntryPoint: "vs_main"},
		}}),
		kind: KindShader,
	}

	m.Recompile(h)

	require.NotEmpty(t, m.CompileError())
	assert.NotEqual(t, "stale diagnostic from an earlier attempt", m.CompileError())
	assert.NotContains(t, m.CompileError(), "stale diagnostic")
}

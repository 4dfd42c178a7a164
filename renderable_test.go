package retroscreen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/retroscreen"
)

func newTestProgram(t *testing.T, dev *fakeDevice, uniforms ...string) *retroscreen.Program {
	t.Helper()
	p, err := retroscreen.CreateProgram(dev, retroscreen.SimpleVertexSource, retroscreen.RetroFragmentSource, uniforms...)
	require.NoError(t, err)
	return p
}

func TestRenderableBindsUVsOnlyWithTexture(t *testing.T) {
	dev := newFakeDevice()
	g, err := retroscreen.NewGeometry(retroscreen.PresetComputer, retroscreen.ScreenConfig{})
	require.NoError(t, err)
	tex, err := retroscreen.NewTexture(dev, 4, 4, nil)
	require.NoError(t, err)
	p := newTestProgram(t, dev)

	retroscreen.NewRenderable(dev, g, tex, p)
	retroscreen.NewRenderable(dev, g, nil, p)

	var counts []int
	for _, attribs := range dev.vaoAttribs {
		counts = append(counts, len(attribs))
	}
	assert.ElementsMatch(t, []int{1, 2}, counts)
}

func TestRenderableWithoutUVs(t *testing.T) {
	dev := newFakeDevice()
	g := &retroscreen.Geometry{Vertices: []float32{-1, -1, 1, -1, 0, 1}, VertexCount: 3}
	tex, err := retroscreen.NewTexture(dev, 4, 4, nil)
	require.NoError(t, err)

	r := retroscreen.NewRenderable(dev, g, tex, newTestProgram(t, dev))
	r.Render()

	require.Len(t, dev.draws, 1)
	assert.Len(t, dev.vaoAttribs[dev.draws[0].vao], 1)
	assert.Equal(t, 3, dev.draws[0].count)
}

func TestRenderableRenderOrder(t *testing.T) {
	dev := newFakeDevice()
	g, err := retroscreen.NewGeometry(retroscreen.PresetComputer, retroscreen.ScreenConfig{})
	require.NoError(t, err)
	tex, err := retroscreen.NewTexture(dev, 4, 4, nil)
	require.NoError(t, err)
	p := newTestProgram(t, dev, retroscreen.AspectUniform)

	var hookCalls int
	r := retroscreen.NewRenderable(dev, g, tex, p, retroscreen.WithUniforms(func(d retroscreen.Device, prog *retroscreen.Program) {
		hookCalls++
		assert.Same(t, p, prog)
		d.Uniform1f(7, 0.5)
	}))

	dev.calls = nil
	r.Render()

	assert.Equal(t, 1, hookCalls)
	require.Len(t, dev.calls, 5)
	assert.Equal(t, "use", dev.calls[0][:3])
	assert.Equal(t, "bind texture", dev.calls[1][:12])
	assert.Equal(t, "bind vao", dev.calls[2][:8])
	assert.Equal(t, "uniform1f 7", dev.calls[3])
	assert.Equal(t, "draw 4", dev.calls[4])

	require.Len(t, dev.draws, 1)
	assert.Equal(t, p.Handle, dev.draws[0].program)
	assert.Equal(t, tex.ID(), dev.draws[0].texture)
}

func TestRenderableWithoutTextureBindsNone(t *testing.T) {
	dev := newFakeDevice()
	g, err := retroscreen.NewGeometry(retroscreen.PresetComputer, retroscreen.ScreenConfig{})
	require.NoError(t, err)

	retroscreen.NewRenderable(dev, g, nil, newTestProgram(t, dev)).Render()

	require.Len(t, dev.draws, 1)
	assert.Zero(t, dev.draws[0].texture)
}

func TestAspectUniforms(t *testing.T) {
	dev := newFakeDevice()
	active := newTestProgram(t, dev, retroscreen.AspectUniform)
	retroscreen.AspectUniforms(1.25)(dev, active)

	loc, ok := active.Location(retroscreen.AspectUniform)
	require.True(t, ok)
	assert.Equal(t, float32(1.25), dev.uniform1f[loc])

	dev = newFakeDevice()
	dev.inactive[retroscreen.AspectUniform] = true
	inactive := newTestProgram(t, dev, retroscreen.AspectUniform)
	retroscreen.AspectUniforms(1.25)(dev, inactive)
	assert.Empty(t, dev.uniform1f)
}

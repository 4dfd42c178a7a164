package retroscreen

// UniformSetter uploads per-draw uniforms. It runs after the program,
// texture and vertex array are bound.
type UniformSetter func(dev Device, p *Program)

// RenderableOption configures a Renderable.
type RenderableOption func(*Renderable)

// WithUniforms sets the per-draw uniform hook.
func WithUniforms(fn UniformSetter) RenderableOption {
	return func(r *Renderable) { r.uniforms = fn }
}

// Renderable draws one geometry with one program and an optional texture.
// The texture and program are shared; the vertex array is owned.
type Renderable struct {
	dev      Device
	geometry *Geometry
	texture  *Texture
	program  *Program
	vao      uint32
	uniforms UniformSetter
}

// NewRenderable uploads geometry into a new vertex array. Positions go to
// slot 0; UVs go to slot 1 when both tex and geometry UVs are present.
func NewRenderable(dev Device, geometry *Geometry, tex *Texture, program *Program, opts ...RenderableOption) *Renderable {
	r := &Renderable{
		dev:      dev,
		geometry: geometry,
		texture:  tex,
		program:  program,
	}
	for _, opt := range opts {
		opt(r)
	}

	if tex != nil && geometry.UVs != nil {
		r.vao = dev.CreateVertexArray(geometry.Vertices, geometry.UVs)
	} else {
		r.vao = dev.CreateVertexArray(geometry.Vertices)
	}
	return r
}

// Render issues the draw call.
func (r *Renderable) Render() {
	r.dev.UseProgram(r.program.Handle)
	if r.texture != nil {
		r.dev.BindTexture(r.texture.ID())
	} else {
		r.dev.BindTexture(0)
	}
	r.dev.BindVertexArray(r.vao)
	if r.uniforms != nil {
		r.uniforms(r.dev, r.program)
	}
	r.dev.DrawFan(r.geometry.VertexCount)
}

// AspectUniforms returns a setter that uploads a fixed value to the aspect
// uniform, if the program kept it.
func AspectUniforms(aspect float32) UniformSetter {
	return func(dev Device, p *Program) {
		if loc, ok := p.Location(AspectUniform); ok {
			dev.Uniform1f(loc, aspect)
		}
	}
}

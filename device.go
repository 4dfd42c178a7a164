package retroscreen

import "image"

// Stage identifies a shader pipeline stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
	// StageProgram is used for link diagnostics.
	StageProgram
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageProgram:
		return "program"
	default:
		return "unknown"
	}
}

// Device is the slice of the graphics API the scene draws with.
// backend/opengl implements it on top of OpenGL 4.1 core.
//
// Handles are plain uint32 names; 0 means "none" everywhere.
type Device interface {
	// CompileShader compiles one stage and returns its handle together with
	// the driver's diagnostic log (empty when the driver had nothing to say).
	CompileShader(stage Stage, source string) (shader uint32, infoLog string)
	// LinkProgram links the given shaders. The log is non-empty only when
	// linking failed.
	LinkProgram(shaders ...uint32) (program uint32, infoLog string)
	// UniformLocation resolves a uniform; ok is false when the program has no
	// active uniform with that name.
	UniformLocation(program uint32, name string) (loc int32, ok bool)
	UseProgram(program uint32)
	Uniform1f(loc int32, v float32)

	// CreateTexture allocates RGBA8 storage, uploading pix when non-nil.
	CreateTexture(width, height int, pix []byte) uint32
	// UpdateTexture replaces the full contents of an existing texture.
	UpdateTexture(tex uint32, width, height int, pix []byte)
	BindTexture(tex uint32)

	// CreateVertexArray uploads each attribute as a static buffer of vec2
	// values bound to the slot equal to its index.
	CreateVertexArray(attribs ...[]float32) uint32
	BindVertexArray(vao uint32)
	// DrawFan draws count vertices of the bound vertex array as a triangle fan.
	DrawFan(count int)

	// CreateRenderTarget allocates an offscreen framebuffer with a colour
	// attachment of the given size.
	CreateRenderTarget(width, height int) uint32
	// BindRenderTarget makes fbo current; 0 selects the window.
	BindRenderTarget(fbo uint32)
	// BlitRenderTarget copies the whole of fbo into dst on the window.
	BlitRenderTarget(fbo uint32, width, height int, dst image.Rectangle)
	// ReadRenderTarget returns the RGBA contents of fbo, bottom row first.
	ReadRenderTarget(fbo uint32, width, height int) []byte

	Viewport(x, y, width, height int)
	Clear(r, g, b, a float32)
}

// Package opengl implements retroscreen.Device on OpenGL 4.1 core and
// drives it from a GLFW window.
package opengl

import (
	"image"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/retroscreen"
)

// Device issues scene draw calls through go-gl. All methods must be called
// on the thread that owns the current GL context.
type Device struct {
	buffers      []uint32
	vaos         []uint32
	textures     []uint32
	framebuffers []uint32
	programs     []uint32
}

var _ retroscreen.Device = (*Device)(nil)

// NewDevice wraps the current GL context. gl.Init must already have run.
func NewDevice() *Device {
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	return &Device{}
}

// CompileShader compiles one stage and returns its info log.
func (d *Device) CompileShader(stage retroscreen.Stage, source string) (uint32, string) {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == retroscreen.StageFragment {
		kind = gl.FRAGMENT_SHADER
	}

	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(cString(source))
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 1 {
		return shader, ""
	}
	log := make([]byte, logLength+1)
	gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
	return shader, trimLog(log)
}

// LinkProgram links the shaders and deletes them afterwards.
func (d *Device) LinkProgram(shaders ...uint32) (uint32, string) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	// Cleanup shaders (they're linked into the program now)
	for _, s := range shaders {
		gl.DeleteShader(s)
	}

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		msg := trimLog(log)
		if msg == "" {
			msg = "link failed"
		}
		return 0, msg
	}
	d.programs = append(d.programs, program)
	return program, ""
}

// UniformLocation resolves a uniform by name.
func (d *Device) UniformLocation(program uint32, name string) (int32, bool) {
	loc := gl.GetUniformLocation(program, gl.Str(cString(name)))
	return loc, loc >= 0
}

func (d *Device) UseProgram(program uint32) { gl.UseProgram(program) }

func (d *Device) Uniform1f(loc int32, v float32) { gl.Uniform1f(loc, v) }

// CreateTexture allocates an RGBA8 texture with linear filtering and
// repeat wrapping.
func (d *Device) CreateTexture(width, height int, pix []byte) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	var ptr unsafe.Pointer
	if len(pix) > 0 {
		ptr = gl.Ptr(pix)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	d.textures = append(d.textures, tex)
	return tex
}

// UpdateTexture overwrites the texture's storage in place.
func (d *Device) UpdateTexture(tex uint32, width, height int, pix []byte) {
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (d *Device) BindTexture(tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

// CreateVertexArray uploads each attribute as a tightly packed vec2 buffer.
func (d *Device) CreateVertexArray(attribs ...[]float32) uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	for slot, data := range attribs {
		var vbo uint32
		gl.GenBuffers(1, &vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

		gl.EnableVertexAttribArray(uint32(slot))
		gl.VertexAttribPointerWithOffset(uint32(slot), 2, gl.FLOAT, false, 0, 0)
		d.buffers = append(d.buffers, vbo)
	}

	gl.BindVertexArray(0)
	d.vaos = append(d.vaos, vao)
	return vao
}

func (d *Device) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (d *Device) DrawFan(count int) { gl.DrawArrays(gl.TRIANGLE_FAN, 0, int32(count)) }

// CreateRenderTarget allocates a framebuffer with a nearest-filtered colour
// texture.
func (d *Device) CreateRenderTarget(width, height int) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	d.textures = append(d.textures, tex)

	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		retroscreen.Logger.Error("render target incomplete", "status", status)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	d.framebuffers = append(d.framebuffers, fbo)
	return fbo
}

func (d *Device) BindRenderTarget(fbo uint32) { gl.BindFramebuffer(gl.FRAMEBUFFER, fbo) }

// BlitRenderTarget scales fbo into dst on the window with nearest
// filtering, keeping the pixels sharp.
func (d *Device) BlitRenderTarget(fbo uint32, width, height int, dst image.Rectangle) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(
		0, 0, int32(width), int32(height),
		int32(dst.Min.X), int32(dst.Min.Y), int32(dst.Max.X), int32(dst.Max.Y),
		gl.COLOR_BUFFER_BIT, gl.NEAREST,
	)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// ReadRenderTarget reads back the colour attachment of fbo.
func (d *Device) ReadRenderTarget(fbo uint32, width, height int) []byte {
	pix := make([]byte, width*height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fbo)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return pix
}

func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *Device) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Delete releases OpenGL resources.
func (d *Device) Delete() {
	if len(d.framebuffers) > 0 {
		gl.DeleteFramebuffers(int32(len(d.framebuffers)), &d.framebuffers[0])
	}
	if len(d.textures) > 0 {
		gl.DeleteTextures(int32(len(d.textures)), &d.textures[0])
	}
	if len(d.buffers) > 0 {
		gl.DeleteBuffers(int32(len(d.buffers)), &d.buffers[0])
	}
	if len(d.vaos) > 0 {
		gl.DeleteVertexArrays(int32(len(d.vaos)), &d.vaos[0])
	}
	for _, p := range d.programs {
		gl.DeleteProgram(p)
	}
	*d = Device{}
}

// cString appends the terminator go-gl expects on Go strings.
func cString(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}

func trimLog(log []byte) string {
	return strings.TrimSpace(strings.TrimRight(string(log), "\x00"))
}

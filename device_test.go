package retroscreen_test

import (
	"fmt"
	"image"

	"github.com/go-theft-auto/retroscreen"
)

// drawCall is the state bound when DrawFan ran.
type drawCall struct {
	program uint32
	texture uint32
	vao     uint32
	count   int
}

// fakeDevice records what the scene asks of the GPU.
type fakeDevice struct {
	next uint32

	// compileLogs and linkLog inject driver diagnostics.
	compileLogs map[retroscreen.Stage]string
	linkLog     string
	// inactive uniforms resolve to -1.
	inactive map[string]bool

	calls      []string
	textures   map[uint32][2]int
	updates    map[uint32]int
	vaoAttribs map[uint32][][]float32
	uniform1f  map[int32]float32
	draws      []drawCall
	blits      []image.Rectangle
	targets    map[uint32][2]int
	// readback is returned by ReadRenderTarget when set.
	readback []byte

	program, texture, vao, fbo uint32
}

var _ retroscreen.Device = (*fakeDevice)(nil)

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		compileLogs: make(map[retroscreen.Stage]string),
		inactive:    make(map[string]bool),
		textures:    make(map[uint32][2]int),
		updates:     make(map[uint32]int),
		vaoAttribs:  make(map[uint32][][]float32),
		uniform1f:   make(map[int32]float32),
		targets:     make(map[uint32][2]int),
	}
}

func (d *fakeDevice) handle() uint32 {
	d.next++
	return d.next
}

func (d *fakeDevice) record(format string, args ...any) {
	d.calls = append(d.calls, fmt.Sprintf(format, args...))
}

func (d *fakeDevice) CompileShader(stage retroscreen.Stage, source string) (uint32, string) {
	d.record("compile %s", stage)
	return d.handle(), d.compileLogs[stage]
}

func (d *fakeDevice) LinkProgram(shaders ...uint32) (uint32, string) {
	d.record("link")
	if d.linkLog != "" {
		return 0, d.linkLog
	}
	return d.handle(), ""
}

func (d *fakeDevice) UniformLocation(program uint32, name string) (int32, bool) {
	if d.inactive[name] {
		return -1, false
	}
	return int32(100 + len(name)), true
}

func (d *fakeDevice) UseProgram(program uint32) {
	d.record("use %d", program)
	d.program = program
}

func (d *fakeDevice) Uniform1f(loc int32, v float32) {
	d.record("uniform1f %d", loc)
	d.uniform1f[loc] = v
}

func (d *fakeDevice) CreateTexture(width, height int, pix []byte) uint32 {
	tex := d.handle()
	d.record("create texture %d", tex)
	d.textures[tex] = [2]int{width, height}
	return tex
}

func (d *fakeDevice) UpdateTexture(tex uint32, width, height int, pix []byte) {
	d.record("update texture %d", tex)
	d.updates[tex]++
}

func (d *fakeDevice) BindTexture(tex uint32) {
	d.record("bind texture %d", tex)
	d.texture = tex
}

func (d *fakeDevice) CreateVertexArray(attribs ...[]float32) uint32 {
	vao := d.handle()
	d.record("create vao %d", vao)
	d.vaoAttribs[vao] = attribs
	return vao
}

func (d *fakeDevice) BindVertexArray(vao uint32) {
	d.record("bind vao %d", vao)
	d.vao = vao
}

func (d *fakeDevice) DrawFan(count int) {
	d.record("draw %d", count)
	d.draws = append(d.draws, drawCall{program: d.program, texture: d.texture, vao: d.vao, count: count})
}

func (d *fakeDevice) CreateRenderTarget(width, height int) uint32 {
	fbo := d.handle()
	d.targets[fbo] = [2]int{width, height}
	return fbo
}

func (d *fakeDevice) BindRenderTarget(fbo uint32) {
	d.record("bind target %d", fbo)
	d.fbo = fbo
}

func (d *fakeDevice) BlitRenderTarget(fbo uint32, width, height int, dst image.Rectangle) {
	d.record("blit %d", fbo)
	d.blits = append(d.blits, dst)
}

func (d *fakeDevice) ReadRenderTarget(fbo uint32, width, height int) []byte {
	d.record("read %d", fbo)
	if d.readback != nil {
		return d.readback
	}
	return make([]byte, 4*width*height)
}

func (d *fakeDevice) Viewport(x, y, width, height int) {
	d.record("viewport %dx%d", width, height)
}

func (d *fakeDevice) Clear(r, g, b, a float32) {
	d.record("clear")
}

// indexOf returns the position of the first recorded call equal to op.
func (d *fakeDevice) indexOf(op string) int {
	for i, c := range d.calls {
		if c == op {
			return i
		}
	}
	return -1
}

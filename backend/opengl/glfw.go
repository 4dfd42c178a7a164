package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// GLFWWindowAdapter forwards the few window events the scene reacts to:
// a primary-button click and framebuffer resizes.
type GLFWWindowAdapter struct {
	window *glfw.Window

	onClick  func() bool
	onResize func(width, height int)
}

// NewGLFWWindowAdapter installs callbacks on window.
func NewGLFWWindowAdapter(window *glfw.Window) *GLFWWindowAdapter {
	adapter := &GLFWWindowAdapter{window: window}

	// Setup callbacks
	window.SetMouseButtonCallback(adapter.mouseButtonCallback)
	window.SetFramebufferSizeCallback(adapter.framebufferSizeCallback)

	return adapter
}

// OnClick arms fn for left-button presses. Once fn reports true the
// handler disarms itself and later clicks are dropped.
func (a *GLFWWindowAdapter) OnClick(fn func() bool) {
	a.onClick = fn
}

// OnResize sets the framebuffer resize handler.
func (a *GLFWWindowAdapter) OnResize(fn func(width, height int)) {
	a.onResize = fn
}

// FramebufferSize returns the current framebuffer size in pixels.
func (a *GLFWWindowAdapter) FramebufferSize() (int, int) {
	return a.window.GetFramebufferSize()
}

func (a *GLFWWindowAdapter) handleClick() {
	if a.onClick == nil {
		return
	}
	if a.onClick() {
		a.onClick = nil
	}
}

func (a *GLFWWindowAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button == glfw.MouseButtonLeft && action == glfw.Press {
		a.handleClick()
	}
}

func (a *GLFWWindowAdapter) framebufferSizeCallback(w *glfw.Window, width, height int) {
	if a.onResize != nil {
		a.onResize(width, height)
	}
}

/*
Package retroscreen renders a vintage computer whose screen shows an image
until the first click and then plays a looping video, all drawn at a fixed
360x240 resolution and letterboxed into the window.

# Overview

The scene is two textured quads drawn into an offscreen render target:

	computer  full-target quad with the background picture
	screen    quad mapped onto the monitor glass, drawn second

The screen quad uses a fragment shader that reduces every pixel to one of
two greens. Each frame the render target is copied into the largest
rectangle of the window that keeps its aspect ratio.

# Quick Start

	dev := opengl.NewDevice()
	assets := asset.NewRegistry()
	scene := retroscreen.NewScene(dev, assets, retroscreen.DefaultConfig())

	if err := scene.Load(ctx); err != nil {
	    return err
	}
	scene.Resize(window.GetFramebufferSize())

	for !window.ShouldClose() {
	    glfw.PollEvents()
	    scene.Frame(time.Now())
	    scene.Present()
	    window.SwapBuffers()
	}

# States

A Scene moves through three states and never goes back:

	StateLoading  assets are loading; Frame returns ErrNotReady
	StateIdle     the screen shows the still image
	StatePlaying  the screen shows the video, the soundtrack plays

Click moves Idle to Playing. Further clicks are ignored.

# Devices

Everything the scene asks of the GPU goes through the Device interface.
backend/opengl implements it on OpenGL 4.1 core; tests use an in-memory
fake.

# Configuration

Sizes, clear colour, asset names and paths and the screen quad's corners
come from Config. DefaultConfig reproduces the stock scene; LoadConfig
overlays a TOML file on top of it:

	title = "IBN 5100"
	width = 360
	height = 240

	[assets.video]
	name = "SteinsGateOP"
	path = "assets/SteinsGateOP-480p.mp4"

	[screen]
	reference_width = 1920.0
	reference_height = 1079.0
*/
package retroscreen

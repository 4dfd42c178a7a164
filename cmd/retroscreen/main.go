// Command retroscreen shows the IBN 5100 with its monitor rendered in two
// phosphor greens. Click the window to start the video on the monitor.
//
// Prerequisites:
//
//	devbox shell                              # Go + OpenGL/X11 headers + ffmpeg
//	go run ./cmd/retroscreen/                 # built-in scene, assets/ next to cwd
//	go run ./cmd/retroscreen/ -c scene.toml   # custom assets or screen placement
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/pflag"

	"github.com/go-theft-auto/retroscreen"
	"github.com/go-theft-auto/retroscreen/asset"
	"github.com/go-theft-auto/retroscreen/backend/opengl"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := pflag.StringP("config", "c", "", "scene configuration file (TOML)")
	verbose := pflag.BoolP("verbose", "v", false, "enable debug logging")
	pflag.Parse()

	retroscreen.SetVerbose(*verbose)
	log := retroscreen.Logger

	cfg := retroscreen.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = retroscreen.LoadConfig(*configPath); err != nil {
			return err
		}
	}

	// Initialize GLFW.
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	// Initialize OpenGL.
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Debug("opengl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	dev := opengl.NewDevice()
	defer dev.Delete()

	assets := asset.NewRegistry(asset.WithLogger(log))
	defer assets.Close()

	scene := retroscreen.NewScene(dev, assets, cfg)
	adapter := opengl.NewGLFWWindowAdapter(window)
	adapter.OnResize(func(width, height int) { scene.Resize(width, height) })
	scene.Resize(adapter.FramebufferSize())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := scene.Load(ctx); err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	adapter.OnClick(func() bool {
		started, err := scene.Click(time.Now())
		if err != nil {
			log.Error("click", "error", err)
		}
		return started
	})

	// Main loop.
	for !window.ShouldClose() && ctx.Err() == nil {
		glfw.PollEvents()

		if err := scene.Frame(time.Now()); err != nil {
			return fmt.Errorf("render frame: %w", err)
		}
		scene.Present()

		window.SwapBuffers()
	}

	return nil
}

// Command gen renders the scene offscreen at a few playback offsets and
// saves JPEG snapshots to doc/imgs/.
//
// Usage:
//
//	go run ./doc/gen/ --at 0s,5s,30s
package main

import (
	"context"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
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
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := pflag.StringP("config", "c", "", "scene config file (TOML)")
	outDir := pflag.StringP("out", "o", filepath.Join("doc", "imgs"), "output directory")
	offsets := pflag.DurationSlice("at", []time.Duration{0, 5 * time.Second}, "playback offsets to capture")
	pflag.Parse()

	cfg := retroscreen.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = retroscreen.LoadConfig(*configPath); err != nil {
			return err
		}
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	// Everything is drawn into the scene's own target, so the window only
	// needs to carry a context.
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, "snapshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	dev := opengl.NewDevice()
	defer dev.Delete()

	assets := asset.NewRegistry(asset.WithLogger(retroscreen.Logger))
	defer assets.Close()

	// Snapshots are silent; either track would start the speaker.
	cfg.Assets.Soundtrack = nil
	cfg.Assets.VideoAudio = false
	scene := retroscreen.NewScene(dev, assets, cfg)
	if err := scene.Load(context.Background()); err != nil {
		return err
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	if err := capture(scene, time.Time{}, filepath.Join(*outDir, "idle.jpg")); err != nil {
		return fmt.Errorf("capture idle: %w", err)
	}

	start := time.Now()
	if _, err := scene.Click(start); err != nil {
		return err
	}
	for _, at := range *offsets {
		name := fmt.Sprintf("playing-%s.jpg", at)
		if err := capture(scene, start.Add(at), filepath.Join(*outDir, name)); err != nil {
			return fmt.Errorf("capture %s: %w", at, err)
		}
	}

	fmt.Printf("\nGenerated %d snapshots in %s/\n", len(*offsets)+1, *outDir)
	return nil
}

func capture(scene *retroscreen.Scene, at time.Time, path string) error {
	if err := scene.Frame(at); err != nil {
		return err
	}
	img, err := scene.Capture()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		return err
	}
	fmt.Printf("  %s (%dx%d)\n", filepath.Base(path), img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

package retroscreen

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"golang.org/x/image/draw"

	"github.com/go-theft-auto/retroscreen/asset"
)

// ErrNotReady is returned when the scene is used before its assets loaded.
var ErrNotReady = errors.New("scene not ready")

// State is the scene's playback state.
type State uint8

const (
	// StateLoading waits for assets.
	StateLoading State = iota
	// StateIdle renders a still frame until the first click.
	StateIdle
	// StatePlaying streams video into the screen texture every frame.
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// FrameSource produces video frames for a playback position.
// *asset.Video implements it.
type FrameSource interface {
	Width() int
	Height() int
	Start(loop bool) error
	NextFrame(elapsed time.Duration) (*image.RGBA, error)
}

// Soundtrack is audio started together with the video.
// *asset.Audio implements it.
type Soundtrack interface {
	Play(loop bool) error
}

// Media is everything Setup needs to build the scene.
type Media struct {
	Background image.Image
	Screen     image.Image
	Video      FrameSource
	// Soundtrack is optional.
	Soundtrack Soundtrack
}

// Scene draws the computer and its screen into a fixed-size render target
// and letterboxes that target into the window.
type Scene struct {
	cfg    Config
	dev    Device
	assets *asset.Registry
	log    *slog.Logger

	state State

	computer  *Renderable
	screen    *Renderable
	screenTex *Texture
	target    uint32

	video      FrameSource
	soundtrack Soundtrack
	startedAt  time.Time
	lastFrame  *image.RGBA
	scaled     *image.RGBA

	windowW   int
	windowH   int
	letterbox Letterbox
}

// SceneOption configures a Scene.
type SceneOption func(*Scene)

// WithSceneLogger overrides the package Logger.
func WithSceneLogger(l *slog.Logger) SceneOption {
	return func(s *Scene) { s.log = l }
}

// NewScene creates a scene in StateLoading. assets may be nil when the
// caller builds the scene with Setup directly.
func NewScene(dev Device, assets *asset.Registry, cfg Config, opts ...SceneOption) *Scene {
	s := &Scene{
		cfg:    cfg,
		dev:    dev,
		assets: assets,
		log:    Logger,
		state:  StateLoading,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Scene) State() State { return s.state }

// Config returns the scene configuration.
func (s *Scene) Config() Config { return s.cfg }

// Load fetches every configured asset, waits for all of them and then
// builds the scene. It must run on the thread that owns the device.
func (s *Scene) Load(ctx context.Context) error {
	if s.state != StateLoading {
		return fmt.Errorf("load in state %s", s.state)
	}
	if s.assets == nil {
		return fmt.Errorf("load: %w: no asset registry", ErrNotReady)
	}

	a := s.cfg.Assets
	tasks := []asset.Awaiter{
		s.assets.LoadImage(ctx, a.Background.Name, a.Background.Path),
		s.assets.LoadImage(ctx, a.Screen.Name, a.Screen.Path),
		s.assets.LoadVideo(ctx, a.Video.Name, a.Video.Path),
	}
	if a.Soundtrack != nil {
		tasks = append(tasks, s.assets.LoadAudio(ctx, a.Soundtrack.Name, a.Soundtrack.Path))
	}

	start := time.Now()
	if err := asset.WaitAll(ctx, tasks...); err != nil {
		return err
	}
	s.log.Info("assets loaded", "count", len(tasks), "took", time.Since(start))

	bg, ok := s.assets.GetImage(a.Background.Name)
	if !ok {
		return fmt.Errorf("image %q: %w", a.Background.Name, ErrNotReady)
	}
	scr, ok := s.assets.GetImage(a.Screen.Name)
	if !ok {
		return fmt.Errorf("image %q: %w", a.Screen.Name, ErrNotReady)
	}
	video, ok := s.assets.GetVideo(a.Video.Name)
	if !ok {
		return fmt.Errorf("video %q: %w", a.Video.Name, ErrNotReady)
	}

	var clip, own Soundtrack
	if a.Soundtrack != nil {
		if track, ok := s.assets.GetAudio(a.Soundtrack.Name); ok {
			clip = track
		}
	}
	if track := video.Soundtrack(); track != nil {
		own = track
	}

	return s.Setup(Media{
		Background: bg.Image,
		Screen:     scr.Image,
		Video:      video,
		Soundtrack: chooseSoundtrack(a, clip, own),
	})
}

// chooseSoundtrack picks what plays on the first click: the configured
// clip, else the video's own track when enabled. Either may be nil.
func chooseSoundtrack(a AssetsConfig, clip, videoTrack Soundtrack) Soundtrack {
	if a.Soundtrack != nil && clip != nil {
		return clip
	}
	if a.VideoAudio && videoTrack != nil {
		return videoTrack
	}
	return nil
}

// Setup builds textures, programs, geometry and the render target from
// already decoded media and moves the scene to StateIdle.
func (s *Scene) Setup(m Media) error {
	if s.state != StateLoading {
		return fmt.Errorf("setup in state %s", s.state)
	}
	if m.Background == nil || m.Screen == nil || m.Video == nil {
		return fmt.Errorf("setup: %w: missing media", ErrNotReady)
	}

	computerTex, err := TextureFromImage(s.dev, m.Background)
	if err != nil {
		return fmt.Errorf("computer texture: %w", err)
	}
	screenTex, err := TextureFromImage(s.dev, m.Screen)
	if err != nil {
		return fmt.Errorf("screen texture: %w", err)
	}

	simple, err := CreateProgram(s.dev, SimpleVertexSource, SimpleFragmentSource)
	if err != nil {
		return fmt.Errorf("simple shader: %w", err)
	}
	retro, err := CreateProgram(s.dev, SimpleVertexSource, RetroFragmentSource, AspectUniform)
	if err != nil {
		return fmt.Errorf("retro shader: %w", err)
	}

	computerGeo, err := NewGeometry(PresetComputer, s.cfg.Screen)
	if err != nil {
		return err
	}
	screenGeo, err := NewGeometry(PresetScreen, s.cfg.Screen)
	if err != nil {
		return err
	}

	var screenOpts []RenderableOption
	if s.cfg.Screen.Aspect != nil {
		screenOpts = append(screenOpts, WithUniforms(AspectUniforms(*s.cfg.Screen.Aspect)))
	}

	s.computer = NewRenderable(s.dev, computerGeo, computerTex, simple)
	s.screen = NewRenderable(s.dev, screenGeo, screenTex, retro, screenOpts...)
	s.screenTex = screenTex
	s.target = s.dev.CreateRenderTarget(s.cfg.Width, s.cfg.Height)
	s.scaled = image.NewRGBA(image.Rect(0, 0, screenTex.Width(), screenTex.Height()))
	s.video = m.Video
	s.soundtrack = m.Soundtrack

	s.state = StateIdle
	s.log.Debug("scene ready",
		"target", fmt.Sprintf("%dx%d", s.cfg.Width, s.cfg.Height),
		"screen", fmt.Sprintf("%dx%d", screenTex.Width(), screenTex.Height()),
		"video", fmt.Sprintf("%dx%d", m.Video.Width(), m.Video.Height()))
	return nil
}

// Click handles a pointer click. The first click after loading starts
// looped playback and reports true; every other click is ignored.
func (s *Scene) Click(now time.Time) (bool, error) {
	if s.state != StateIdle {
		return false, nil
	}
	if err := s.video.Start(true); err != nil {
		return false, fmt.Errorf("start video: %w", err)
	}
	if s.soundtrack != nil {
		if err := s.soundtrack.Play(true); err != nil {
			s.log.Warn("soundtrack unavailable", "error", err)
		}
	}
	s.startedAt = now
	s.state = StatePlaying
	s.log.Info("playback started")
	return true, nil
}

// Frame renders one frame into the render target. While playing, the
// screen texture is refreshed from the video before anything is drawn.
func (s *Scene) Frame(now time.Time) error {
	if s.state == StateLoading {
		return ErrNotReady
	}

	if s.state == StatePlaying {
		frame, err := s.video.NextFrame(now.Sub(s.startedAt))
		if err != nil {
			return fmt.Errorf("video frame: %w", err)
		}
		if frame != nil && frame != s.lastFrame {
			if err := s.screenTex.Update(s.fitFrame(frame)); err != nil {
				return err
			}
			s.lastFrame = frame
		}
	}

	s.dev.BindRenderTarget(s.target)
	s.dev.Viewport(0, 0, s.cfg.Width, s.cfg.Height)
	c := s.cfg.ClearColor
	s.dev.Clear(c[0], c[1], c[2], c[3])

	// The screen overlaps the computer, so it must be drawn second.
	s.computer.Render()
	s.screen.Render()
	return nil
}

// Resize records a new window framebuffer size and recomputes the
// letterbox. The render target keeps its resolution.
func (s *Scene) Resize(windowW, windowH int) Letterbox {
	s.windowW, s.windowH = windowW, windowH
	s.letterbox = Fit(windowW, windowH, s.cfg.Width, s.cfg.Height)
	s.log.Debug("resize",
		"window", fmt.Sprintf("%dx%d", windowW, windowH),
		"scale", fmt.Sprintf("%.3fx%.3f", s.letterbox.ScaleX, s.letterbox.ScaleY))
	return s.letterbox
}

// Letterbox returns the placement computed by the last Resize.
func (s *Scene) Letterbox() Letterbox { return s.letterbox }

// Present clears the window and copies the render target into the
// letterbox computed by the last Resize.
func (s *Scene) Present() {
	s.dev.BindRenderTarget(0)
	s.dev.Viewport(0, 0, s.windowW, s.windowH)
	s.dev.Clear(0, 0, 0, 1)
	if s.state != StateLoading {
		s.dev.BlitRenderTarget(s.target, s.cfg.Width, s.cfg.Height, s.letterbox.Rect())
	}
}

// Capture reads the render target back as a top-down image. It shows
// whatever the last Frame drew.
func (s *Scene) Capture() (*image.RGBA, error) {
	if s.state == StateLoading {
		return nil, ErrNotReady
	}
	w, h := s.cfg.Width, s.cfg.Height
	pix := s.dev.ReadRenderTarget(s.target, w, h)
	if len(pix) != 4*w*h {
		return nil, fmt.Errorf("read back %d bytes, want %d", len(pix), 4*w*h)
	}

	// GL rows start at the bottom.
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	row := 4 * w
	for y := 0; y < h; y++ {
		copy(img.Pix[y*row:(y+1)*row], pix[(h-1-y)*row:(h-y)*row])
	}
	return img, nil
}

// fitFrame returns frame's pixels at the screen texture's size.
func (s *Scene) fitFrame(frame *image.RGBA) []byte {
	b := frame.Bounds()
	w, h := s.screenTex.Width(), s.screenTex.Height()
	if b.Min == (image.Point{}) && b.Dx() == w && b.Dy() == h && frame.Stride == 4*w {
		return frame.Pix
	}
	draw.ApproxBiLinear.Scale(s.scaled, s.scaled.Bounds(), frame, b, draw.Src, nil)
	return s.scaled.Pix
}

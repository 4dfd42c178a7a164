package retroscreen

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// AssetRef names an asset and where to load it from.
type AssetRef struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// AssetsConfig lists the scene's media.
type AssetsConfig struct {
	Background AssetRef  `toml:"background"`
	Screen     AssetRef  `toml:"screen"`
	Video      AssetRef  `toml:"video"`
	Soundtrack *AssetRef `toml:"soundtrack"`
	// VideoAudio plays the video file's own audio track when no soundtrack
	// is configured.
	VideoAudio bool `toml:"video_audio"`
}

// ScreenConfig places the screen quad on the background image.
// Corners are pixel positions in a ReferenceWidth×ReferenceHeight image,
// origin top left, in fan order.
type ScreenConfig struct {
	ReferenceWidth  float32      `toml:"reference_width"`
	ReferenceHeight float32      `toml:"reference_height"`
	Corners         [][2]float32 `toml:"corners"`
	UVs             [][2]float32 `toml:"uvs"`
	// Aspect, when set, is uploaded to the retro shader's aspect uniform.
	Aspect *float32 `toml:"aspect"`
}

// Validate checks the quad description.
func (c ScreenConfig) Validate() error {
	if c.ReferenceWidth <= 0 || c.ReferenceHeight <= 0 {
		return fmt.Errorf("screen: invalid reference size %gx%g", c.ReferenceWidth, c.ReferenceHeight)
	}
	if len(c.Corners) != quadVertices {
		return fmt.Errorf("screen: need %d corners, got %d", quadVertices, len(c.Corners))
	}
	if len(c.UVs) != len(c.Corners) {
		return fmt.Errorf("screen: %d uvs for %d corners", len(c.UVs), len(c.Corners))
	}
	return nil
}

// WindowConfig is the initial window size.
type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Config is the scene configuration.
type Config struct {
	Title string `toml:"title"`
	// Width and Height are the logical render resolution.
	Width      int          `toml:"width"`
	Height     int          `toml:"height"`
	Window     WindowConfig `toml:"window"`
	ClearColor [4]float32   `toml:"clear_color"`
	Assets     AssetsConfig `toml:"assets"`
	Screen     ScreenConfig `toml:"screen"`
}

// DefaultConfig returns the built-in scene.
func DefaultConfig() Config {
	return Config{
		Title:      "IBN 5100",
		Width:      360,
		Height:     240,
		Window:     WindowConfig{Width: 1080, Height: 720},
		ClearColor: [4]float32{1, 0, 0, 1},
		Assets: AssetsConfig{
			Background: AssetRef{Name: "IBN5100", Path: "assets/IBN5100.png"},
			Screen:     AssetRef{Name: "intro", Path: "assets/intro.png"},
			Video:      AssetRef{Name: "SteinsGateOP", Path: "assets/SteinsGateOP-480p.mp4"},
			VideoAudio: true,
		},
		Screen: ScreenConfig{
			ReferenceWidth:  1920,
			ReferenceHeight: 1079,
			Corners: [][2]float32{
				{613, 221},
				{1271, 121},
				{1309, 622},
				{681, 746},
			},
			UVs: [][2]float32{
				{0.125, 0},
				{0.875, 0},
				{0.875, 1},
				{0.125, 1},
			},
		},
	}
}

// LoadConfig reads a TOML file over DefaultConfig. Unknown keys are errors.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("parse config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first problem with cfg.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid resolution %dx%d", c.Width, c.Height)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	refs := []struct {
		key string
		ref *AssetRef
	}{
		{"background", &c.Assets.Background},
		{"screen", &c.Assets.Screen},
		{"video", &c.Assets.Video},
		{"soundtrack", c.Assets.Soundtrack},
	}
	for _, r := range refs {
		if r.ref == nil {
			continue
		}
		if r.ref.Name == "" || r.ref.Path == "" {
			return fmt.Errorf("assets.%s: name and path are required", r.key)
		}
	}
	return c.Screen.Validate()
}

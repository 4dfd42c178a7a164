package retroscreen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/retroscreen"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := retroscreen.DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 360, cfg.Width)
	assert.Equal(t, 240, cfg.Height)
	assert.Equal(t, "IBN5100", cfg.Assets.Background.Name)
	assert.Equal(t, "intro", cfg.Assets.Screen.Name)
	assert.Equal(t, "SteinsGateOP", cfg.Assets.Video.Name)
	assert.Nil(t, cfg.Assets.Soundtrack)
	assert.Nil(t, cfg.Screen.Aspect)
	assert.True(t, cfg.Assets.VideoAudio, "the video's own track plays by default")
}

func TestParseConfigOverridesDefaults(t *testing.T) {
	cfg, err := retroscreen.ParseConfig([]byte(`
title = "Lab"
clear_color = [0.0, 0.0, 0.0, 1.0]

[window]
width = 720
height = 480

[assets]
video_audio = false

[assets.video]
name = "opening"
path = "media/op.webm"

[assets.soundtrack]
name = "theme"
path = "media/theme.ogg"

[screen]
reference_width = 1280.0
reference_height = 720.0
corners = [[10.0, 10.0], [100.0, 10.0], [100.0, 80.0], [10.0, 80.0]]
uvs = [[0.0, 0.0], [1.0, 0.0], [1.0, 1.0], [0.0, 1.0]]
aspect = 1.25
`))
	require.NoError(t, err)

	assert.Equal(t, "Lab", cfg.Title)
	assert.Equal(t, 360, cfg.Width, "unset keys keep their defaults")
	assert.Equal(t, retroscreen.WindowConfig{Width: 720, Height: 480}, cfg.Window)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, cfg.ClearColor)
	assert.Equal(t, "opening", cfg.Assets.Video.Name)
	assert.False(t, cfg.Assets.VideoAudio)
	assert.Equal(t, "IBN5100", cfg.Assets.Background.Name)
	require.NotNil(t, cfg.Assets.Soundtrack)
	assert.Equal(t, "media/theme.ogg", cfg.Assets.Soundtrack.Path)
	assert.Equal(t, float32(1280), cfg.Screen.ReferenceWidth)
	assert.Equal(t, [2]float32{100, 80}, cfg.Screen.Corners[2])
	require.NotNil(t, cfg.Screen.Aspect)
	assert.Equal(t, float32(1.25), *cfg.Screen.Aspect)
}

func TestParseConfigRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":   "colour = 1\n",
		"bad syntax":    "width = \n",
		"zero width":    "width = 0\n",
		"two corners":   "[screen]\ncorners = [[0.0, 0.0], [1.0, 1.0]]\n",
		"uv mismatch":   "[screen]\nuvs = [[0.0, 0.0]]\n",
		"empty name":    "[assets.screen]\nname = \"\"\n",
		"partial sound": "[assets.soundtrack]\nname = \"theme\"\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := retroscreen.ParseConfig([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte("title = \"from file\"\n"), 0o644))

	cfg, err := retroscreen.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from file", cfg.Title)

	_, err = retroscreen.LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

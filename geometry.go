package retroscreen

import "fmt"

// Preset names a fixed quad layout.
type Preset string

const (
	// PresetComputer covers the whole render target.
	PresetComputer Preset = "computer"
	// PresetScreen covers the monitor area of the background image.
	PresetScreen Preset = "screen"
)

// quadVertices is the number of vertices in a fan-ordered quad.
const quadVertices = 4

// Geometry is static vertex data for one quad in normalized device
// coordinates. Vertices and UVs hold interleaved x,y pairs.
type Geometry struct {
	Preset      Preset
	Vertices    []float32
	UVs         []float32
	VertexCount int
}

// NewGeometry returns a geometry initialised from preset.
func NewGeometry(preset Preset, screen ScreenConfig) (*Geometry, error) {
	g := &Geometry{}
	if err := g.Init(preset, screen); err != nil {
		return nil, err
	}
	return g, nil
}

// Init fills the vertex and UV arrays for preset. screen is only consulted
// for PresetScreen.
func (g *Geometry) Init(preset Preset, screen ScreenConfig) error {
	switch preset {
	case PresetComputer:
		g.Vertices = []float32{
			-1, 1,
			1, 1,
			1, -1,
			-1, -1,
		}
		g.UVs = []float32{
			0, 0,
			1, 0,
			1, 1,
			0, 1,
		}
	case PresetScreen:
		if err := screen.Validate(); err != nil {
			return err
		}
		g.Vertices = make([]float32, 0, 2*quadVertices)
		for _, c := range screen.Corners {
			x, y := PixelToNDC(c[0], c[1], screen.ReferenceWidth, screen.ReferenceHeight)
			g.Vertices = append(g.Vertices, x, y)
		}
		g.UVs = make([]float32, 0, 2*quadVertices)
		for _, uv := range screen.UVs {
			g.UVs = append(g.UVs, uv[0], uv[1])
		}
	default:
		return fmt.Errorf("unknown geometry preset %q", preset)
	}
	g.Preset = preset
	g.VertexCount = quadVertices
	return nil
}

// PixelToNDC converts a pixel position in an image of size w×h, origin top
// left, to normalized device coordinates.
func PixelToNDC(x, y, w, h float32) (float32, float32) {
	return x/w*2 - 1, -y/h*2 + 1
}

package retroscreen

import (
	"image"
	"math"
)

// Letterbox places a fixed-aspect surface inside a window. Scales are
// fractions of the window size; margins and sizes are in window pixels.
type Letterbox struct {
	ScaleX, ScaleY            float64
	MarginLeft, MarginTop     float64
	Width, Height             float64
	windowWidth, windowHeight int
}

// Fit centres a targetW×targetH surface in a windowW×windowH window,
// preserving the target's aspect ratio. A window wider than the target
// gets bars left and right; a narrower one gets bars top and bottom.
func Fit(windowW, windowH, targetW, targetH int) Letterbox {
	lb := Letterbox{windowWidth: windowW, windowHeight: windowH}
	if windowW <= 0 || windowH <= 0 || targetW <= 0 || targetH <= 0 {
		return lb
	}

	target := float64(targetW) / float64(targetH)
	window := float64(windowW) / float64(windowH)
	if target > window {
		lb.ScaleX, lb.ScaleY = 1, window/target
	} else {
		lb.ScaleX, lb.ScaleY = target/window, 1
	}

	lb.MarginLeft = (1 - lb.ScaleX) * float64(windowW) * 0.5
	lb.MarginTop = (1 - lb.ScaleY) * float64(windowH) * 0.5
	lb.Width = lb.ScaleX * float64(windowW)
	lb.Height = lb.ScaleY * float64(windowH)
	return lb
}

// Rect returns the placement in framebuffer pixels, origin bottom left.
func (lb Letterbox) Rect() image.Rectangle {
	x0 := int(math.Round(lb.MarginLeft))
	y0 := int(math.Round(lb.MarginTop))
	x1 := int(math.Round(lb.MarginLeft + lb.Width))
	y1 := int(math.Round(lb.MarginTop + lb.Height))
	// Margins are symmetric, so flipping to a bottom-left origin only
	// swaps which edge each margin belongs to.
	return image.Rect(x0, lb.windowHeight-y1, x1, lb.windowHeight-y0)
}

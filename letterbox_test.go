package retroscreen_test

import (
	"image"
	"testing"

	"github.com/go-theft-auto/retroscreen"
)

func TestFitMatchingAspect(t *testing.T) {
	for _, size := range [][2]int{{360, 240}, {720, 480}, {1080, 720}, {1800, 1200}} {
		lb := retroscreen.Fit(size[0], size[1], 360, 240)
		if lb.ScaleX != 1 || lb.ScaleY != 1 {
			t.Errorf("%dx%d: scale = (%v, %v), want (1, 1)", size[0], size[1], lb.ScaleX, lb.ScaleY)
		}
		if lb.MarginLeft != 0 || lb.MarginTop != 0 {
			t.Errorf("%dx%d: margins = (%v, %v), want (0, 0)", size[0], size[1], lb.MarginLeft, lb.MarginTop)
		}
	}
}

func TestFitWideWindowPillarboxes(t *testing.T) {
	lb := retroscreen.Fit(1920, 1080, 360, 240)

	if lb.ScaleY != 1 {
		t.Errorf("ScaleY = %v, want 1", lb.ScaleY)
	}
	if lb.ScaleX >= 1 {
		t.Errorf("ScaleX = %v, want < 1", lb.ScaleX)
	}
	if lb.MarginTop != 0 || lb.MarginLeft <= 0 {
		t.Errorf("margins = (%v, %v)", lb.MarginLeft, lb.MarginTop)
	}

	want := image.Rect(150, 0, 1770, 1080)
	if got := lb.Rect(); got != want {
		t.Errorf("Rect() = %v, want %v", got, want)
	}
}

func TestFitTallWindowLetterboxes(t *testing.T) {
	lb := retroscreen.Fit(800, 1000, 360, 240)

	if lb.ScaleX != 1 {
		t.Errorf("ScaleX = %v, want 1", lb.ScaleX)
	}
	if lb.ScaleY >= 1 {
		t.Errorf("ScaleY = %v, want < 1", lb.ScaleY)
	}
	if lb.MarginLeft != 0 || lb.MarginTop <= 0 {
		t.Errorf("margins = (%v, %v)", lb.MarginLeft, lb.MarginTop)
	}

	want := image.Rect(0, 233, 800, 767)
	if got := lb.Rect(); got != want {
		t.Errorf("Rect() = %v, want %v", got, want)
	}
}

func TestFitDegenerateWindow(t *testing.T) {
	lb := retroscreen.Fit(0, 0, 360, 240)
	if lb.Width != 0 || lb.Height != 0 {
		t.Errorf("minimised window should have an empty letterbox, got %+v", lb)
	}
	if !lb.Rect().Empty() {
		t.Errorf("Rect() = %v, want empty", lb.Rect())
	}
}

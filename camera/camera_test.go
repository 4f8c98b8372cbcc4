package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(800, 600, 400, 300)

	// Should be centered on the stage and show all of it
	if cam.X != 0 || cam.Y != 150 {
		t.Errorf("expected camera at (0, 150), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 2 || cam.MinZoom != 2 || cam.MaxZoom != 8 {
		t.Errorf("zoom = %f [%f, %f], want 2 [2, 8]", cam.Zoom, cam.MinZoom, cam.MaxZoom)
	}
}

func TestWorldToScreenAxes(t *testing.T) {
	cam := New(800, 600, 400, 300)

	sx, sy := cam.WorldToScreen(0, 150)
	if !near(sx, 400) || !near(sy, 300) {
		t.Errorf("expected screen center (400, 300), got (%f, %f)", sx, sy)
	}

	// Floor is at the bottom, head height is up
	_, floorY := cam.WorldToScreen(0, 0)
	_, headY := cam.WorldToScreen(0, 170)
	if !near(floorY, 600) {
		t.Errorf("floor at y=%f, want 600", floorY)
	}
	if headY >= floorY {
		t.Errorf("head (y=%f) should be above floor (y=%f)", headY, floorY)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(800, 600, 400, 300)
	cam.SetZoom(3.5)
	cam.Pan(40, -25)

	testCases := []struct{ sx, sy float32 }{
		{400, 300}, // center
		{10, 10},   // top-left
		{790, 590}, // bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanClampsToStage(t *testing.T) {
	cam := New(800, 600, 400, 300)

	cam.Pan(10000, 0)
	if cam.X != 200 {
		t.Errorf("X = %f, want clamped to 200", cam.X)
	}
	cam.Pan(0, 10000)
	if cam.Y != 0 {
		t.Errorf("Y = %f, want clamped to 0", cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(800, 600, 400, 300)

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
	cam.SetZoom(0.01)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}
	cam.ZoomBy(2)
	if cam.Zoom != cam.MinZoom*2 {
		t.Errorf("ZoomBy(2) = %f, want %f", cam.Zoom, cam.MinZoom*2)
	}
}

func TestFrame(t *testing.T) {
	cam := New(800, 600, 400, 300)

	cam.Frame(200)
	if cam.Y != 100 || cam.X != 0 {
		t.Errorf("center = (%f, %f), want (0, 100)", cam.X, cam.Y)
	}
	// head and feet both on screen
	_, head := cam.WorldToScreen(0, 200)
	_, feet := cam.WorldToScreen(0, 0)
	if head < 0 || feet > 600 {
		t.Errorf("figure not framed: head y=%f feet y=%f", head, feet)
	}

	// a tiny figure is limited by MaxZoom
	cam.Frame(10)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %f, want %f", cam.Zoom, cam.MaxZoom)
	}

	cam.Frame(0)
	if cam.Zoom != cam.MinZoom || cam.Y != 150 {
		t.Error("Frame(0) should reset")
	}
}

func TestResizeRaisesMinZoom(t *testing.T) {
	cam := New(800, 600, 400, 300)
	cam.Resize(1600, 1200)

	if cam.MinZoom != 4 {
		t.Errorf("MinZoom = %f, want 4", cam.MinZoom)
	}
	if cam.Zoom < cam.MinZoom {
		t.Errorf("zoom %f below new min %f", cam.Zoom, cam.MinZoom)
	}
}

func TestResizeNonPositiveViewport(t *testing.T) {
	tests := []struct {
		name string
		w, h float32
	}{
		{"negative width", -200, 600},
		{"zero height", 800, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(800, 600, 400, 300)
			cam.Resize(tt.w, tt.h)

			if cam.ViewportW < 1 || cam.ViewportH < 1 {
				t.Errorf("viewport = %f x %f, want at least 1 x 1", cam.ViewportW, cam.ViewportH)
			}
			if cam.MinZoom <= 0 || cam.MaxZoom <= cam.MinZoom {
				t.Errorf("zoom bounds = [%f, %f], want positive", cam.MinZoom, cam.MaxZoom)
			}
			if cam.Zoom < cam.MinZoom || cam.Zoom > cam.MaxZoom {
				t.Errorf("zoom %f outside [%f, %f]", cam.Zoom, cam.MinZoom, cam.MaxZoom)
			}
		})
	}

	cam := New(-10, 600, 400, 300)
	if cam.ViewportW != 1 || cam.MinZoom <= 0 {
		t.Errorf("New with negative width: viewport %f, min zoom %f", cam.ViewportW, cam.MinZoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(800, 600, 400, 300)
	cam.SetZoom(4) // visible half-extents 100 x 75 around (0, 150)

	if !cam.IsVisible(0, 150, 1) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(150, 150, 10) {
		t.Error("point far right should not be visible")
	}
	if !cam.IsVisible(105, 150, 10) {
		t.Error("radius should extend visibility")
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := New(800, 600, 400, 300)
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if !near(minX, -200) || !near(maxX, 200) || !near(minY, 0) || !near(maxY, 300) {
		t.Errorf("bounds = (%f,%f)-(%f,%f)", minX, minY, maxX, maxY)
	}
}

// Package camera maps the preview stage onto the screen.
//
// Stage coordinates are centimetres: X runs left to right around the body's
// centre line and Y runs up from the floor. Screen Y runs down.
package camera

// Camera controls the viewport onto the stage.
type Camera struct {
	// Position is the camera center in stage coordinates
	X, Y float32

	// Zoom in pixels per centimetre
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Stage dimensions; the stage spans [-StageW/2, StageW/2] x [0, StageH]
	StageW, StageH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera showing the whole stage.
func New(viewportW, viewportH, stageW, stageH float32) *Camera {
	c := &Camera{
		ViewportW: atLeastOne(viewportW),
		ViewportH: atLeastOne(viewportH),
		StageW:    stageW,
		StageH:    stageH,
	}
	c.updateLimits()
	c.Reset()
	return c
}

// fitZoom is the zoom at which the whole stage fits the viewport.
func (c *Camera) fitZoom() float32 {
	zx := c.ViewportW / c.StageW
	zy := c.ViewportH / c.StageH
	if zy < zx {
		return zy
	}
	return zx
}

func (c *Camera) updateLimits() {
	c.MinZoom = c.fitZoom()
	c.MaxZoom = c.MinZoom * 4
}

// WorldToScreen converts stage coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 - (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to stage coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y - (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// Scale converts a stage length in centimetres to pixels.
func (c *Camera) Scale(cm float32) float32 {
	return cm * c.Zoom
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions and recalculates zoom constraints.
// Dimensions below one pixel are raised to one.
func (c *Camera) Resize(viewportW, viewportH float32) {
	viewportW = atLeastOne(viewportW)
	viewportH = atLeastOne(viewportH)
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.updateLimits()
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels.
// The center stays on the stage.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y -= dy / c.Zoom
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset shows the whole stage.
func (c *Camera) Reset() {
	c.X = 0
	c.Y = c.StageH / 2
	c.Zoom = c.MinZoom
}

// Frame centres a figure of the given height (cm) standing on the floor and
// zooms so it fills most of the viewport height.
func (c *Camera) Frame(height float32) {
	if height <= 0 {
		c.Reset()
		return
	}
	c.X = 0
	c.Y = height / 2
	c.SetZoom(c.ViewportH / (height * 1.15))
}

// VisibleWorldBounds returns the stage-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

func (c *Camera) clampCenter() {
	c.X = clamp(c.X, -c.StageW/2, c.StageW/2)
	c.Y = clamp(c.Y, 0, c.StageH)
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

func atLeastOne(v float32) float32 {
	if v < 1 {
		return 1
	}
	return v
}

package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bodylab/camera"
	"github.com/pthm-cable/bodylab/metrics"
)

// Figure draws a stylized front silhouette scaled to the displayed metrics,
// standing on a floor line next to a height ruler.
type Figure struct {
	renderer *Renderer
	cam      *camera.Camera
}

// NewFigure creates a figure drawn through cam.
func NewFigure(cam *camera.Camera) *Figure {
	return &Figure{renderer: NewRenderer(), cam: cam}
}

// Draw renders the ruler, floor and silhouette.
func (f *Figure) Draw(m metrics.DisplayMetrics) {
	t := f.renderer.Theme
	h := float32(m.Height)

	// Body mass index sets the width of the torso and limbs.
	bmi := float32(22)
	if m.Height > 0 {
		hm := m.Height / 100
		bmi = float32(m.Weight / (hm * hm))
	}
	girth := float32(math.Sqrt(float64(bmi / 22)))

	f.drawRuler(t)

	// Floor
	x0, fy := f.cam.WorldToScreen(-f.cam.StageW/2, 0)
	x1, _ := f.cam.WorldToScreen(f.cam.StageW/2, 0)
	rl.DrawLine(int32(x0), int32(fy), int32(x1), int32(fy), t.RulerColor)

	// Head is ~1/7.5 of stature in adults and a larger share in infants.
	headRatio := float32(1 / 7.5)
	if h < 150 {
		headRatio = 1/7.5 + (150-h)/150*0.12
	}
	head := h * headRatio
	neck := h - head
	shoulder := neck - head*0.3
	hip := h * 0.52
	knee := h * 0.28

	torsoW := h * 0.13 * girth
	legW := h * 0.055 * girth
	armW := h * 0.04 * girth

	f.rect(-torsoW/2, hip, torsoW, shoulder-hip, t.FigureFill)
	// arms
	f.rect(-torsoW/2-armW, knee+h*0.1, armW, shoulder-knee-h*0.1, t.FigureFill)
	f.rect(torsoW/2, knee+h*0.1, armW, shoulder-knee-h*0.1, t.FigureFill)
	// legs
	f.rect(-torsoW/2+1, 0, legW, hip, t.FigureFill)
	f.rect(torsoW/2-1-legW, 0, legW, hip, t.FigureFill)
	f.rect(-head*0.15, shoulder, head*0.3, neck-shoulder, t.FigureFill)

	cx, cy := f.cam.WorldToScreen(0, neck+head/2)
	rl.DrawCircle(int32(cx), int32(cy), f.cam.Scale(head/2), t.FigureFill)
	rl.DrawCircleLines(int32(cx), int32(cy), f.cam.Scale(head/2), t.FigureOutline)

	// Caption under the feet
	label := m.String()
	lx, ly := f.cam.WorldToScreen(0, 0)
	tw := rl.MeasureText(label, t.HeaderFontSize)
	rl.DrawText(label, int32(lx)-tw/2, int32(ly)+6, t.HeaderFontSize, t.ValueColor)
}

// rect draws an axis-aligned stage rectangle with its bottom-left at (x, y).
func (f *Figure) rect(x, y, w, h float32, c rl.Color) {
	sx, sy := f.cam.WorldToScreen(x, y+h)
	rl.DrawRectangle(int32(sx), int32(sy), int32(f.cam.Scale(w)), int32(f.cam.Scale(h)), c)
	rl.DrawRectangleLines(int32(sx), int32(sy), int32(f.cam.Scale(w)), int32(f.cam.Scale(h)), f.renderer.Theme.FigureOutline)
}

// drawRuler draws tick marks every 10 cm, labelled every 50 cm.
func (f *Figure) drawRuler(t Theme) {
	rx := -f.cam.StageW/2 + 10
	for cm := float32(0); cm <= f.cam.StageH; cm += 10 {
		sx, sy := f.cam.WorldToScreen(rx, cm)
		tick := int32(4)
		if int(cm)%50 == 0 {
			tick = 10
			rl.DrawText(fmt.Sprintf("%.0f", cm), int32(sx)+tick+2, int32(sy)-t.FontSize/2, t.FontSize, t.RulerColor)
		}
		rl.DrawLine(int32(sx), int32(sy), int32(sx)+tick, int32(sy), t.RulerColor)
	}
}

package viewer

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var background = rl.Color{R: 30, G: 34, B: 40, A: 255}

// Draw renders one frame. Slider edits made through the panel take effect
// before the figure is drawn on the next frame.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(background)

	// Stage
	v.reframe()
	rl.BeginScissorMode(v.panelWidth, 0, v.stageColumn(), v.height)
	v.drawStage()
	rl.EndScissorMode()

	// Panels
	action := v.sliders.Draw(v.session)
	v.handleAction(action)
	v.info.Draw(v.session)
	v.morphs.Draw(v.session)

	// Status line
	if v.status != "" && time.Now().Before(v.statusUntil) {
		rl.DrawText(v.status, v.panelWidth+10, v.height-24, 16, rl.Yellow)
	}
	rl.DrawText("R reset | Ctrl+S save | Ctrl+L load | wheel zoom | Home refit",
		v.panelWidth+10, 10, 12, rl.Gray)

	rl.EndDrawing()
}

// drawStage draws the figure offset into the centre column.
func (v *Viewer) drawStage() {
	mode := rl.Camera2D{Offset: rl.Vector2{X: float32(v.panelWidth)}, Zoom: 1}
	rl.BeginMode2D(mode)
	v.figure.Draw(v.session.Display())
	rl.EndMode2D()
}

package viewer

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bodylab/ui"
)

// handleInput processes keyboard and mouse input outside the panels.
func (v *Viewer) handleInput() {
	// Window resize propagation
	if rl.IsWindowResized() {
		v.width = int32(rl.GetScreenWidth())
		v.height = int32(rl.GetScreenHeight())
		v.layout()
	}

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyR) {
		v.handleAction(ui.ActionReset)
	}
	if rl.IsKeyPressed(rl.KeyS) && rl.IsKeyDown(rl.KeyLeftControl) {
		v.handleAction(ui.ActionSave)
	}
	if rl.IsKeyPressed(rl.KeyL) && rl.IsKeyDown(rl.KeyLeftControl) {
		v.handleAction(ui.ActionLoad)
	}

	// Camera controls only over the stage area
	mouse := rl.GetMousePosition()
	if mouse.X < float32(v.panelWidth) || mouse.X > float32(v.width-v.panelWidth) {
		return
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.cam.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		v.framed = 0
		v.reframe()
	}
}

// handleAction applies a slider panel button.
func (v *Viewer) handleAction(a ui.SliderAction) {
	switch a {
	case ui.ActionReset:
		v.session.Reset()
		v.setStatus("Reset")

	case ui.ActionSave:
		p, err := v.session.SavePreset(time.Now())
		if err != nil {
			slog.Error("failed to save preset", "error", err)
			v.setStatus("Save failed")
			return
		}
		slog.Info("preset saved", "preset", p, "count", len(v.session.Presets()))
		v.setStatus("Saved")

	case ui.ActionLoad:
		if !v.session.LoadLatest() {
			v.setStatus("No presets")
			return
		}
		slog.Info("preset loaded", "session", v.session)
		v.setStatus("Loaded")
	}
}

// Package viewer runs the interactive slider preview window.
package viewer

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bodylab/camera"
	"github.com/pthm-cable/bodylab/config"
	"github.com/pthm-cable/bodylab/session"
	"github.com/pthm-cable/bodylab/ui"
)

// Stage size in centimetres.
const (
	stageWidth  = 160
	stageHeight = 260
)

const statusDuration = 2 * time.Second

// Viewer holds the window state around a session.
type Viewer struct {
	session *session.Session

	cam     *camera.Camera
	figure  *ui.Figure
	sliders *ui.SliderPanel
	info    *ui.InfoPanel
	morphs  *ui.InfoPanel

	width, height int32
	panelWidth    int32

	status      string
	statusUntil time.Time

	// revision of the session the camera was last framed for
	framed int
}

// New creates a viewer. The raylib window must already be open.
func New(s *session.Session, cfg config.ViewerConfig) *Viewer {
	w := int32(cfg.Width)
	h := int32(cfg.Height)
	pw := int32(cfg.PanelWidth)

	v := &Viewer{
		session:    s,
		width:      w,
		height:     h,
		panelWidth: pw,
	}

	v.cam = camera.New(float32(v.stageColumn()), float32(h), stageWidth, stageHeight)
	v.figure = ui.NewFigure(v.cam)
	v.sliders = ui.NewSliderPanel(10, 10, pw-20)
	v.info = ui.NewInfoPanel("Metrics", ui.MetricsSections(), 10, 0, pw-20)
	v.morphs = ui.NewInfoPanel("Morphs", ui.MorphSections(), w-pw+10, 10, pw-20)
	v.layout()
	v.reframe()

	return v
}

// layout positions the panels for the current window size.
func (v *Viewer) layout() {
	v.info.SetPosition(10, 10+v.sliders.Height()+10)
	v.morphs.SetPosition(v.width-v.panelWidth+10, 10)
	v.cam.Resize(float32(v.stageColumn()), float32(v.height))
}

// stageColumn is the width in pixels of the column between the two panels.
func (v *Viewer) stageColumn() int32 {
	return max(v.width-2*v.panelWidth, 1)
}

// reframe zooms the stage onto the figure after the sliders changed.
func (v *Viewer) reframe() {
	if v.framed == v.session.Revision() {
		return
	}
	v.cam.Frame(float32(v.session.Display().Height))
	v.framed = v.session.Revision()
}

// setStatus shows a short message at the bottom of the window.
func (v *Viewer) setStatus(msg string) {
	v.status = msg
	v.statusUntil = time.Now().Add(statusDuration)
}

// Run drives the window until it is closed.
func (v *Viewer) Run() {
	slog.Info("viewer started", "session", v.session)
	for !rl.WindowShouldClose() {
		v.handleInput()
		v.Draw()
	}
	slog.Info("viewer closed", "session", v.session)
}

package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/lander/internal/landing"
	"github.com/san-kum/lander/internal/sim"
	"github.com/san-kum/lander/internal/viz"
)

const (
	width       = 80
	height      = 24
	trailLength = 200
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws the flight on a plain terminal while a simulation
// runs. It is a sim.Observer; frames arriving faster than the frame rate are
// skipped except the one on which the verdict latches.
type LiveRenderer struct {
	out       io.Writer
	scene     *viz.Scene
	canvas    *viz.Canvas
	trail     *sim.Trail
	frameRate int
	lastFrame time.Time
	lastDrawn landing.Status
	now       func() time.Time
}

// NewLiveRenderer frames the view around the terrain and the start frame.
func NewLiveRenderer(out io.Writer, scene *viz.Scene, start sim.Frame, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	c := viz.NewCanvas(width, height)
	c.SetViewport(scene.Viewport([]sim.Frame{start}))
	return &LiveRenderer{
		out:       out,
		scene:     scene,
		canvas:    c,
		trail:     sim.NewTrail(trailLength),
		frameRate: frameRate,
		now:       time.Now,
	}
}

func (r *LiveRenderer) OnFrame(f sim.Frame) {
	r.trail.OnFrame(f)

	verdict := f.Status != landing.Flying && r.lastDrawn == landing.Flying
	now := r.now()
	if !verdict && now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = now
	r.lastDrawn = f.Status

	r.scene.Draw(r.canvas, f, r.trail.Points())
	r.render(f)
}

func (r *LiveRenderer) render(f sim.Frame) {
	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  %s  t=%.2fs  %s\n", r.scene.Ship.Name, f.Time, viz.StatusBadge(f.Status))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas.Grid {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	fmt.Fprintf(&b, "  alt=%.1f v=(%.1f, %.1f) angle=%.1f omega=%.1f engines=%d\n",
		f.Altitude, f.Velocity.X, f.Velocity.Y, f.Angle, f.AngularVelocity, f.ActiveEngines)

	io.WriteString(r.out, b.String())
}

func (r *LiveRenderer) Start() { io.WriteString(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { io.WriteString(r.out, showCursor) }

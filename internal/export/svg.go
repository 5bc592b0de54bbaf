package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/landing"
	"github.com/san-kum/lander/internal/sim"
	"github.com/san-kum/lander/internal/viz"
)

type projector struct {
	view          viz.Viewport
	width, height float64
}

func (p projector) xy(v dynamo.Vec2) (float64, float64) {
	x := (v.X - p.view.MinX) / (p.view.MaxX - p.view.MinX) * p.width
	y := (v.Y - p.view.MinY) / (p.view.MaxY - p.view.MinY) * p.height
	return x, y
}

func (p projector) path(pts []dynamo.Vec2, closed bool) string {
	var b []byte
	for i, v := range pts {
		x, y := p.xy(v)
		cmd := byte('L')
		if i == 0 {
			cmd = 'M'
		}
		b = fmt.Appendf(b, "%c%.1f,%.1f ", cmd, x, y)
	}
	if closed {
		b = append(b, 'Z')
	}
	return string(b)
}

// FlightSVG draws the terrain, the flown center-of-mass path and the ship
// outline at the first and last frame. The final outline takes the color of
// the run's verdict.
func FlightSVG(w io.Writer, scene *viz.Scene, frames []sim.Frame, width, height int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to draw")
	}
	p := projector{view: scene.Viewport(frames), width: float64(width), height: float64(height)}
	theme := viz.CurrentTheme

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	ground := make([]dynamo.Vec2, 0, scene.Ground.Samples())
	for k := 0; k < scene.Ground.Samples(); k++ {
		ground = append(ground, scene.Ground.VertexAt(int64(2*k)).Position)
	}
	fmt.Fprintf(bw, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"%s\"/>\n", theme.Ground, p.path(ground, false))

	trail := make([]dynamo.Vec2, len(frames))
	for i, f := range frames {
		trail[i] = f.Center
	}
	fmt.Fprintf(bw, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"1\" stroke-dasharray=\"4 3\" d=\"%s\"/>\n", theme.Muted, p.path(trail, false))

	first, last := frames[0], frames[len(frames)-1]
	for _, f := range []sim.Frame{first, last} {
		b := scene.Ship.Body
		b.SetPose(f.Position, f.Angle)
		v := b.Vertices()
		color := theme.Primary
		if f.Status != landing.Flying {
			color = theme.StatusColor(f.Status)
		}
		fmt.Fprintf(bw, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"2\" d=\"%s\"/>\n", color, p.path(v[:], true))
	}

	if last.Status != landing.Flying {
		x, y := p.xy(last.Center)
		fmt.Fprintf(bw, "<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-family=\"monospace\" font-size=\"14\">%s</text>\n",
			x, y-20, theme.StatusColor(last.Status), last.Status.Text())
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

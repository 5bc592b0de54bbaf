package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/landing"
	"github.com/san-kum/lander/internal/sim"
)

// Series names a per-frame quantity that can be plotted.
type Series string

const (
	Altitude      Series = "altitude"
	Speed         Series = "speed"
	VerticalSpeed Series = "vy"
	Angle         Series = "angle"
	Omega         Series = "omega"
)

var captions = map[Series]string{
	Altitude:      "altitude above terrain",
	Speed:         "speed",
	VerticalSpeed: "vertical speed (down is positive)",
	Angle:         "ship angle (deg)",
	Omega:         "angular velocity (deg/s)",
}

// Flight is the default set of series the plot command shows.
var Flight = []Series{Altitude, VerticalSpeed, Speed, Angle}

func ParseSeries(name string) (Series, error) {
	s := Series(name)
	if _, ok := captions[s]; !ok {
		return "", fmt.Errorf("unknown series %q: %w", name, dynamo.ErrUnknownName)
	}
	return s, nil
}

// Values extracts series s from frames.
func Values(frames []sim.Frame, s Series) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		switch s {
		case Altitude:
			out[i] = f.Altitude
		case Speed:
			out[i] = f.Velocity.Length()
		case VerticalSpeed:
			out[i] = f.Velocity.Y
		case Angle:
			out[i] = dynamo.WrapDegrees(f.Angle)
		case Omega:
			out[i] = f.AngularVelocity
		}
	}
	return out
}

// Plot charts one series of a flight.
func Plot(frames []sim.Frame, s Series, width, height int) string {
	data := Values(frames, s)
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(captions[s]),
	)
}

// PlotOutcomes draws a bar per verdict, longest bar width cells.
func PlotOutcomes(tally map[landing.Status]int, width int) string {
	total, peak := 0, 0
	for _, n := range tally {
		total += n
		peak = max(peak, n)
	}
	if total == 0 {
		return Subtle.Render("no flights")
	}

	var b strings.Builder
	for s := landing.Flying; s <= landing.CrashAngleGap; s++ {
		n := tally[s]
		if n == 0 {
			continue
		}
		bar := strings.Repeat("█", max(n*width/peak, 1))
		fmt.Fprintf(&b, "%-16s %s %d (%.0f%%)\n",
			s.String(), colorize(s, bar), n, 100*float64(n)/float64(total))
	}
	return b.String()
}

func colorize(s landing.Status, text string) string {
	return lipgloss.NewStyle().Foreground(CurrentTheme.StatusColor(s)).Render(text)
}

package control

import (
	"sort"

	"github.com/san-kum/lander/internal/craft"
	"github.com/san-kum/lander/internal/sim"
)

// Window holds a command over [From, To).
type Window struct {
	From, To float64
	Command  craft.Command
}

// Script replays fixed commands by time. Outside every window the craft
// coasts; where windows overlap the earliest starting one wins.
type Script struct {
	windows []Window
}

func NewScript(windows []Window) *Script {
	ws := make([]Window, len(windows))
	copy(ws, windows)
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].From < ws[j].From })
	return &Script{windows: ws}
}

func (s *Script) Compute(obs sim.Observation, t float64) craft.Command {
	for _, w := range s.windows {
		if t >= w.From && t < w.To {
			return w.Command
		}
	}
	return craft.Command{}
}

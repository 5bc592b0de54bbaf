package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/lander/internal/landing"
	"github.com/san-kum/lander/internal/sim"
	"github.com/san-kum/lander/internal/viz"
)

const (
	tickRate = time.Second / 30
	maxSpeed = 64
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Replay plays back recorded frames. speed is the number of frames advanced
// per tick.
type Replay struct {
	title    string
	scene    *viz.Scene
	frames   []sim.Frame
	canvas   *viz.Canvas
	trail    *sim.Trail
	index    int
	speed    int
	playing  bool
	altitude []float64
	showHelp bool
}

func NewReplay(title string, scene *viz.Scene, frames []sim.Frame) Replay {
	c := viz.NewCanvas(width, height)
	c.SetViewport(scene.Viewport(frames))
	m := Replay{
		title:    title,
		scene:    scene,
		frames:   frames,
		canvas:   c,
		trail:    sim.NewTrail(trailLength),
		speed:    1,
		playing:  len(frames) > 1,
		altitude: viz.Values(frames, viz.Altitude),
	}
	m.seek(0)
	return m
}

func (m Replay) Init() tea.Cmd { return tick() }

func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
			if m.playing && m.index == len(m.frames)-1 {
				m.seek(0)
			}
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-", "_":
			m.speed = max(m.speed/2, 1)
		case "right", "]":
			m.playing = false
			m.seek(m.index + m.speed)
		case "left", "[":
			m.playing = false
			m.seek(m.index - m.speed)
		case "home", "r":
			m.seek(0)
		case "end":
			m.seek(len(m.frames) - 1)
		case "t":
			viz.NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.playing {
			m.advance(m.speed)
		}
		return m, tick()
	}
	return m, nil
}

// advance moves forward n frames, stopping at the last one.
func (m *Replay) advance(n int) {
	for i := 0; i < n && m.index < len(m.frames)-1; i++ {
		m.index++
		m.trail.OnFrame(m.frames[m.index])
	}
	if m.index >= len(m.frames)-1 {
		m.playing = false
	}
}

// seek jumps to frame i and rebuilds the trail leading up to it.
func (m *Replay) seek(i int) {
	if len(m.frames) == 0 {
		return
	}
	i = max(0, min(i, len(m.frames)-1))
	m.index = i
	m.trail.Clear()
	for k := max(0, i-trailLength+1); k <= i; k++ {
		m.trail.OnFrame(m.frames[k])
	}
}

func (m Replay) Index() int    { return m.index }
func (m Replay) Speed() int    { return m.speed }
func (m Replay) Playing() bool { return m.playing }

func (m Replay) Current() sim.Frame {
	if len(m.frames) == 0 {
		return sim.Frame{}
	}
	return m.frames[m.index]
}

func (m Replay) View() string {
	if len(m.frames) == 0 {
		return "no frames to replay\n"
	}
	f := m.Current()
	m.scene.Draw(m.canvas, f, m.trail.Points())
	canvasView := canvasStyle.Render(m.canvas.String())

	state := "PLAYING"
	if !m.playing {
		state = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(viz.Title.Render(strings.ToUpper(m.title)) + "\n")
	fmt.Fprintf(&s, "%s  x%d\n", state, m.speed)
	s.WriteString(viz.StatusBadge(f.Status) + "\n\n")
	s.WriteString(viz.MetricLine("time", f.Time, "s") + "\n")
	s.WriteString(viz.MetricLine("altitude", f.Altitude, "") + "\n")
	s.WriteString(viz.MetricLine("speed", f.Velocity.Length(), "") + "\n")
	s.WriteString(viz.MetricLine("vertical speed", f.Velocity.Y, "") + "\n")
	s.WriteString(viz.MetricLine("angle", f.Angle, "°") + "\n")
	s.WriteString(viz.MetricLine("omega", f.AngularVelocity, "°/s") + "\n")
	s.WriteString(viz.MetricLabel.Render("engines") + viz.MetricValue.Render(fmt.Sprint(f.ActiveEngines)) + "\n\n")

	progress := float64(m.index) / float64(max(len(m.frames)-1, 1))
	s.WriteString(viz.ProgressBar(progress, 30) + "\n")
	s.WriteString(viz.Sparkline(m.altitude[:m.index+1], 30) + "\n")

	if f.Status != landing.Flying {
		s.WriteString("\n" + f.Status.Text() + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render("SPACE  play/pause\n+/-    speed\n←/→    step\nR      restart\nEND    last frame\nT      theme\nQ      quit"))
	} else {
		s.WriteString(helpStyle.Render("SP:Play +/-:Speed ←→:Step Q:Quit ?:Help"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// Run opens the replay full screen and blocks until the user quits.
func Run(m Replay) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

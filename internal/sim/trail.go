package sim

import "github.com/san-kum/lander/internal/dynamo"

// Trail keeps the most recent center-of-mass positions for drawing the path
// a body has flown. A zero limit keeps everything.
type Trail struct {
	limit  int
	points []dynamo.Vec2
}

func NewTrail(limit int) *Trail {
	return &Trail{limit: limit}
}

func (tr *Trail) Push(p dynamo.Vec2) {
	tr.points = append(tr.points, p)
	if tr.limit > 0 && len(tr.points) > tr.limit {
		tr.points = tr.points[len(tr.points)-tr.limit:]
	}
}

func (tr *Trail) OnFrame(f Frame) { tr.Push(f.Center) }

func (tr *Trail) Points() []dynamo.Vec2 { return tr.points }

func (tr *Trail) Len() int { return len(tr.points) }

func (tr *Trail) Clear() { tr.points = tr.points[:0] }

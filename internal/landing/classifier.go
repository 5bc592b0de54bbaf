package landing

import (
	"math"

	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/terrain"
)

// ReleaseAfter is how long, in seconds, a body must go without a
// classification before its verdict is cleared.
const ReleaseAfter = 0.5

// Thresholds bound a safe touchdown. MaxVelocity is compared against the
// squared speed.
type Thresholds struct {
	MaxVelocity        float64 `yaml:"max_velocity" json:"max_velocity"`
	MaxAngularVelocity float64 `yaml:"max_angular_velocity" json:"max_angular_velocity"`
	MaxSlope           float64 `yaml:"max_slope" json:"max_slope"`
	MaxAngleGap        float64 `yaml:"max_angle_gap" json:"max_angle_gap"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxVelocity:        2500,
		MaxAngularVelocity: 20,
		MaxSlope:           25,
		MaxAngleGap:        10,
	}
}

// Kinematics is the part of a body the classifier reads.
type Kinematics interface {
	Center() dynamo.Vec2
	Velocity() dynamo.Vec2
	AngularVelocity() float64
	Angle() float64
	Width() float64
	Height() float64
}

// Sample describes the terrain under a body at classification time.
type Sample struct {
	Start, End int64
	Slope      float64 // degrees
	ShipAngle  float64 // degrees, reduced mod 360
}

// SampleSurface picks the terrain segment under the body's footprint.
//
// The window is centered on the vertex index of the center of mass and spans
// the body's diagonal; both ends are rounded down to an even index so they
// land on surface vertices of the strip.
func SampleSurface(k Kinematics, s terrain.Surface) Sample {
	spacing := s.Spacing()
	center := k.Center()

	mid := float64(s.BaseIndex()) + 2*center.X/spacing
	half := math.Hypot(k.Width(), k.Height()) / (2 * spacing)

	start := evenFloor(mid - half)
	end := evenFloor(mid + half)
	if end == start {
		end = start + 2
	}

	a := s.VertexAt(start).Position
	b := s.VertexAt(end).Position
	return Sample{
		Start:     start,
		End:       end,
		Slope:     b.Sub(a).Angle() * dynamo.Deg,
		ShipAngle: dynamo.Heading(k.Angle()),
	}
}

func evenFloor(x float64) int64 {
	return 2 * int64(math.Floor(x/2))
}

// Classify returns the verdict for a body touching the surface. Checks run in
// priority order and the first failing one decides.
func (th Thresholds) Classify(k Kinematics, s terrain.Surface) Status {
	st, _ := th.classify(k, s)
	return st
}

func (th Thresholds) classify(k Kinematics, s terrain.Surface) (Status, Sample) {
	sample := SampleSurface(k, s)

	switch {
	case k.Velocity().LengthSquared() > th.MaxVelocity:
		return CrashSpeed, sample
	case math.Abs(k.AngularVelocity()) > th.MaxAngularVelocity:
		return CrashSpin, sample
	case dynamo.AngleGap(sample.Slope) > th.MaxSlope:
		return CrashSlope, sample
	case dynamo.AngleGap(sample.Slope-sample.ShipAngle) > th.MaxAngleGap:
		return CrashAngleGap, sample
	default:
		return Landed, sample
	}
}

// Tracker latches the verdict of a body's contact episode and clears it once
// the body has been airborne for ReleaseAfter seconds.
//
// Observe and Tick are the only transitions; the caller composes them each
// frame: Observe while in contact, Tick every frame.
type Tracker struct {
	thresholds Thresholds
	status     Status
	sinceSeen  float64
	observed   bool
	last       Sample
}

func NewTracker(th Thresholds) *Tracker {
	return &Tracker{thresholds: th}
}

func (t *Tracker) Status() Status         { return t.status }
func (t *Tracker) Thresholds() Thresholds { return t.thresholds }

// LastSample is the terrain window from the most recent Observe.
func (t *Tracker) LastSample() Sample { return t.last }

// InContact reports whether the body was classified within the release
// window.
func (t *Tracker) InContact() bool {
	return t.observed && t.sinceSeen <= ReleaseAfter
}

// Observe classifies the body and latches the verdict if none is held yet.
// It returns the held status, which may be older than this call's verdict.
func (t *Tracker) Observe(k Kinematics, s terrain.Surface) Status {
	verdict, sample := t.thresholds.classify(k, s)
	t.sinceSeen = 0
	t.observed = true
	t.last = sample
	if t.status == Flying {
		t.status = verdict
	}
	return t.status
}

// Tick advances the release timer and reports whether it just cleared a held
// verdict.
func (t *Tracker) Tick(dt float64) bool {
	t.sinceSeen += dt
	if t.sinceSeen <= ReleaseAfter {
		return false
	}
	t.observed = false
	if t.status == Flying {
		return false
	}
	t.status = Flying
	return true
}

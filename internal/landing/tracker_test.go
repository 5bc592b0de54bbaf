package landing_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/landing"
	"github.com/san-kum/lander/internal/terrain"
)

type hull struct {
	center   dynamo.Vec2
	velocity dynamo.Vec2
	omega    float64
	angle    float64
}

func (h *hull) Center() dynamo.Vec2      { return h.center }
func (h *hull) Velocity() dynamo.Vec2    { return h.velocity }
func (h *hull) AngularVelocity() float64 { return h.omega }
func (h *hull) Angle() float64           { return h.angle }
func (h *hull) Width() float64           { return 60 }
func (h *hull) Height() float64          { return 80 }

func slopedStrip(deg float64) *terrain.Strip {
	heights := make([]float64, 101)
	for i := range heights {
		heights[i] = 500 + float64(i-50)*10*math.Tan(deg*dynamo.Rad)
	}
	s, err := terrain.NewStrip(heights, 10, 50, 2000)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Thresholds.Classify", func() {
	var (
		th   landing.Thresholds
		flat *terrain.Strip
		body *hull
	)

	BeforeEach(func() {
		th = landing.DefaultThresholds()
		var err error
		flat, err = terrain.Flat(101, 10, 500, 600)
		Expect(err).NotTo(HaveOccurred())
		body = &hull{center: dynamo.V(0, 460)}
	})

	It("lands a slow, level hull on flat ground", func() {
		body.velocity = dynamo.V(3, 20)
		Expect(th.Classify(body, flat)).To(Equal(landing.Landed))
	})

	It("checks speed before anything else", func() {
		body.velocity = dynamo.V(0, 51)
		body.omega = 100
		body.angle = 45
		Expect(th.Classify(body, slopedStrip(40))).To(Equal(landing.CrashSpeed))
	})

	It("flags spin in either direction", func() {
		body.omega = -21
		Expect(th.Classify(body, flat)).To(Equal(landing.CrashSpin))
		body.omega = 21
		Expect(th.Classify(body, flat)).To(Equal(landing.CrashSpin))
	})

	It("rejects ground steeper than the limit even when aligned", func() {
		body.angle = 30
		Expect(th.Classify(body, slopedStrip(30))).To(Equal(landing.CrashSlope))
	})

	It("accepts a gentle slope when the hull matches it", func() {
		body.angle = 12
		Expect(th.Classify(body, slopedStrip(12))).To(Equal(landing.Landed))
	})

	It("flags a hull misaligned with the ground", func() {
		body.angle = 15
		Expect(th.Classify(body, flat)).To(Equal(landing.CrashAngleGap))
	})

	DescribeTable("wraps the hull angle before comparing",
		func(angle float64, want landing.Status) {
			body.angle = angle
			Expect(th.Classify(body, flat)).To(Equal(want))
		},
		Entry("full turn plus a bit", 365.0, landing.Landed),
		Entry("negative full turn", -355.0, landing.Landed),
		Entry("just short of a full turn", 349.0, landing.CrashAngleGap),
		Entry("many turns", 720.0+9, landing.Landed),
	)
})

var _ = Describe("Tracker", func() {
	var (
		tracker *landing.Tracker
		flat    *terrain.Strip
		body    *hull
	)

	BeforeEach(func() {
		tracker = landing.NewTracker(landing.DefaultThresholds())
		flat, _ = terrain.Flat(101, 10, 500, 600)
		body = &hull{center: dynamo.V(0, 460)}
	})

	It("starts flying and out of contact", func() {
		Expect(tracker.Status()).To(Equal(landing.Flying))
		Expect(tracker.InContact()).To(BeFalse())
	})

	It("latches the first verdict of a contact episode", func() {
		body.velocity = dynamo.V(0, 80)
		Expect(tracker.Observe(body, flat)).To(Equal(landing.CrashSpeed))

		body.velocity = dynamo.Vec2{}
		for i := 0; i < 10; i++ {
			Expect(tracker.Observe(body, flat)).To(Equal(landing.CrashSpeed))
			tracker.Tick(0.1)
		}
		Expect(tracker.Status()).To(Equal(landing.CrashSpeed))
		Expect(tracker.InContact()).To(BeTrue())
	})

	It("keeps the verdict while contact continues", func() {
		tracker.Observe(body, flat)
		Expect(tracker.Tick(0.4)).To(BeFalse())
		tracker.Observe(body, flat)
		Expect(tracker.Tick(0.4)).To(BeFalse())
		Expect(tracker.Status()).To(Equal(landing.Landed))
	})

	It("clears the verdict after half a second without contact", func() {
		tracker.Observe(body, flat)
		Expect(tracker.Status()).To(Equal(landing.Landed))

		Expect(tracker.Tick(0.3)).To(BeFalse())
		Expect(tracker.Tick(0.3)).To(BeTrue())
		Expect(tracker.Status()).To(Equal(landing.Flying))
		Expect(tracker.InContact()).To(BeFalse())
	})

	It("re-arms for a new landing attempt after release", func() {
		body.velocity = dynamo.V(0, 80)
		tracker.Observe(body, flat)
		tracker.Tick(0.6)

		body.velocity = dynamo.V(0, 10)
		Expect(tracker.Observe(body, flat)).To(Equal(landing.Landed))
	})

	It("records the sampled window on even indices", func() {
		tracker.Observe(body, flat)
		s := tracker.LastSample()
		Expect(s.Start % 2).To(BeZero())
		Expect(s.End % 2).To(BeZero())
		Expect(s.End).To(BeNumerically(">", s.Start))
		Expect(s.Slope).To(BeNumerically("~", 0, 1e-9))
	})
})

var _ = Describe("Reporter", func() {
	var reporter *landing.Reporter

	BeforeEach(func() {
		reporter = landing.NewReporter()
	})

	It("starts in flight", func() {
		Expect(reporter.Text()).To(Equal("You are in flight"))
		Expect(reporter.Announced()).To(Equal(landing.Flying))
	})

	It("announces a crash only after the throttle interval", func() {
		_, ok := reporter.Tick(0.3, landing.CrashSpeed)
		Expect(ok).To(BeFalse())
		Expect(reporter.Text()).To(Equal("You are in flight"))

		msg, ok := reporter.Tick(0.3, landing.CrashSpeed)
		Expect(ok).To(BeTrue())
		Expect(msg).To(Equal("Crash! Your speed was to high!"))
		Expect(reporter.Text()).To(Equal("Crash! Your speed was to high!"))
	})

	It("emits nothing when the status has not changed", func() {
		_, ok := reporter.Tick(0.6, landing.Flying)
		Expect(ok).To(BeFalse())
	})

	It("goes silent after a crash until reset", func() {
		reporter.Tick(0.6, landing.CrashSpin)

		for _, st := range []landing.Status{landing.Flying, landing.Landed, landing.CrashSlope} {
			_, ok := reporter.Tick(0.6, st)
			Expect(ok).To(BeFalse())
		}
		Expect(reporter.Announced()).To(Equal(landing.CrashSpin))

		reporter.Reset()
		msg, ok := reporter.Tick(0.6, landing.Landed)
		Expect(ok).To(BeTrue())
		Expect(msg).To(Equal("Landing succesfull!"))
	})

	It("keeps reporting after a successful landing", func() {
		reporter.Tick(0.6, landing.Landed)
		msg, ok := reporter.Tick(0.6, landing.Flying)
		Expect(ok).To(BeTrue())
		Expect(msg).To(Equal("You are in flight"))
	})

	It("invokes the announce hook", func() {
		var got []landing.Status
		reporter.OnAnnounce = func(s landing.Status, _ string) { got = append(got, s) }

		reporter.Tick(0.6, landing.Landed)
		reporter.Tick(0.6, landing.CrashAngleGap)
		Expect(got).To(Equal([]landing.Status{landing.Landed, landing.CrashAngleGap}))
	})
})

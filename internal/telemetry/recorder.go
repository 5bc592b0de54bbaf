package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/lander/internal/landing"
	"github.com/san-kum/lander/internal/sim"
)

// Recorder collects flight outcomes on a private registry.
type Recorder struct {
	registry       *prometheus.Registry
	flightsTotal   *prometheus.CounterVec
	touchdownSpeed prometheus.Histogram
	flightDuration prometheus.Histogram
	framesTotal    prometheus.Counter
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		flightsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lander_flights_total",
				Help: "Finished flights by outcome",
			},
			[]string{"outcome"},
		),
		touchdownSpeed: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lander_touchdown_speed",
				Help:    "Speed of the craft when the verdict latched",
				Buckets: []float64{5, 10, 20, 30, 40, 50, 75, 100, 200},
			},
		),
		flightDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lander_flight_seconds",
				Help:    "Simulated time until touchdown",
				Buckets: prometheus.LinearBuckets(0, 5, 9),
			},
		),
		framesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "lander_frames_total",
				Help: "Frames recorded across all flights",
			},
		),
	}

	r.registry.MustRegister(r.flightsTotal, r.touchdownSpeed, r.flightDuration, r.framesTotal)
	return r
}

// OnFrame lets the recorder observe a simulator directly.
func (r *Recorder) OnFrame(sim.Frame) { r.framesTotal.Inc() }

// Record counts one finished flight. Flights that never touched down count
// under "flying" and add nothing to the histograms.
func (r *Recorder) Record(res *sim.Result) {
	if res == nil {
		return
	}
	r.flightsTotal.WithLabelValues(res.Outcome.String()).Inc()
	if res.Outcome == landing.Flying {
		return
	}
	if f, ok := res.Touchdown(); ok {
		r.touchdownSpeed.Observe(f.Velocity.Length())
	}
	r.flightDuration.Observe(res.TouchdownAt)
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

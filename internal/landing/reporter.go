package landing

// ReportInterval is the throttle period of status announcements in seconds.
const ReportInterval = 0.5

// Reporter turns the latched status into at most one announcement per
// interval. After a crash has been announced it stays silent until Reset.
type Reporter struct {
	elapsed   float64
	announced Status
	text      string

	// OnAnnounce, when set, receives every announcement.
	OnAnnounce func(Status, string)
}

func NewReporter() *Reporter {
	return &Reporter{announced: Flying, text: Flying.Text()}
}

// Text is the message of the last announced status.
func (r *Reporter) Text() string { return r.text }

func (r *Reporter) Announced() Status { return r.announced }

// Tick accumulates dt and, once per interval, announces current if it differs
// from the last announcement and that announcement was not a crash.
func (r *Reporter) Tick(dt float64, current Status) (string, bool) {
	r.elapsed += dt
	if r.elapsed <= ReportInterval {
		return "", false
	}
	r.elapsed = 0

	if current == r.announced || r.announced.Crashed() {
		return "", false
	}

	r.announced = current
	r.text = current.Text()
	if r.OnAnnounce != nil {
		r.OnAnnounce(current, r.text)
	}
	return r.text, true
}

// Reset re-arms the reporter for a new flight.
func (r *Reporter) Reset() {
	r.elapsed = 0
	r.announced = Flying
	r.text = Flying.Text()
}

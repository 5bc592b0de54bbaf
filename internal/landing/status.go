package landing

import "fmt"

// Status is the verdict of one contact episode.
type Status int

const (
	Flying Status = iota
	Landed
	CrashSpeed
	CrashSpin
	CrashSlope
	CrashAngleGap
)

var statusNames = [...]string{
	Flying:        "flying",
	Landed:        "landed",
	CrashSpeed:    "crash_speed",
	CrashSpin:     "crash_spin",
	CrashSlope:    "crash_slope",
	CrashAngleGap: "crash_angle_gap",
}

var statusTexts = [...]string{
	Flying:        "You are in flight",
	Landed:        "Landing succesfull!",
	CrashSpeed:    "Crash! Your speed was to high!",
	CrashSpin:     "Crash! Your rotation speed was to high!",
	CrashSlope:    "Crash! Bad landing zone!",
	CrashAngleGap: "Crash! It was really bad!",
}

func (s Status) valid() bool { return s >= Flying && s <= CrashAngleGap }

func (s Status) String() string {
	if !s.valid() {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// Text is the player-facing message for the status.
func (s Status) Text() string {
	if !s.valid() {
		return ""
	}
	return statusTexts[s]
}

func (s Status) Crashed() bool { return s >= CrashSpeed && s.valid() }

// ParseStatus is the inverse of String.
func ParseStatus(name string) (Status, error) {
	for i, n := range statusNames {
		if n == name {
			return Status(i), nil
		}
	}
	return Flying, fmt.Errorf("unknown flight status %q", name)
}

// Statuses lists every status in enum order.
func Statuses() []Status {
	return []Status{Flying, Landed, CrashSpeed, CrashSpin, CrashSlope, CrashAngleGap}
}

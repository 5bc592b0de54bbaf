// Package landing decides how a descent ended.
//
// [Thresholds.Classify] samples the terrain slope under a body and checks,
// in order, speed, spin, slope steepness and the angle between hull and
// ground. [Tracker] latches the first verdict of a contact episode and clears
// it after [ReleaseAfter] seconds without contact; [Reporter] throttles the
// resulting status changes into player-facing messages.
//
// A frame composes them like this:
//
//	if inContact {
//	    tracker.Observe(body, surface)
//	}
//	tracker.Tick(dt)
//	if msg, ok := reporter.Tick(dt, tracker.Status()); ok {
//	    fmt.Println(msg)
//	}
package landing

// Package analysis finds periodic structure in flight series.
//
// The autopilot's attitude loop is a bang-bang switch, so a badly tuned
// craft rocks instead of settling. [Dominant] reports the frequency of that
// rocking from a recorded angle series:
//
//	osc := analysis.Dominant(viz.Values(frames, viz.Angle), dt)
package analysis

// Package control provides the pilots that fly a craft.
//
// Controllers implement [sim.Controller] and turn an observation into a
// [craft.Command] each frame:
//
//   - [None]: engines stay off
//   - [Autopilot]: PID on descent rate with bang-bang attitude hold
//   - [Script]: fixed commands over time windows
//
// [PID] is the scalar loop the autopilot is built on.
package control

// Package tui shows lander flights in the terminal: LiveRenderer while a
// simulation runs and Replay, a Bubble Tea program, for stored runs.
package tui

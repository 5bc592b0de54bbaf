// Package viz draws lander flights in the terminal.
//
// A [Canvas] is a braille dot grid with a world [Viewport]; a [Scene] draws
// the terrain and the ship of a recorded frame onto it. [Plot] charts frame
// series with asciigraph and [PlotOutcomes] summarises an ensemble. Colors
// come from the current [Theme].
package viz

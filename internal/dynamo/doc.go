// Package dynamo provides the shared primitives of the lander simulator.
//
// The package defines the small vocabulary every other package speaks:
//
//   - [Vec2]: 2D vector in world or body-local coordinates
//   - [Rad], [WrapDegrees], [AngleGap]: degree based angle helpers
//   - domain errors wrapped by the construction and loading paths
//
// # Coordinates
//
// World coordinates follow the screen convention the craft presets were
// authored in: x grows to the right, y grows downward, and angles are in
// degrees, positive clockwise on screen.
package dynamo

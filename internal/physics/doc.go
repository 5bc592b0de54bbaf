// Package physics models the lander as a rectangular rigid body.
//
// A [Body] carries its pose, rates and a name-keyed set of [Force] values.
// The only way to change that set is [Body.AddForce], [Body.RemoveForce],
// [Body.SetForceActive] and [Body.GetForce]; the map itself never leaves the
// body.
//
// [Aggregate] turns the active forces into net accelerations for the current
// orientation:
//
//	b, _ := physics.NewBody(params)
//	b.AddForce("gravity", physics.NewField(dynamo.V(0, 40)))
//	b.Refresh()
//
// The body is tracked by the corner of its bounding rectangle, not by its
// center of mass; [Body.Center] converts between the two using the distance
// and bearing fixed at construction.
package physics

// Package optim tunes autopilot gains by grid search over seeded ensembles.
package optim

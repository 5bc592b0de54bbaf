// Package craft mounts engines on a rigid body and maps pilot commands onto
// them.
package craft

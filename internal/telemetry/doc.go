// Package telemetry exports flight outcomes as Prometheus metrics.
package telemetry

// Package export renders stored flights to files other tools can open.
package export

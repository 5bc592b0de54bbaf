package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/lander/internal/sim"
)

type ExportFrame struct {
	Time            float64 `json:"t"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	CenterX         float64 `json:"cx"`
	CenterY         float64 `json:"cy"`
	VX              float64 `json:"vx"`
	VY              float64 `json:"vy"`
	Angle           float64 `json:"angle"`
	AngularVelocity float64 `json:"omega"`
	Altitude        float64 `json:"altitude"`
	Status          string  `json:"status"`
}

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Steps  int           `json:"steps"`
	Frames []ExportFrame `json:"frames"`
}

// ExportJSON writes a run and its trajectory as one indented JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, frames []sim.Frame) error {
	data := ExportData{
		Run:    meta,
		Steps:  len(frames),
		Frames: make([]ExportFrame, len(frames)),
	}
	for i, f := range frames {
		data.Frames[i] = ExportFrame{
			Time:            f.Time,
			X:               f.Position.X,
			Y:               f.Position.Y,
			CenterX:         f.Center.X,
			CenterY:         f.Center.Y,
			VX:              f.Velocity.X,
			VY:              f.Velocity.Y,
			Angle:           f.Angle,
			AngularVelocity: f.AngularVelocity,
			Altitude:        f.Altitude,
			Status:          f.Status.String(),
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

package control

import (
	"github.com/san-kum/lander/internal/craft"
	"github.com/san-kum/lander/internal/sim"
)

type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Compute(obs sim.Observation, t float64) craft.Command {
	return craft.Command{}
}

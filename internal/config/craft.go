package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/lander/internal/dynamo"
	"github.com/san-kum/lander/internal/physics"
)

// ErrPreset marks a craft preset that could not be read.
var ErrPreset = errors.New("invalid craft preset")

var craftKeys = map[string]int{
	"width":             1,
	"height":            1,
	"angle":             1,
	"mass":              1,
	"moment_of_inertia": 1,
	"mass_position":     2,
}

// Crafts are the built-in body presets, in the same shape a preset file
// produces.
var Crafts = map[string]physics.Params{
	"lunar_lander_mark1": {
		Width:   60,
		Height:  80,
		Mass:    4,
		Inertia: 1000,
		COM:     dynamo.V(0.5, 0.5),
	},
	"test_block": {
		Width:   100,
		Height:  50,
		Mass:    1,
		Inertia: 100,
		COM:     dynamo.V(0.5, 0.5),
	},
}

// GetCraft returns a built-in craft preset.
func GetCraft(name string) (physics.Params, error) {
	p, ok := Crafts[name]
	if !ok {
		return physics.Params{}, fmt.Errorf("craft %q: %w", name, dynamo.ErrUnknownName)
	}
	return p, nil
}

func ListCrafts() []string {
	names := make([]string, 0, len(Crafts))
	for n := range Crafts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func LoadCraft(path string) (physics.Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return physics.Params{}, fmt.Errorf("%w: %v", ErrPreset, err)
	}
	defer f.Close()

	p, err := ParseCraft(f)
	if err != nil {
		return physics.Params{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseCraft reads a whitespace separated key-value preset:
//
//	width 60
//	height 80
//	angle 0
//	mass 4
//	moment_of_inertia 1000
//	mass_position 0.5 0.5
//
// Every key is required exactly once. Blank lines and lines starting with #
// are skipped.
func ParseCraft(r io.Reader) (physics.Params, error) {
	values := make(map[string][]float64, len(craftKeys))

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		key := fields[0]
		arity, ok := craftKeys[key]
		if !ok {
			return physics.Params{}, fmt.Errorf("%w: line %d: unknown key %q", ErrPreset, line, key)
		}
		if _, dup := values[key]; dup {
			return physics.Params{}, fmt.Errorf("%w: line %d: duplicate key %q", ErrPreset, line, key)
		}
		if len(fields)-1 != arity {
			return physics.Params{}, fmt.Errorf("%w: line %d: %s wants %d values, got %d", ErrPreset, line, key, arity, len(fields)-1)
		}

		nums := make([]float64, arity)
		for i, s := range fields[1:] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return physics.Params{}, fmt.Errorf("%w: line %d: %s: %v", ErrPreset, line, key, err)
			}
			nums[i] = v
		}
		values[key] = nums
	}
	if err := sc.Err(); err != nil {
		return physics.Params{}, fmt.Errorf("%w: %v", ErrPreset, err)
	}

	for key := range craftKeys {
		if _, ok := values[key]; !ok {
			return physics.Params{}, fmt.Errorf("%w: missing key %q", ErrPreset, key)
		}
	}

	return physics.Params{
		Width:   values["width"][0],
		Height:  values["height"][0],
		Angle:   values["angle"][0],
		Mass:    values["mass"][0],
		Inertia: values["moment_of_inertia"][0],
		COM:     dynamo.V(values["mass_position"][0], values["mass_position"][1]),
	}, nil
}

// FormatCraft writes p in the preset format ParseCraft reads.
func FormatCraft(w io.Writer, p physics.Params) error {
	_, err := fmt.Fprintf(w,
		"width %g\nheight %g\nangle %g\nmass %g\nmoment_of_inertia %g\nmass_position %g %g\n",
		p.Width, p.Height, p.Angle, p.Mass, p.Inertia, p.COM.X, p.COM.Y)
	return err
}

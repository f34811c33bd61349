package plant

import "github.com/demireidel/Atucha-II-Max/core/tour"

// DefaultTour returns the built-in guided route through the reactor hall:
// a wide establishing view, a pass along the lattice face, a low sweep over
// the core plate, a close look at the control rod bank, and a pull-back
// finale.
func DefaultTour() []tour.Waypoint {
	return []tour.Waypoint{
		{
			Name:       "hall-overview",
			Position:   [3]float32{48, 30, 48},
			Target:     [3]float32{0, platePlaneY, 0},
			Hold:       4,
			Transition: 5,
		},
		{
			Name:       "lattice-face",
			Position:   [3]float32{26, 4, 0},
			Target:     [3]float32{0, platePlaneY + 1, 0},
			Hold:       5,
			Transition: 4,
		},
		{
			Name:       "core-plate-sweep",
			Position:   [3]float32{-14, 9, 14},
			Target:     [3]float32{0, platePlaneY + plateSpacing, 0},
			Hold:       4,
			Transition: 4,
		},
		{
			Name:       "rod-bank",
			Position:   [3]float32{6, 8, -10},
			Target:     [3]float32{0, platePlaneY + rodRaise + 2, 0},
			Hold:       5,
			Transition: 3.5,
		},
		{
			Name:       "finale-pullback",
			Position:   [3]float32{-52, 34, -52},
			Target:     [3]float32{0, platePlaneY, 0},
			Hold:       3,
			Transition: 6,
		},
	}
}

package plant

import (
	"fmt"
	"strings"

	"github.com/demireidel/Atucha-II-Max/core/lattice"
)

// Factsheet renders a plain-text summary of the generated core layout. It
// is the fallback surface when no compatible GPU adapter is available, so
// the binary still reports something useful about the plant model.
//
// Parameters:
//   - gen: the lattice generator to summarize
//
// Returns:
//   - string: the formatted factsheet
func Factsheet(gen lattice.Generator) string {
	tubes := gen.Nodes()
	rods := gen.ControlRods()

	var (
		maxRadius float32
		minTemp   = float32(1e9)
		maxTemp   = float32(-1e9)
		peakFlux  float32
		rows      = map[int]struct{}{}
	)
	for _, n := range tubes {
		rows[n.Row] = struct{}{}
		if n.DistanceFromCenter > maxRadius {
			maxRadius = n.DistanceFromCenter
		}
		if n.TemperatureC < minTemp {
			minTemp = n.TemperatureC
		}
		if n.TemperatureC > maxTemp {
			maxTemp = n.TemperatureC
		}
		if n.FluxFraction > peakFlux {
			peakFlux = n.FluxFraction
		}
	}

	var b strings.Builder
	b.WriteString("Atucha II core layout\n")
	b.WriteString("=====================\n")
	fmt.Fprintf(&b, "Pressure tubes:   %d across %d rows\n", len(tubes), len(rows))
	fmt.Fprintf(&b, "Control rods:     %d\n", len(rods))
	fmt.Fprintf(&b, "Lattice pitch:    %.2f m\n", lattice.Pitch)
	fmt.Fprintf(&b, "Core radius:      %.2f m\n", maxRadius)
	fmt.Fprintf(&b, "Coolant temp:     %.1f to %.1f deg C\n", minTemp, maxTemp)
	fmt.Fprintf(&b, "Peak flux frac:   %.3f\n", peakFlux)
	return b.String()
}

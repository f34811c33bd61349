package plant

import (
	"github.com/chewxy/math32"

	"github.com/demireidel/Atucha-II-Max/core/lattice"
	"github.com/demireidel/Atucha-II-Max/engine/mesh"
	"github.com/demireidel/Atucha-II-Max/engine/renderer/material"
)

// Mesh batch names. The renderer keys instance batches by mesh name.
const (
	meshPressureTube  = "pressure-tube"
	meshControlRod    = "control-rod"
	meshCorePlate     = "core-plate"
	meshCalandriaRing = "calandria-ring"
	meshHallFloor     = "hall-floor"
	meshSupportColumn = "support-column"
)

// Vertical layout of the hall, in meters.
const (
	tubeHeight    float32 = 6.0
	rodHeight     float32 = 7.4
	rodRaise      float32 = 1.2 // rods protrude above the top plate
	platePlaneY   float32 = 0.0 // lattice plane; tubes are centered here
	plateSpacing  float32 = 3.4 // distance from lattice plane to each core plate
	floorY        float32 = -6.0
	columnHeight  float32 = 14.0
	hallExtent    float32 = 70.0
	columnOffset  float32 = 32.0
	ringCount     int     = 3
	ringSpacing   float32 = 2.6
	tubeRadius    float32 = 0.38
	rodRadius     float32 = 0.2
	tubeSegments  int     = 12
	plateSegments int     = 48
)

// hallMaterials is the fixed material set for the hall. Pressure tubes get
// their per-instance emissive strength recomputed each tick from the flux
// pulse; everything else is static.
type hallMaterials struct {
	tube   material.Material
	rod    material.Material
	plate  material.Material
	ring   material.Material
	floor  material.Material
	column material.Material
}

func newHallMaterials() hallMaterials {
	return hallMaterials{
		tube: material.NewMaterial(
			material.WithName("zircaloy-tube"),
			material.WithBaseColor([4]float32{0.62, 0.66, 0.70, 1}),
			material.WithMetallic(0.85),
			material.WithRoughness(0.35),
			material.WithEmissive([3]float32{0.15, 0.55, 0.95}, 1.0),
		),
		rod: material.NewMaterial(
			material.WithName("control-rod-steel"),
			material.WithBaseColor([4]float32{0.28, 0.30, 0.34, 1}),
			material.WithMetallic(0.9),
			material.WithRoughness(0.25),
			material.WithEmissive([3]float32{0.9, 0.35, 0.1}, 0.4),
		),
		plate: material.NewMaterial(
			material.WithName("core-plate"),
			material.WithBaseColor([4]float32{0.5, 0.52, 0.55, 1}),
			material.WithRoughness(0.6),
		),
		ring: material.NewMaterial(
			material.WithName("calandria-ring"),
			material.WithBaseColor([4]float32{0.45, 0.48, 0.52, 1}),
			material.WithMetallic(0.7),
			material.WithRoughness(0.4),
		),
		floor: material.NewMaterial(
			material.WithName("hall-floor"),
			material.WithBaseColor([4]float32{0.22, 0.23, 0.25, 1}),
			material.WithRoughness(0.9),
		),
		column: material.NewMaterial(
			material.WithName("support-column"),
			material.WithBaseColor([4]float32{0.35, 0.36, 0.38, 1}),
			material.WithRoughness(0.8),
		),
	}
}

// buildHallMeshes creates the procedural mesh set for the hall. Lattice
// radius decides the core plate and ring dimensions so the structure always
// encloses the generated tubes.
func buildHallMeshes(latticeRadius float32) []*mesh.Mesh {
	white := [4]float32{1, 1, 1, 1}
	plateOuter := latticeRadius + 1.6
	ringInner := latticeRadius + 1.2
	ringOuter := latticeRadius + 2.4

	return []*mesh.Mesh{
		mesh.NewCylinder(meshPressureTube, tubeRadius, tubeHeight, tubeSegments, white),
		mesh.NewCylinder(meshControlRod, rodRadius, rodHeight, tubeSegments, white),
		mesh.NewCylinder(meshCorePlate, plateOuter, 0.4, plateSegments, white),
		mesh.NewAnnulus(meshCalandriaRing, ringInner, ringOuter, plateSegments, white),
		mesh.NewBox(meshHallFloor, hallExtent*2, 1.0, hallExtent*2, white),
		mesh.NewBox(meshSupportColumn, 1.6, columnHeight, 1.6, white),
	}
}

// latticeRadius returns the largest tube distance from the lattice center,
// or a single pitch when the lattice is empty.
func latticeRadius(tubes []lattice.Node) float32 {
	r := lattice.Pitch
	for _, n := range tubes {
		if n.DistanceFromCenter > r {
			r = n.DistanceFromCenter
		}
	}
	return r
}

// temperatureTint maps a coolant temperature to a subtle steel tint, cool
// blue-gray at the rim and warm at the lattice center.
func temperatureTint(temperatureC float32, base [4]float32) [4]float32 {
	// Normalize against the documented gradient span.
	t := (temperatureC - lattice.BaseTemperatureC) / (lattice.TemperatureGradientC * 20)
	t = math32.Min(math32.Max(t, 0), 1)
	return [4]float32{
		base[0] + (0.95-base[0])*t*0.5,
		base[1] + (0.45-base[1])*t*0.35,
		base[2] - base[2]*t*0.4,
		base[3],
	}
}

package plant

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/chewxy/math32"

	"github.com/demireidel/Atucha-II-Max/common"
	"github.com/demireidel/Atucha-II-Max/core/capability"
	"github.com/demireidel/Atucha-II-Max/core/lattice"
	"github.com/demireidel/Atucha-II-Max/core/quality"
	"github.com/demireidel/Atucha-II-Max/core/tour"
	"github.com/demireidel/Atucha-II-Max/engine"
	"github.com/demireidel/Atucha-II-Max/engine/camera"
	"github.com/demireidel/Atucha-II-Max/engine/light"
	"github.com/demireidel/Atucha-II-Max/engine/renderer"
	"github.com/demireidel/Atucha-II-Max/engine/renderer/material"
	"github.com/demireidel/Atucha-II-Max/engine/window"
)

// dragOrbitScale converts cursor pixels to orbit steps.
const dragOrbitScale float32 = 0.15

// dragPanScale converts cursor pixels to pan units.
const dragPanScale float32 = 0.04

var _ engine.Viewer = &Scene{}

// Scene assembles the reactor hall: the tube lattice, the hall structure,
// the light rig, the guided tour, and the quality-driven renderer
// configuration. It implements engine.Viewer.
type Scene struct {
	mu *sync.Mutex

	rend renderer.Renderer
	win  window.Window

	cam   camera.Camera
	orbit camera.CameraController
	tour  tour.Controller
	qual  quality.Controller
	lat   lattice.Generator

	mats   hallMaterials
	lights []light.Light
	key    light.Light

	// pool parallelizes the per-tick emissive pulse recompute across the
	// tube instances. Workers persist across ticks.
	pool        worker.DynamicWorkerPool
	poolWorkers int

	route      []tour.Waypoint
	shadowPref bool
	postPref   bool

	params  quality.RenderingParameters
	elapsed float32

	tubeInstances []renderer.Instance
	rodInstances  []renderer.Instance
	tubeFlux      []float32
}

// NewScene builds the hall scene against an initialized renderer and
// window: probes device capabilities through the renderer's adapter,
// derives the initial quality tier, generates the lattice, uploads the
// procedural meshes, and wires input.
//
// Parameters:
//   - rend: the renderer to draw through
//   - win: the window supplying input and the content scale
//   - options: functional options to configure the scene
//
// Returns:
//   - *Scene: the assembled scene
//   - error: an error if capability probing or GPU upload fails
func NewScene(rend renderer.Renderer, win window.Window, options ...SceneBuilderOption) (*Scene, error) {
	s := &Scene{
		mu:          &sync.Mutex{},
		rend:        rend,
		win:         win,
		tour:        tour.NewController(),
		lat:         lattice.NewGenerator(),
		mats:        newHallMaterials(),
		poolWorkers: max(runtime.NumCPU()-1, 1),
		route:       DefaultTour(),
		shadowPref:  true,
		postPref:    true,
	}
	for _, option := range options {
		option(s)
	}

	if s.qual == nil {
		s.qual = quality.NewController(
			quality.WithShadowPreference(s.shadowPref),
			quality.WithPostProcessingPreference(s.postPref),
			quality.WithPixelRatioSource(win.ContentScale),
		)
	}
	if s.orbit == nil {
		s.orbit = camera.NewOrbitController(
			camera.WithTarget(0, platePlaneY, 0),
			camera.WithRadius(55),
		)
	}
	if s.cam == nil {
		s.cam = camera.NewCamera(
			camera.WithAspect(float32(win.Width())/float32(win.Height())),
			camera.WithController(s.orbit),
		)
	}

	caps, err := capability.Probe(capability.NewAdapterBackend(rend.Adapter()))
	if err != nil {
		return nil, fmt.Errorf("capability probe failed: %w", err)
	}
	level := s.qual.Initialize(caps)
	log.Printf("[Plant] device capabilities: maxTexture=%d, quality tier %s", caps.MaxTextureSize, level)

	s.pool = worker.NewDynamicWorkerPool(s.poolWorkers, 64, 1*time.Second)

	if err := s.buildHall(); err != nil {
		return nil, err
	}
	s.buildLightRig()

	s.params = s.qual.Parameters()
	if err := s.configureRenderer(win.Width(), win.Height()); err != nil {
		return nil, err
	}

	s.bindInput()
	return s, nil
}

// buildHall generates the lattice, uploads the procedural meshes, and
// precomputes all instance records. Static batches (plates, rings, floor,
// columns) upload immediately; tube and rod batches re-upload each frame
// for the emissive pulse.
func (s *Scene) buildHall() error {
	tubes := s.lat.Nodes()
	rods := s.lat.ControlRods()
	radius := latticeRadius(tubes)

	for _, m := range buildHallMeshes(radius) {
		if err := s.rend.UploadMesh(m); err != nil {
			return err
		}
	}

	tubeBase := s.mats.tube.BaseColor()
	tubeEmissive := s.mats.tube.EmissiveColor()
	s.tubeInstances = make([]renderer.Instance, len(tubes))
	s.tubeFlux = make([]float32, len(tubes))
	for i, n := range tubes {
		var inst renderer.Instance
		common.BuildModelMatrix(inst.Model[:], n.X, platePlaneY, n.Z, 0, 0, 0, 1, 1, 1)
		inst.Color = temperatureTint(n.TemperatureC, tubeBase)
		inst.Emissive = [4]float32{tubeEmissive[0], tubeEmissive[1], tubeEmissive[2], 0}
		s.tubeInstances[i] = inst
		s.tubeFlux[i] = n.FluxFraction
	}

	rodBase := s.mats.rod.BaseColor()
	rodEmissive := s.mats.rod.EmissiveColor()
	rodStrength := s.mats.rod.EmissiveStrength()
	s.rodInstances = make([]renderer.Instance, len(rods))
	for i, n := range rods {
		var inst renderer.Instance
		common.BuildModelMatrix(inst.Model[:], n.X, platePlaneY+rodRaise, n.Z, 0, 0, 0, 1, 1, 1)
		inst.Color = rodBase
		inst.Emissive = [4]float32{rodEmissive[0], rodEmissive[1], rodEmissive[2], rodStrength}
		s.rodInstances[i] = inst
	}

	return s.uploadStaticBatches(radius)
}

// uploadStaticBatches writes the instance lists that never change: the core
// plates, calandria rings, hall floor, and support columns.
func (s *Scene) uploadStaticBatches(radius float32) error {
	plateColor := s.mats.plate.BaseColor()
	plates := make([]renderer.Instance, 2)
	for i, y := range [2]float32{platePlaneY - plateSpacing, platePlaneY + plateSpacing} {
		common.BuildModelMatrix(plates[i].Model[:], 0, y, 0, 0, 0, 0, 1, 1, 1)
		plates[i].Color = plateColor
	}
	if err := s.rend.SetInstances(meshCorePlate, plates); err != nil {
		return err
	}

	ringColor := s.mats.ring.BaseColor()
	rings := make([]renderer.Instance, ringCount)
	for i := range rings {
		y := platePlaneY - ringSpacing + float32(i)*ringSpacing
		common.BuildModelMatrix(rings[i].Model[:], 0, y, 0, 0, 0, 0, 1, 1, 1)
		rings[i].Color = ringColor
	}
	if err := s.rend.SetInstances(meshCalandriaRing, rings); err != nil {
		return err
	}

	floor := make([]renderer.Instance, 1)
	common.BuildModelMatrix(floor[0].Model[:], 0, floorY, 0, 0, 0, 0, 1, 1, 1)
	floor[0].Color = s.mats.floor.BaseColor()
	if err := s.rend.SetInstances(meshHallFloor, floor); err != nil {
		return err
	}

	columnColor := s.mats.column.BaseColor()
	columns := make([]renderer.Instance, 4)
	for i, off := range [4][2]float32{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
		common.BuildModelMatrix(columns[i].Model[:],
			off[0]*columnOffset, floorY+columnHeight/2, off[1]*columnOffset,
			0, 0, 0, 1, 1, 1)
		columns[i].Color = columnColor
	}
	return s.rend.SetInstances(meshSupportColumn, columns)
}

// buildLightRig creates the directional key light and the four hall accent
// lamps, then uploads the rig.
func (s *Scene) buildLightRig() {
	s.key = light.NewLight(light.LightTypeDirectional,
		light.WithDirection(-0.45, -0.8, -0.35),
		light.WithColor(1.0, 0.98, 0.92),
		light.WithIntensity(2.2),
		light.WithCastsShadows(true),
	)
	s.lights = []light.Light{s.key}

	for _, off := range [4][2]float32{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
		s.lights = append(s.lights, light.NewLight(light.LightTypePoint,
			light.WithPosition(off[0]*columnOffset*0.6, platePlaneY+10, off[1]*columnOffset*0.6),
			light.WithColor(0.75, 0.85, 1.0),
			light.WithIntensity(1.1),
			light.WithRange(45),
		))
	}

	s.rend.SetLights(s.lights)
}

// bindInput wires keyboard and mouse events to the tour, quality, and orbit
// controls.
func (s *Scene) bindInput() {
	s.win.SetKeyDownCallback(s.handleKey)
	s.win.SetScrollCallback(func(delta float32) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.tour.FreeOrbitEnabled() {
			s.orbit.Zoom(delta)
		}
	})
	s.win.SetOrbitDragCallback(func(dx, dy float32) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.tour.FreeOrbitEnabled() {
			return
		}
		steps := func(d float32, negative, positive func()) {
			for i := 0; i < int(math32.Abs(d)*dragOrbitScale); i++ {
				if d > 0 {
					positive()
				} else {
					negative()
				}
			}
		}
		steps(dx, s.orbit.OrbitLeft, s.orbit.OrbitRight)
		steps(dy, s.orbit.OrbitDown, s.orbit.OrbitUp)
	})
	s.win.SetPanDragCallback(func(dx, dy float32) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.tour.FreeOrbitEnabled() {
			return
		}
		s.orbit.PanRight(-dx * dragPanScale)
		s.orbit.PanUp(dy * dragPanScale)
	})
}

// handleKey dispatches a key press. Tour and quality controls always work;
// camera movement only while free orbit is enabled.
func (s *Scene) handleKey(keyCode uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch keyCode {
	case common.KeyT:
		s.startTourLocked()
		return
	case common.KeyN:
		s.tour.Skip()
		return
	case common.KeyX:
		s.tour.Stop()
		return
	case common.KeyH:
		s.shadowPref = !s.shadowPref
		s.qual.SetShadowPreference(s.shadowPref)
		s.applyQualityLocked()
		return
	case common.KeyP:
		s.postPref = !s.postPref
		s.qual.SetPostProcessingPreference(s.postPref)
		s.applyQualityLocked()
		return
	case common.Key0:
		s.qual.ClearOverride()
		s.applyQualityLocked()
		return
	case common.Key1, common.Key2, common.Key3, common.Key4:
		s.qual.SetOverride(quality.Level(keyCode - common.Key0))
		s.applyQualityLocked()
		return
	}

	if !s.tour.FreeOrbitEnabled() {
		return
	}
	switch keyCode {
	case common.KeyW:
		s.orbit.PanForward(1)
	case common.KeyS:
		s.orbit.PanForward(-1)
	case common.KeyA:
		s.orbit.PanRight(-1)
	case common.KeyD:
		s.orbit.PanRight(1)
	case common.KeyQ:
		s.orbit.PanUp(1)
	case common.KeyE:
		s.orbit.PanUp(-1)
	case common.KeyLeft:
		s.orbit.OrbitLeft()
	case common.KeyRight:
		s.orbit.OrbitRight()
	case common.KeyUp:
		s.orbit.OrbitUp()
	case common.KeyDown:
		s.orbit.OrbitDown()
	}
}

// startTourLocked seeds the tour with the camera's current pose so the
// first transition eases out of it. Caller must hold the mutex.
func (s *Scene) startTourLocked() {
	px, py, pz := s.orbit.Position()
	tx, ty, tz := s.orbit.Target()
	s.tour.SetPose(tour.Pose{
		Position: [3]float32{px, py, pz},
		Target:   [3]float32{tx, ty, tz},
	})
	if err := s.tour.Start(s.route); err != nil {
		log.Printf("[Plant] tour not started: %v", err)
	}
}

// applyQualityLocked re-derives the rendering parameters and reconfigures
// the renderer when they changed. Caller must hold the mutex.
func (s *Scene) applyQualityLocked() {
	params := s.qual.Parameters()
	if params == s.params {
		return
	}
	s.params = params
	if err := s.configureRenderer(s.win.Width(), s.win.Height()); err != nil {
		log.Printf("[Plant] quality reconfigure failed: %v", err)
	}
}

// configureRenderer applies the pixel-ratio policy and reconfigures the
// renderer. The framebuffer already includes the platform content scale, so
// the render size is scaled by the ratio of the capped pixel ratio to the
// native scale, never above 1.
func (s *Scene) configureRenderer(width, height int) error {
	scale := float32(1)
	if native := s.win.ContentScale(); native > 0 && s.params.PixelRatio < native {
		scale = s.params.PixelRatio / native
	}
	w := max(int(float32(width)*scale), 1)
	h := max(int(float32(height)*scale), 1)
	return s.rend.Configure(w, h, s.params)
}

// Tick advances the tour and recomputes the per-tube emissive pulse.
// Implements engine.Viewer.
func (s *Scene) Tick(deltaTime float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.elapsed += deltaTime

	if s.tour.Active() {
		pose := s.tour.Tick(deltaTime)
		s.orbit.SetPose(
			pose.Position[0], pose.Position[1], pose.Position[2],
			pose.Target[0], pose.Target[1], pose.Target[2],
		)
	}
	s.cam.Update()

	s.pulseTubesLocked()
}

// pulseTubesLocked recomputes the tube emissive strengths in parallel.
// Chunks are sized per worker; a WaitGroup provides the per-tick barrier
// since the pool outlives the tick. Caller must hold the mutex.
func (s *Scene) pulseTubesLocked() {
	n := len(s.tubeInstances)
	if n == 0 {
		return
	}

	chunk := (n + s.poolWorkers - 1) / s.poolWorkers
	elapsed := s.elapsed

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		lo, hi := start, end
		s.pool.SubmitTask(worker.Task{
			ID: lo,
			Do: func() (any, error) {
				defer wg.Done()
				for i := lo; i < hi; i++ {
					s.tubeInstances[i].Emissive[3] = material.PulseIntensity(elapsed, s.tubeFlux[i])
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// Render uploads the per-frame state and draws. Implements engine.Viewer.
func (s *Scene) Render(deltaTime float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.rend.SetInstances(meshPressureTube, s.tubeInstances); err != nil {
		return err
	}
	if err := s.rend.SetInstances(meshControlRod, s.rodInstances); err != nil {
		return err
	}

	shadowVP := light.SettingsForQuality(s.params).
		ViewProjection(s.key.Direction(), 0, platePlaneY, 0)
	px, py, pz := s.orbit.Position()
	s.rend.UpdateGlobals(s.cam.ViewProjectionMatrix(), shadowVP, px, py, pz, s.elapsed)

	return s.rend.RenderFrame()
}

// Resize follows framebuffer changes. Implements engine.Viewer.
func (s *Scene) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	s.cam.SetAspect(float32(width) / float32(height))
	if err := s.configureRenderer(width, height); err != nil {
		log.Printf("[Plant] resize reconfigure failed: %v", err)
	}
}

// Annotation summarizes the scene state for the profiler log line.
func (s *Scene) Annotation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("Quality: %s | Tubes: %d | Rods: %d | Tour: %s",
		s.qual.Level(), len(s.tubeInstances), len(s.rodInstances), s.tour.Phase())
}

// package tour drives the guided camera tour: a state machine that advances
// an interpolated camera pose across named waypoints on each simulation tick,
// suspending free-orbit camera input during playback and restoring it when
// the tour finishes or is stopped.
package tour

import (
	"errors"
	"sync"
)

// ErrEmptyWaypoints is returned by Start when given no waypoints. The call
// is rejected and the tour state left unchanged.
var ErrEmptyWaypoints = errors.New("tour: waypoint list is empty")

// Phase is the tour state machine phase.
type Phase int

const (
	// Idle means no tour is loaded or a tour was stopped.
	Idle Phase = iota
	// Transitioning means the camera is easing toward the current waypoint.
	Transitioning
	// Holding means the camera is parked at the current waypoint.
	Holding
	// Finished means the last waypoint's hold expired; the pose stays put.
	Finished
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Transitioning:
		return "transitioning"
	case Holding:
		return "holding"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Pose is a camera position and look-at target in world space.
type Pose struct {
	Position [3]float32
	Target   [3]float32
}

// Waypoint is a named camera pose with tour timing.
type Waypoint struct {
	// Name identifies the tour station.
	Name string

	// Position is the camera position at this station.
	Position [3]float32

	// Target is the camera look-at point at this station.
	Target [3]float32

	// Hold is how long the camera parks at the station, in seconds.
	Hold float32

	// Transition is how long the ease toward the station takes, in seconds.
	Transition float32
}

// Pose returns the waypoint's camera pose.
func (w Waypoint) Pose() Pose {
	return Pose{Position: w.Position, Target: w.Target}
}

// Controller is the tour state machine. All state is mutated only by Tick
// and the explicit Start/Stop/Skip commands, under one exclusive lock.
type Controller interface {
	// Start begins playback over the given waypoints from the current pose.
	// A single-waypoint tour enters Holding directly; there is nothing to
	// interpolate from on resumption. While the tour is active, free-orbit
	// input is reported as disabled.
	//
	// Parameters:
	//   - waypoints: the ordered tour stations
	//
	// Returns:
	//   - error: ErrEmptyWaypoints if the list is empty (state unchanged)
	Start(waypoints []Waypoint) error

	// Tick advances the tour by deltaSeconds and returns the camera pose.
	// Zero or negative deltas are treated as no-ops, never as backward
	// interpolation.
	//
	// Parameters:
	//   - deltaSeconds: elapsed time since the previous tick
	//
	// Returns:
	//   - Pose: the camera pose after advancing
	Tick(deltaSeconds float32) Pose

	// Stop halts playback from any phase, re-enabling free orbit without
	// altering the last computed camera pose (no snap-back).
	Stop()

	// Skip force-advances to the next waypoint, with the same effect as the
	// current hold expiring naturally. No-op when the tour is not active.
	Skip()

	// Phase returns the current state machine phase.
	//
	// Returns:
	//   - Phase: the current phase
	Phase() Phase

	// Active reports whether a tour is playing.
	//
	// Returns:
	//   - bool: true while playback owns the camera
	Active() bool

	// FreeOrbitEnabled reports whether free-orbit camera input may run.
	// False exactly while the tour is active.
	//
	// Returns:
	//   - bool: true when the user owns the camera
	FreeOrbitEnabled() bool

	// Pose returns the last computed camera pose without advancing time.
	//
	// Returns:
	//   - Pose: the current pose
	Pose() Pose

	// SetPose informs the controller of the externally-controlled camera
	// pose. Used while idle so Start can ease out from wherever the free
	// camera left off. Ignored during playback.
	//
	// Parameters:
	//   - pose: the current free-camera pose
	SetPose(pose Pose)

	// CurrentWaypoint returns the waypoint the tour is moving toward or
	// holding at, and whether one exists.
	//
	// Returns:
	//   - Waypoint: the current waypoint
	//   - bool: false when no tour is loaded
	CurrentWaypoint() (Waypoint, bool)
}

// controller is the implementation of the Controller interface.
type controller struct {
	mu *sync.Mutex

	waypoints []Waypoint
	index     int
	phase     Phase
	elapsed   float32
	active    bool

	origin Pose // pose the current transition eases out from
	pose   Pose // last computed pose
}

var _ Controller = &controller{}

// NewController creates an idle tour controller.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(options ...ControllerOption) Controller {
	c := &controller{
		mu:    &sync.Mutex{},
		phase: Idle,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *controller) Start(waypoints []Waypoint) error {
	if len(waypoints) == 0 {
		return ErrEmptyWaypoints
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.waypoints = waypoints
	c.index = 0
	c.elapsed = 0
	c.active = true
	c.origin = c.pose

	if len(waypoints) == 1 {
		c.phase = Holding
		c.pose = waypoints[0].Pose()
	} else {
		c.phase = Transitioning
	}
	return nil
}

func (c *controller) Tick(deltaSeconds float32) Pose {
	c.mu.Lock()
	defer c.mu.Unlock()

	if deltaSeconds < 0 {
		deltaSeconds = 0
	}
	if !c.active {
		return c.pose
	}

	c.elapsed += deltaSeconds
	wp := c.waypoints[c.index]

	switch c.phase {
	case Transitioning:
		if wp.Transition <= 0 || c.elapsed >= wp.Transition {
			c.pose = wp.Pose()
			c.phase = Holding
			c.elapsed = 0
			break
		}
		t := smoothStep(c.elapsed / wp.Transition)
		c.pose = Pose{
			Position: lerp3(c.origin.Position, wp.Position, t),
			Target:   lerp3(c.origin.Target, wp.Target, t),
		}
	case Holding:
		c.pose = wp.Pose()
		if c.elapsed >= wp.Hold {
			c.advanceLocked()
		}
	}

	return c.pose
}

func (c *controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = Idle
	c.active = false
	c.elapsed = 0
}

func (c *controller) Skip() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}
	c.advanceLocked()
}

func (c *controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *controller) FreeOrbitEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.active
}

func (c *controller) Pose() Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose
}

func (c *controller) SetPose(pose Pose) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active {
		return
	}
	c.pose = pose
}

func (c *controller) CurrentWaypoint() (Waypoint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.waypoints) == 0 || c.index >= len(c.waypoints) {
		return Waypoint{}, false
	}
	return c.waypoints[c.index], true
}

// advanceLocked moves to the next waypoint or finishes the tour, exactly as
// a natural hold expiry would. Eases out from the last computed pose, so
// skipping mid-transition never snaps the camera. Caller must hold the mutex.
func (c *controller) advanceLocked() {
	if c.index >= len(c.waypoints)-1 {
		c.phase = Finished
		c.active = false
		c.elapsed = 0
		return
	}
	c.index++
	c.origin = c.pose
	c.phase = Transitioning
	c.elapsed = 0
}

// smoothStep is the ease-in-out curve 3t² − 2t³ on [0, 1]. Linear
// interpolation would put visible velocity discontinuities at waypoint
// boundaries.
func smoothStep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

// lerp3 linearly interpolates between two points component-wise.
func lerp3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

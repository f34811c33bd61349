package camera

// CameraController owns the camera's positional state. Orbit methods modify
// spherical coordinates relative to the target; pan methods translate both
// position and target along local camera axes, preserving the orbit
// relationship. SetPose drives the controller from an external animation
// (the guided tour) and resynchronizes the spherical coordinates so orbit
// input resumes seamlessly from wherever the tour left the camera.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget sets the look-at/pivot point and recomputes position from
	// spherical coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// SetPose sets position and target together and rederives the spherical
	// coordinates (radius, azimuth, elevation) from them.
	//
	// Parameters:
	//   - px, py, pz: world-space camera position
	//   - tx, ty, tz: world-space target position
	SetPose(px, py, pz, tx, ty, tz float32)

	// Zoom adjusts the camera's distance by modifying orbit radius.
	// Positive delta zooms in (closer to target).
	//
	// Parameters:
	//   - delta: zoom amount scaled by the configured zoom speed
	Zoom(delta float32)

	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step, clamped to max elevation.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step, clamped to min elevation.
	OrbitDown()

	// PanRight translates position and target along the camera's right axis.
	//
	// Parameters:
	//   - delta: pan amount scaled by the configured pan speed
	PanRight(delta float32)

	// PanUp translates position and target along the camera's up axis.
	//
	// Parameters:
	//   - delta: pan amount scaled by the configured pan speed
	PanUp(delta float32)

	// PanForward translates position and target along the camera's forward axis.
	//
	// Parameters:
	//   - delta: pan amount scaled by the configured pan speed
	PanForward(delta float32)

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// Azimuth returns the current horizontal orbit angle.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Elevation returns the current vertical orbit angle.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32
}

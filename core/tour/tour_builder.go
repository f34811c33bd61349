package tour

// ControllerOption is a functional option for configuring a tour Controller.
// Use the With* functions to create options applied during construction.
type ControllerOption func(*controller)

// WithInitialPose sets the pose the first transition eases out from, before
// any SetPose call has been made.
//
// Parameters:
//   - pose: the starting camera pose
//
// Returns:
//   - ControllerOption: option function to apply
func WithInitialPose(pose Pose) ControllerOption {
	return func(c *controller) {
		c.pose = pose
		c.origin = pose
	}
}

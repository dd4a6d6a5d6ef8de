package component

type Camera struct {
	TargetName string
	Zoom       float64
	// Smoothness is the per-tick lerp factor toward the target; 0 or 1 snaps.
	Smoothness float64
}

var CameraComponent = NewComponent[Camera]()

package component

// Transform is a world-space pose. World space is Y-up; the renderer flips
// it onto the screen.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64

	// PrevX and PrevY hold the position before the last physics step, for
	// render interpolation.
	PrevX float64
	PrevY float64
}

var TransformComponent = NewComponent[Transform]()

package component

// Input mirrors the most recent movement input sampled for an entity.
type Input struct {
	MoveX   float64
	MoveY   float64
	Gamepad bool
}

var InputComponent = NewComponent[Input]()

package component

import "github.com/milk9111/topdown/movement"

// Movement attaches a keyboard movement controller to an entity. The
// controller is shared with the settings menu, so it is held by pointer.
type Movement struct {
	Controller *movement.Controller
}

var MovementComponent = NewComponent[Movement]()

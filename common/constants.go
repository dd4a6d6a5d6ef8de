package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit converts world units to screen pixels at zoom 1.
	PixelsPerUnit = 32.0

	DefaultTPS       = 60
	DefaultPhysicsHz = 50

	// Gravity is zero for a top-down world.
	Gravity = 0.0
)

package component

// GravityScale multiplies the space gravity for one dynamic body. Movers run
// at 0 so a non-zero world gravity never drags them.
type GravityScale struct {
	Scale float64
}

var GravityScaleComponent = NewComponent[GravityScale]()

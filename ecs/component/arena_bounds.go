package component

// ArenaBounds is the walled play area. The physics system turns it into
// static segments once.
type ArenaBounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func (b ArenaBounds) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

var ArenaBoundsComponent = NewComponent[ArenaBounds]()

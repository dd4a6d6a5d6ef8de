package movement

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/common"
)

// Bounds is an axis-aligned rectangle with Min <= Max on both axes.
type Bounds struct {
	Min cp.Vector
	Max cp.Vector
}

// NewBounds orders the corners per axis.
func NewBounds(a, b cp.Vector) Bounds {
	return Bounds{
		Min: cp.Vector{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: cp.Vector{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

func DefaultBounds() Bounds {
	return Bounds{Min: cp.Vector{X: -10, Y: -10}, Max: cp.Vector{X: 10, Y: 10}}
}

func (b Bounds) Clamp(p cp.Vector) cp.Vector {
	return cp.Vector{
		X: common.Clamp(p.X, b.Min.X, b.Max.X),
		Y: common.Clamp(p.Y, b.Min.Y, b.Max.Y),
	}
}

func (b Bounds) Contains(p cp.Vector) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

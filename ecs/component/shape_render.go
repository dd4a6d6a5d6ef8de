package component

import "image/color"

// ShapeRender draws an entity as a filled rectangle (or circle when Radius
// is set) centered on its transform, in world units.
type ShapeRender struct {
	Width  float64
	Height float64
	Radius float64
	Color  color.Color
	Layer  int
}

var ShapeRenderComponent = NewComponent[ShapeRender]()

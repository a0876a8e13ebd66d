package geometry

// Location is the region an element is asked to draw into. Elements see
// their ancestors only through the Location they are handed.
type Location struct {
	Rect Rect
}

// At returns a Location covering r.
func At(r Rect) Location {
	return Location{Rect: r}
}

// Subrect maps frac, a rectangle in the location's normalized space where
// (0,0)-(1,1) covers the whole location, to a nested Location.
func (l Location) Subrect(frac Rect) Location {
	size := l.Rect.Size
	return Location{Rect: Rect{
		Origin: Offset{
			X: l.Rect.Origin.X + frac.Origin.X*size.Width,
			Y: l.Rect.Origin.Y + frac.Origin.Y*size.Height,
		},
		Size: Size{
			Width:  frac.Size.Width * size.Width,
			Height: frac.Size.Height * size.Height,
		},
	}}
}

// Size returns the location's size.
func (l Location) Size() Size {
	return l.Rect.Size
}

func (l Location) String() string {
	return l.Rect.String()
}

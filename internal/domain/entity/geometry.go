package entity

// Rect is a sash's box in pixels, relative to the layout container.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom()
}

// Point is a pointer coordinate in the same space as Rect.
type Point struct {
	X, Y float64
}

// Box is the observed content box of the layout container.
type Box struct {
	Left, Top     float64
	Width, Height float64
}

// Rect converts the box to a root rectangle.
func (b Box) Rect() Rect {
	return Rect{Left: b.Left, Top: b.Top, Width: b.Width, Height: b.Height}
}

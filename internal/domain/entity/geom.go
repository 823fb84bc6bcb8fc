package entity

import "math"

// Vec2 is a 2D vector in world pixels
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Neg returns -v
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

// LenSq returns the squared length
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Len returns the length
func (v Vec2) Len() float64 { return math.Sqrt(v.LenSq()) }

// IsZero reports whether both components are zero
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Normalize returns the unit vector of v, or the zero vector if v has no length
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// DistSq returns the squared distance between v and o
func (v Vec2) DistSq(o Vec2) float64 { return v.Sub(o).LenSq() }

// Dist returns the distance between v and o
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Rect is an axis-aligned rectangle in world pixels (X, Y is the top-left corner)
type Rect struct {
	X, Y, W, H float64
}

// RectAround returns a w*h rect centered on c
func RectAround(c Vec2, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// Center returns the center point of the rect
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

// Right returns the exclusive right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the exclusive bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Overlaps reports whether r and o share any interior area
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Translate returns r moved by d
func (r Rect) Translate(d Vec2) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

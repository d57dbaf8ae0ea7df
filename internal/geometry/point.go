package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// Epsilon is the absolute tolerance applied by every circle containment test.
// It absorbs rounding in circumcenter and distance computations so that
// points lying on a circle are not rejected.
const Epsilon = 1e-9

// Point is an immutable 2D coordinate.
type Point = r2.Point

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Cross returns the cross product of the vectors o→a and o→b.
// Positive means o→a→b turns left, zero means the three points are collinear.
func Cross(o, a, b Point) float64 {
	return a.Sub(o).Cross(b.Sub(o))
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Less orders points lexicographically: by X, then by Y.
func Less(a, b Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

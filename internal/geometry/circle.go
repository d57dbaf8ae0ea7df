package geometry

// Circle is an immutable circle. Radius is never negative.
type Circle struct {
	Center Point
	Radius float64
}

// Contains reports whether p lies inside or on c, within Epsilon.
func (c Circle) Contains(p Point) bool {
	return Distance(c.Center, p) <= c.Radius+Epsilon
}

// ContainsAll reports whether every point in points is contained in c.
func (c Circle) ContainsAll(points []Point) bool {
	for _, p := range points {
		if !c.Contains(p) {
			return false
		}
	}
	return true
}

// Diameter returns the circle whose diameter is the segment a–b.
func Diameter(a, b Point) Circle {
	return Circle{
		Center: Midpoint(a, b),
		Radius: Distance(a, b) / 2,
	}
}

// Circumcircle returns the circle passing through a, b and c.
// The second result is false when the three points are collinear, in which
// case no such circle exists.
//
// The determinant formula is evaluated relative to a so that large absolute
// coordinates do not swamp the result in rounding error:
//
//	d  = 2 (bx·cy − by·cx)
//	ux = (|b|²·cy − |c|²·by) / d
//	uy = (|c|²·bx − |b|²·cx) / d
func Circumcircle(a, b, c Point) (Circle, bool) {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y

	d := 2 * (bx*cy - by*cx)
	if d == 0 {
		return Circle{}, false
	}

	bn := bx*bx + by*by
	cn := cx*cx + cy*cy
	center := Point{
		X: a.X + (bn*cy-cn*by)/d,
		Y: a.Y + (cn*bx-bn*cx)/d,
	}
	return Circle{Center: center, Radius: Distance(center, a)}, true
}

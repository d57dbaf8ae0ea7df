package geometry

import "math/rand/v2"

// Enclose returns the smallest circle containing every point.
//
// The second result is false only when points is empty; a single point
// yields a zero-radius circle centered on it. Points are processed in a
// uniformly random order drawn from the process-wide generator, which gives
// expected O(n) running time for any input arrangement. The result does not
// depend on that order beyond floating-point rounding.
func Enclose(points []Point) (Circle, bool) {
	return EncloseRand(points, nil)
}

// EncloseRand is Enclose with an explicit random source, for reproducible
// runs. A nil rng uses the process-wide generator. rng must produce uniform
// permutations for the expected-linear bound to hold.
func EncloseRand(points []Point, rng *rand.Rand) (Circle, bool) {
	if len(points) == 0 {
		return Circle{}, false
	}

	shuffled := append([]Point(nil), points...)
	swap := func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] }
	if rng != nil {
		rng.Shuffle(len(shuffled), swap)
	} else {
		rand.Shuffle(len(shuffled), swap)
	}

	var c Circle
	found := false
	for i, p := range shuffled {
		if !found || !c.Contains(p) {
			// p was outside the optimum for shuffled[:i], so it lies on the
			// boundary of the optimum for shuffled[:i+1].
			c = encloseWithOnePoint(shuffled[:i+1], p)
			found = true
		}
	}
	return c, true
}

// encloseWithOnePoint returns the smallest circle containing points that has
// p on its boundary.
func encloseWithOnePoint(points []Point, p Point) Circle {
	c := Circle{Center: p}
	for i, q := range points {
		if c.Contains(q) {
			continue
		}
		if c.Radius == 0 {
			c = Diameter(p, q)
		} else {
			c = encloseWithTwoPoints(points[:i+1], p, q)
		}
	}
	return c
}

// encloseWithTwoPoints returns the smallest circle containing points that has
// both p and q on its boundary.
//
// Every such circle has its center on the perpendicular bisector of p–q.
// Points outside the diameter circle that lie left of p→q push the center
// left, points on the right push it right; the tightest constraint on each
// side is the circumcircle whose center is furthest in that direction.
func encloseWithTwoPoints(points []Point, p, q Point) Circle {
	diameter := Diameter(p, q)
	if diameter.ContainsAll(points) {
		return diameter
	}

	pq := q.Sub(p)
	var left, right Circle
	var hasLeft, hasRight bool
	for _, r := range points {
		if diameter.Contains(r) {
			continue
		}

		side := pq.Cross(r.Sub(p))
		c, ok := Circumcircle(p, q, r)
		if !ok {
			continue
		}

		offset := pq.Cross(c.Center.Sub(p))
		switch {
		case side > 0 && (!hasLeft || offset > pq.Cross(left.Center.Sub(p))):
			left, hasLeft = c, true
		case side < 0 && (!hasRight || offset < pq.Cross(right.Center.Sub(p))):
			right, hasRight = c, true
		}
	}

	switch {
	case !hasLeft && !hasRight:
		return diameter
	case !hasLeft:
		return right
	case !hasRight:
		return left
	case left.Radius <= right.Radius:
		return left
	default:
		return right
	}
}

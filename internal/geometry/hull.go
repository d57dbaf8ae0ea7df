package geometry

import "sort"

// ConvexHull returns the vertices of the convex hull of points using Andrew's
// monotone chain algorithm.
//
// The result is counter-clockwise (y-up), starts at the lexicographically
// smallest point, and contains no duplicate or collinear vertices. Inputs of
// zero or one point are returned as a copy. If every point is collinear the
// hull is the two extreme points; if every point is identical it is that
// single point. The input slice is never modified.
//
// Complexity: O(n log n) for the sort, O(n) for the two sweeps.
func ConvexHull(points []Point) []Point {
	if len(points) <= 1 {
		return append([]Point(nil), points...)
	}

	sorted := append([]Point(nil), points...)
	sort.Slice(sorted, func(i, j int) bool {
		return Less(sorted[i], sorted[j])
	})

	// Lower hull, left to right
	lower := make([]Point, 0, len(sorted))
	for _, p := range sorted {
		for len(lower) >= 2 && Cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	// Upper hull, right to left
	upper := make([]Point, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		p := sorted[i]
		for len(upper) >= 2 && Cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// The last point of each chain is the first point of the other.
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)

	// Only happens when every input point is the same.
	if len(hull) == 2 && hull[0] == hull[1] {
		hull = hull[:1]
	}
	return hull
}

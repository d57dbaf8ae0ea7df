package geometry_test

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/ironsheep/optical-center-mcp/internal/geometry"
	"github.com/stretchr/testify/require"
)

// randomPoints returns n integer-valued points in [0, span) drawn from a
// seeded generator, mimicking pixel coordinates.
func randomPoints(seed uint64, n, span int) []geometry.Point {
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))
	pts := make([]geometry.Point, n)
	for i := range pts {
		pts[i] = geometry.Pt(float64(rng.IntN(span)), float64(rng.IntN(span)))
	}
	return pts
}

// insideOrOn reports whether p lies inside or on the counter-clockwise polygon.
func insideOrOn(poly []geometry.Point, p geometry.Point) bool {
	if len(poly) == 1 {
		return poly[0] == p
	}
	if len(poly) == 2 {
		return geometry.Cross(poly[0], poly[1], p) == 0 &&
			p.X >= min(poly[0].X, poly[1].X) && p.X <= max(poly[0].X, poly[1].X) &&
			p.Y >= min(poly[0].Y, poly[1].Y) && p.Y <= max(poly[0].Y, poly[1].Y)
	}
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		if geometry.Cross(a, b, p) < -geometry.Epsilon {
			return false
		}
	}
	return true
}

func sortedCopy(pts []geometry.Point) []geometry.Point {
	out := append([]geometry.Point(nil), pts...)
	sort.Slice(out, func(i, j int) bool { return geometry.Less(out[i], out[j]) })
	return out
}

func TestConvexHull_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		points []geometry.Point
		want   []geometry.Point
	}{
		{
			name:   "empty",
			points: nil,
			want:   nil,
		},
		{
			name:   "single point",
			points: []geometry.Point{geometry.Pt(3, 3)},
			want:   []geometry.Point{geometry.Pt(3, 3)},
		},
		{
			name: "square with interior point",
			points: []geometry.Point{
				geometry.Pt(0, 0), geometry.Pt(4, 0), geometry.Pt(4, 4), geometry.Pt(0, 4), geometry.Pt(2, 2),
			},
			want: []geometry.Point{
				geometry.Pt(0, 0), geometry.Pt(4, 0), geometry.Pt(4, 4), geometry.Pt(0, 4),
			},
		},
		{
			name: "collinear points keep extremes",
			points: []geometry.Point{
				geometry.Pt(2, 2), geometry.Pt(0, 0), geometry.Pt(3, 3), geometry.Pt(1, 1),
			},
			want: []geometry.Point{geometry.Pt(0, 0), geometry.Pt(3, 3)},
		},
		{
			name: "vertical line",
			points: []geometry.Point{
				geometry.Pt(5, 9), geometry.Pt(5, 1), geometry.Pt(5, 4),
			},
			want: []geometry.Point{geometry.Pt(5, 1), geometry.Pt(5, 9)},
		},
		{
			name: "identical points collapse",
			points: []geometry.Point{
				geometry.Pt(7, 7), geometry.Pt(7, 7), geometry.Pt(7, 7),
			},
			want: []geometry.Point{geometry.Pt(7, 7)},
		},
		{
			name: "duplicates and edge midpoints dropped",
			points: []geometry.Point{
				geometry.Pt(0, 0), geometry.Pt(0, 0), geometry.Pt(2, 0), geometry.Pt(4, 0),
				geometry.Pt(4, 4), geometry.Pt(4, 4), geometry.Pt(0, 4), geometry.Pt(0, 2),
			},
			want: []geometry.Point{
				geometry.Pt(0, 0), geometry.Pt(4, 0), geometry.Pt(4, 4), geometry.Pt(0, 4),
			},
		},
		{
			name:   "two points",
			points: []geometry.Point{geometry.Pt(10, 0), geometry.Pt(0, 0)},
			want:   []geometry.Point{geometry.Pt(0, 0), geometry.Pt(10, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := geometry.ConvexHull(tt.points)
			require.Equal(t, len(tt.want), len(got))
			for i := range tt.want {
				require.Equal(t, tt.want[i], got[i], "vertex %d", i)
			}
		})
	}
}

func TestConvexHull_DoesNotMutateInput(t *testing.T) {
	pts := []geometry.Point{geometry.Pt(4, 4), geometry.Pt(0, 0), geometry.Pt(4, 0), geometry.Pt(2, 2)}
	orig := append([]geometry.Point(nil), pts...)

	_ = geometry.ConvexHull(pts)
	require.Equal(t, orig, pts)
}

func TestConvexHull_Properties(t *testing.T) {
	for seed := uint64(1); seed <= 40; seed++ {
		pts := randomPoints(seed, 5+int(seed)*7, 50)
		hull := geometry.ConvexHull(pts)
		require.GreaterOrEqual(t, len(hull), 3, "seed %d", seed)

		// Starts at the lexicographically smallest input point.
		require.Equal(t, sortedCopy(pts)[0], hull[0], "seed %d", seed)

		// Strictly convex, counter-clockwise.
		n := len(hull)
		for i := range hull {
			c := geometry.Cross(hull[i], hull[(i+1)%n], hull[(i+2)%n])
			require.Greater(t, c, 0.0, "seed %d: triple at %d not a left turn", seed, i)
		}

		// Every input point inside or on the hull.
		for _, p := range pts {
			require.True(t, insideOrOn(hull, p), "seed %d: %v outside hull", seed, p)
		}

		// Removing any vertex leaves that vertex outside the remaining polygon.
		for i := range hull {
			prev, next := hull[(i+n-1)%n], hull[(i+1)%n]
			require.Less(t, geometry.Cross(prev, next, hull[i]), 0.0, "seed %d: vertex %d redundant", seed, i)
		}
	}
}

func TestConvexHull_Idempotent(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		pts := randomPoints(seed, 60, 100)
		once := geometry.ConvexHull(pts)
		twice := geometry.ConvexHull(once)
		require.ElementsMatch(t, once, twice, "seed %d", seed)
	}
}

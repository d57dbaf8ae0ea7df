package optical

import (
	"errors"
	"image"

	"github.com/ctessum/geom"

	"github.com/ironsheep/optical-center-mcp/internal/geometry"
	"github.com/ironsheep/optical-center-mcp/internal/imaging"
)

// ErrNoOpaquePixels is returned by Analyze when no pixel passes the alpha
// threshold, so there is nothing to enclose.
var ErrNoOpaquePixels = errors.New("image has no opaque pixels")

// Options controls the opaque-pixel extraction stage.
type Options struct {
	// AlphaThreshold is the alpha value a pixel must exceed to be opaque.
	AlphaThreshold uint8

	// BoundaryOnly scans only the outline of the opaque region. The result
	// is identical; only OpaquePixels changes.
	BoundaryOnly bool
}

// Coord is a JSON-friendly point.
type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CircleResult is a JSON-friendly circle.
type CircleResult struct {
	Center Coord   `json:"center"`
	Radius float64 `json:"radius"`
}

// Geometry is the output of the geometric stages.
type Geometry struct {
	// Hull lists the convex hull vertices, starting at the smallest (x, y).
	Hull []Coord `json:"hull"`

	// HullArea is the area enclosed by Hull in square pixels. Zero for
	// hulls with fewer than three vertices.
	HullArea float64 `json:"hull_area"`

	// HullCentroid is the hull's center of mass. Nil when HullArea is zero.
	HullCentroid *Coord `json:"hull_centroid,omitempty"`

	// Circle is the smallest circle enclosing every input point.
	Circle CircleResult `json:"circle"`
}

// Result describes the optical center of an image.
type Result struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// OpaquePixels is the number of points handed to the hull stage.
	OpaquePixels int `json:"opaque_pixels"`

	Geometry

	// CanvasCenter is the geometric center of the image.
	CanvasCenter Coord `json:"canvas_center"`

	// Offset is Circle.Center minus CanvasCenter. Translating the artwork by
	// -Offset puts its optical center on the canvas center.
	Offset Coord `json:"offset"`
}

// Analyze finds the optical center of img.
func Analyze(img image.Image, opts Options) (*Result, error) {
	points := imaging.OpaquePoints(img, imaging.OpaqueOptions{
		AlphaThreshold: opts.AlphaThreshold,
		BoundaryOnly:   opts.BoundaryOnly,
	})
	if len(points) == 0 {
		return nil, ErrNoOpaquePixels
	}

	g, ok := AnalyzePoints(points)
	if !ok {
		return nil, ErrNoOpaquePixels
	}

	bounds := img.Bounds()
	// Pixel (x, y) covers [x, x+1); the canvas center in the same
	// index space is half a pixel short of width/2.
	canvas := Coord{
		X: float64(bounds.Dx()-1) / 2,
		Y: float64(bounds.Dy()-1) / 2,
	}

	return &Result{
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		OpaquePixels: len(points),
		Geometry:     *g,
		CanvasCenter: canvas,
		Offset: Coord{
			X: g.Circle.Center.X - canvas.X,
			Y: g.Circle.Center.Y - canvas.Y,
		},
	}, nil
}

// AnalyzePoints runs the hull and enclosing-circle stages on raw points.
// The second result is false for empty input.
func AnalyzePoints(points []geometry.Point) (*Geometry, bool) {
	hull := geometry.ConvexHull(points)
	circle, ok := geometry.Enclose(hull)
	if !ok {
		return nil, false
	}

	g := &Geometry{
		Hull:   ToCoords(hull),
		Circle: ToCircleResult(circle),
	}

	if len(hull) >= 3 {
		ring := make([]geom.Point, len(hull))
		for i, p := range hull {
			ring[i] = geom.Point{X: p.X, Y: p.Y}
		}
		poly := geom.Polygon{ring}
		g.HullArea = poly.Area()
		if g.HullArea > 0 {
			c := poly.Centroid()
			g.HullCentroid = &Coord{X: c.X, Y: c.Y}
		}
	}

	return g, true
}

// ToCoords converts kernel points to their JSON form.
func ToCoords(points []geometry.Point) []Coord {
	out := make([]Coord, len(points))
	for i, p := range points {
		out[i] = Coord{X: p.X, Y: p.Y}
	}
	return out
}

// ToCircleResult converts a kernel circle to its JSON form.
func ToCircleResult(c geometry.Circle) CircleResult {
	return CircleResult{
		Center: Coord{X: c.Center.X, Y: c.Center.Y},
		Radius: c.Radius,
	}
}

// Circle converts r back to a kernel circle.
func (r CircleResult) Circle() geometry.Circle {
	return geometry.Circle{
		Center: geometry.Pt(r.Center.X, r.Center.Y),
		Radius: r.Radius,
	}
}

// Points converts coords back to kernel points.
func Points(coords []Coord) []geometry.Point {
	out := make([]geometry.Point, len(coords))
	for i, c := range coords {
		out[i] = geometry.Pt(c.X, c.Y)
	}
	return out
}

package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/optical-center-mcp/internal/geometry"
)

// OpaqueOptions controls which pixels OpaquePoints reports.
type OpaqueOptions struct {
	// AlphaThreshold is the alpha value (0-255) a pixel must exceed to count
	// as opaque. The zero value keeps every pixel that is not fully
	// transparent.
	AlphaThreshold uint8

	// BoundaryOnly drops opaque pixels whose four neighbours are all opaque.
	// Every convex hull vertex is a boundary pixel, so the hull and enclosing
	// circle are unchanged while the point set shrinks dramatically for
	// solid artwork.
	BoundaryOnly bool
}

// OpaquePoints returns the coordinates of the opaque pixels of img.
//
// Coordinates are 0-based pixel column and row relative to the image's
// top-left corner, returned in row-major order. Rows are scanned in
// parallel; the output order does not depend on scheduling.
//
// Images without an alpha channel are fully opaque and return every pixel
// (or every edge pixel with BoundaryOnly).
func OpaquePoints(img image.Image, opts OpaqueOptions) []geometry.Point {
	rgba := clone.AsShallowRGBA(img)
	bounds := rgba.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	opaque := func(x, y int) bool {
		if x < 0 || y < 0 || x >= width || y >= height {
			return false
		}
		// Premultiplication never changes the alpha byte itself.
		return rgba.Pix[rgba.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)+3] > opts.AlphaThreshold
	}

	rows := make([][]geometry.Point, height)
	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			var row []geometry.Point
			for x := 0; x < width; x++ {
				if !opaque(x, y) {
					continue
				}
				if opts.BoundaryOnly && opaque(x-1, y) && opaque(x+1, y) && opaque(x, y-1) && opaque(x, y+1) {
					continue
				}
				row = append(row, geometry.Pt(float64(x), float64(y)))
			}
			rows[y] = row
		}
	})

	total := 0
	for _, row := range rows {
		total += len(row)
	}
	points := make([]geometry.Point, 0, total)
	for _, row := range rows {
		points = append(points, row...)
	}
	return points
}

package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/optical-center-mcp/internal/geometry"
)

// Default overlay colors.
const (
	DefaultPathColor   = "#00C8FFFF"
	DefaultCircleColor = "#FF0000FF"
)

// OverlaySpec describes what RenderOverlay draws on top of an image.
type OverlaySpec struct {
	// Path is drawn as a closed polyline, typically the convex hull.
	// Paths with fewer than two points are skipped.
	Path []geometry.Point

	// Circle is drawn as an outline with a cross at its center.
	// Nil skips the circle.
	Circle *geometry.Circle

	// PathColor and CircleColor are "#RRGGBB" or "#RRGGBBAA".
	// Empty strings select DefaultPathColor and DefaultCircleColor.
	PathColor   string
	CircleColor string

	// ShowLabel writes the circle center coordinates next to the cross.
	ShowLabel bool

	// Scale resizes the result (e.g. 2.0 doubles it). Values <= 0 mean 1.
	Scale float64
}

// OverlayResult contains the rendered overlay encoded as base64 PNG.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// DrawOverlay returns a copy of img with the path and circle of spec drawn on
// it. The source image is not modified.
//
// Geometry is in the coordinate space produced by OpaquePoints: 0-based
// pixels from the top-left corner of img. Scaling happens after drawing so
// lines stay one source pixel wide.
func DrawOverlay(img image.Image, spec OverlaySpec) (*image.NRGBA, error) {
	pathColor, err := parseHexColor(orDefault(spec.PathColor, DefaultPathColor))
	if err != nil {
		return nil, fmt.Errorf("invalid path color: %w", err)
	}
	circleColor, err := parseHexColor(orDefault(spec.CircleColor, DefaultCircleColor))
	if err != nil {
		return nil, fmt.Errorf("invalid circle color: %w", err)
	}

	result := imaging.Clone(img)

	if len(spec.Path) >= 2 {
		for i := range spec.Path {
			drawLine(result, spec.Path[i], spec.Path[(i+1)%len(spec.Path)], pathColor)
		}
	}

	if spec.Circle != nil {
		c := *spec.Circle
		drawCircle(result, c, circleColor)

		const arm = 4
		drawLine(result, geometry.Pt(c.Center.X-arm, c.Center.Y), geometry.Pt(c.Center.X+arm, c.Center.Y), circleColor)
		drawLine(result, geometry.Pt(c.Center.X, c.Center.Y-arm), geometry.Pt(c.Center.X, c.Center.Y+arm), circleColor)

		if spec.ShowLabel {
			label := fmt.Sprintf("%.1f,%.1f", c.Center.X, c.Center.Y)
			drawLabel(result, int(math.Round(c.Center.X))+arm+2, int(math.Round(c.Center.Y))+arm+2,
				label, color.NRGBA{255, 255, 255, 255}, color.NRGBA{0, 0, 0, 180})
		}
	}

	if spec.Scale > 0 && spec.Scale != 1.0 {
		newWidth := int(float64(result.Bounds().Dx()) * spec.Scale)
		newHeight := int(float64(result.Bounds().Dy()) * spec.Scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %.3f shrinks image to nothing", spec.Scale)
		}
		result = imaging.Resize(result, newWidth, newHeight, imaging.Lanczos)
	}

	return result, nil
}

// RenderOverlay draws spec on img and returns the result as base64 PNG.
func RenderOverlay(img image.Image, spec OverlaySpec) (*OverlayResult, error) {
	result, err := DrawOverlay(img, spec)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, result); err != nil {
		return nil, fmt.Errorf("failed to encode overlay image: %w", err)
	}

	return &OverlayResult{
		Width:       result.Bounds().Dx(),
		Height:      result.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SaveOverlay draws spec on img and writes it to path. The format follows
// the file extension (png, jpg, gif, tif, bmp).
func SaveOverlay(img image.Image, spec OverlaySpec, path string) error {
	result, err := DrawOverlay(img, spec)
	if err != nil {
		return err
	}
	if err := imaging.Save(result, path); err != nil {
		return fmt.Errorf("failed to save overlay: %w", err)
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.NRGBA, error) {
	s := strings.TrimPrefix(hex, "#")

	a := uint8(255)
	switch len(s) {
	case 6:
	case 8:
		val, err := strconv.ParseUint(s[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid alpha in %q: %w", hex, err)
		}
		a = uint8(val)
		s = s[:6]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length: %q", hex)
	}

	c, err := colorful.Hex("#" + s)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// setPixel writes c at (x, y) if it falls inside img.
func setPixel(img *image.NRGBA, x, y int, c color.NRGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetNRGBA(x, y, c)
	}
}

// drawLine plots the segment a–b one pixel wide, stepping along the longer axis.
func drawLine(img *image.NRGBA, a, b geometry.Point, c color.NRGBA) {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		setPixel(img, int(math.Round(a.X)), int(math.Round(a.Y)), c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		setPixel(img, int(math.Round(a.X+t*dx)), int(math.Round(a.Y+t*dy)), c)
	}
}

// drawCircle plots the outline of circle with roughly two samples per pixel
// of circumference.
func drawCircle(img *image.NRGBA, circle geometry.Circle, c color.NRGBA) {
	steps := int(math.Ceil(4 * math.Pi * circle.Radius))
	if steps < 16 {
		steps = 16
	}
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		x := circle.Center.X + circle.Radius*math.Cos(theta)
		y := circle.Center.Y + circle.Radius*math.Sin(theta)
		setPixel(img, int(math.Round(x)), int(math.Round(y)), c)
	}
}

// drawLabel draws a simple text label at the given position using a 3x5
// pixel font that covers digits and the characters ",.-".
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
		',': {"000", "000", "000", "010", "010"},
		'.': {"000", "000", "000", "000", "010"},
		'-': {"000", "000", "111", "000", "000"},
	}

	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			setPixel(img, x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					setPixel(img, cx+col, y+row, fg)
				}
			}
		}
		cx += charWidth
	}
}

package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/optical-center-mcp/internal/geometry"
)

// CropResult contains the cropped image data
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	OffsetX     int    `json:"offset_x"`
	OffsetY     int    `json:"offset_y"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RecenterCrop cuts the square that circumscribes circle, grown by padding
// pixels on every side, so the circle center lands in the middle of the
// output. Parts of the square outside img are transparent.
//
// OffsetX and OffsetY give the source position of the output's top-left
// pixel (possibly negative). A positive scale resizes the result.
func RecenterCrop(img image.Image, circle geometry.Circle, padding int, scale float64) (*CropResult, error) {
	if padding < 0 {
		return nil, fmt.Errorf("invalid padding %d: must be >= 0", padding)
	}

	half := int(math.Ceil(circle.Radius)) + padding
	side := 2*half + 1
	x1 := int(math.Round(circle.Center.X)) - half
	y1 := int(math.Round(circle.Center.Y)) - half

	bounds := img.Bounds()
	src := imaging.Clone(img)
	dst := imaging.New(side, side, color.Transparent)
	// src is rebased to (0,0), so paste at the negated crop origin.
	dst = imaging.Paste(dst, src, image.Pt(-x1, -y1))

	var out image.Image = dst
	if scale != 1.0 && scale > 0 {
		n := int(float64(side) * scale)
		if n < 1 {
			return nil, fmt.Errorf("scale %.3f shrinks crop to nothing", scale)
		}
		out = imaging.Resize(dst, n, n, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		OffsetX:     x1 + bounds.Min.X,
		OffsetY:     y1 + bounds.Min.Y,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Package imaging is the pixel side of the optical-center pipeline.
//
// It loads and caches images, turns their alpha channel into the point set
// consumed by the geometry kernel (OpaquePoints), and draws results back on
// top of the source image (DrawOverlay, RenderOverlay, RecenterCrop).
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// Points returned by OpaquePoints are relative to the image's top-left
// corner even when its bounds do not start at (0,0), and the drawing
// functions accept geometry in that same space.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The other functions never modify
// their input image and may run concurrently.
//
// # Color Representation
//
// Overlay colors are hex strings: "#RRGGBB" (opaque) or "#RRGGBBAA".
package imaging

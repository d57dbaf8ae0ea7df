// Package optical locates the optical center of an image: the center of the
// smallest circle enclosing its opaque pixels.
//
// Analyze chains the three stages (opaque-pixel extraction, convex hull,
// smallest enclosing circle) and reports where that center sits relative to
// the canvas center, which is the shift needed to make artwork look
// centered. AnalyzePoints runs only the geometric stages.
package optical

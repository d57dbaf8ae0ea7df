// Package geometry implements the 2D kernel used to locate the optical center
// of an image: a monotone-chain convex hull and a randomized incremental
// smallest-enclosing-circle construction.
//
// # Coordinate System
//
// Points are plain float64 pairs (see Point). Orientation words in this
// package ("counter-clockwise", "left") refer to a y-up frame: a positive
// Cross means a left turn. For pixel coordinates, where Y grows downward,
// the same sequences appear clockwise on screen.
//
// # Tolerance
//
// Every containment test goes through Circle.Contains, which accepts points
// up to Epsilon outside the radius. The hull uses exact cross-product signs.
//
// # Thread Safety
//
// All functions are pure and never mutate their inputs. Enclose draws from
// the process-wide generator in math/rand/v2, which is safe for concurrent
// use; a *rand.Rand passed to EncloseRand must not be shared.
package geometry

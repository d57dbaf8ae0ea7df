// Package server implements the MCP (Model Context Protocol) server for
// optical-center tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - notifications/initialized: Client acknowledgment (no response)
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - image_load: Load image and get metadata
//   - image_opaque_points: List opaque pixel coordinates
//
// Optical Center:
//   - image_convex_hull: Convex hull of the opaque pixels
//   - image_enclosing_circle: Smallest circle around the opaque pixels
//   - image_optical_center: Full analysis including offset from the canvas center
//   - image_render_overlay: Draw hull and circle on the image
//   - image_recenter_crop: Square crop centered on the optical center
//
// Raw Geometry:
//   - geometry_convex_hull: Convex hull of caller-supplied points
//   - geometry_enclosing_circle: Enclosing circle of caller-supplied points
//
// Optional arguments that are omitted (alpha_threshold, boundary_only, limit,
// colors) fall back to the values in config.Config.
//
// # Image Caching
//
// Images are cached by path and reused across tool calls for the lifetime of
// the server process.
//
// # Error Handling
//
//   - -32601: unknown JSON-RPC method
//   - -32602: malformed params, unknown tool or invalid tool arguments
//   - -32000: tool execution failure (unreadable file, no opaque pixels, ...)
//
// The data field carries the Go error string. Errors never stop the server.
//
// # Usage
//
//	srv := server.New(cfg, log, version)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/optical-center-mcp/internal/geometry"
	"github.com/ironsheep/optical-center-mcp/internal/imaging"
	"github.com/ironsheep/optical-center-mcp/internal/optical"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_optical_center").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// argsError marks a tool failure caused by the caller's arguments rather
// than by the tool itself.
type argsError struct {
	err error
}

func (e *argsError) Error() string { return e.err.Error() }
func (e *argsError) Unwrap() error { return e.err }

func invalidArgs(format string, a ...interface{}) error {
	return &argsError{err: fmt.Errorf(format, a...)}
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Malformed or invalid arguments return -32602; any other tool error
// returns -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	log := s.log.WithField("tool", params.Name)
	start := time.Now()

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.WithError(err).Warn("tool failed")
		var ae *argsError
		if errors.As(err, &ae) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailure, "Tool execution failed", err.Error())
	}
	log.WithField("elapsed", time.Since(start)).Debug("tool done")

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_opaque_points":
		return s.handleImageOpaquePoints(args)

	// Optical Center
	case "image_convex_hull":
		return s.handleImageConvexHull(args)
	case "image_enclosing_circle":
		return s.handleImageEnclosingCircle(args)
	case "image_optical_center":
		return s.handleImageOpticalCenter(args)
	case "image_render_overlay":
		return s.handleImageRenderOverlay(args)
	case "image_recenter_crop":
		return s.handleImageRecenterCrop(args)

	// Raw Geometry
	case "geometry_convex_hull":
		return s.handleGeometryConvexHull(args)
	case "geometry_enclosing_circle":
		return s.handleGeometryEnclosingCircle(args)

	default:
		return nil, invalidArgs("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments, reporting failures as argument errors.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return &argsError{err: err}
	}
	return nil
}

// === Image Information Handlers ===

type imageArgs struct {
	Path           string `json:"path"`
	AlphaThreshold *int   `json:"alpha_threshold"`
}

// options checks the path and resolves the alpha threshold against the
// server default.
func (a imageArgs) options(s *Server) (optical.Options, error) {
	if a.Path == "" {
		return optical.Options{}, invalidArgs("path is required")
	}
	opts := optical.Options{
		AlphaThreshold: s.cfg.AlphaThreshold,
		BoundaryOnly:   s.cfg.BoundaryOnly,
	}
	if a.AlphaThreshold != nil {
		if *a.AlphaThreshold < 0 || *a.AlphaThreshold > 255 {
			return optical.Options{}, invalidArgs("invalid alpha_threshold %d: must be between 0 and 255", *a.AlphaThreshold)
		}
		opts.AlphaThreshold = uint8(*a.AlphaThreshold)
	}
	return opts, nil
}

// analyze loads the image named by a and runs the optical-center pipeline.
func (s *Server) analyze(a imageArgs) (*optical.Result, error) {
	opts, err := a.options(s)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	res, err := optical.Analyze(img, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.Path, err)
	}
	s.log.WithFields(logrus.Fields{
		"path":   a.Path,
		"pixels": res.OpaquePixels,
		"hull":   len(res.Hull),
		"radius": res.Circle.Radius,
	}).Debug("analyzed image")
	return res, nil
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidArgs("path is required")
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imageOpaquePointsArgs struct {
	imageArgs
	BoundaryOnly *bool `json:"boundary_only"`
	Limit        *int  `json:"limit"`
}

type opaquePointsResult struct {
	Count     int             `json:"count"`
	Returned  int             `json:"returned"`
	Truncated bool            `json:"truncated"`
	Points    []optical.Coord `json:"points"`
}

func (s *Server) handleImageOpaquePoints(args json.RawMessage) (interface{}, error) {
	var a imageOpaquePointsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	opts, err := a.options(s)
	if err != nil {
		return nil, err
	}
	if a.BoundaryOnly != nil {
		opts.BoundaryOnly = *a.BoundaryOnly
	}
	limit := s.cfg.MaxPoints
	if a.Limit != nil {
		if *a.Limit <= 0 {
			return nil, invalidArgs("invalid limit %d: must be positive", *a.Limit)
		}
		limit = *a.Limit
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	points := imaging.OpaquePoints(img, imaging.OpaqueOptions{
		AlphaThreshold: opts.AlphaThreshold,
		BoundaryOnly:   opts.BoundaryOnly,
	})

	result := opaquePointsResult{Count: len(points)}
	if len(points) > limit {
		points = points[:limit]
		result.Truncated = true
	}
	result.Returned = len(points)
	result.Points = optical.ToCoords(points)
	return result, nil
}

// === Optical Center Handlers ===

type convexHullResult struct {
	VertexCount int             `json:"vertex_count"`
	Hull        []optical.Coord `json:"hull"`
	Area        float64         `json:"area"`
	Centroid    *optical.Coord  `json:"centroid,omitempty"`
}

func (s *Server) handleImageConvexHull(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	res, err := s.analyze(a)
	if err != nil {
		return nil, err
	}
	return convexHullResult{
		VertexCount: len(res.Hull),
		Hull:        res.Hull,
		Area:        res.HullArea,
		Centroid:    res.HullCentroid,
	}, nil
}

func (s *Server) handleImageEnclosingCircle(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	res, err := s.analyze(a)
	if err != nil {
		return nil, err
	}
	return res.Circle, nil
}

func (s *Server) handleImageOpticalCenter(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.analyze(a)
}

type imageRenderOverlayArgs struct {
	imageArgs
	PathColor   string  `json:"path_color"`
	CircleColor string  `json:"circle_color"`
	ShowLabel   *bool   `json:"show_label"`
	Scale       float64 `json:"scale"`
}

func (s *Server) handleImageRenderOverlay(args json.RawMessage) (interface{}, error) {
	var a imageRenderOverlayArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.PathColor == "" {
		a.PathColor = s.cfg.PathColor
	}
	if a.CircleColor == "" {
		a.CircleColor = s.cfg.CircleColor
	}
	showLabel := true
	if a.ShowLabel != nil {
		showLabel = *a.ShowLabel
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.Scale < 0 {
		return nil, invalidArgs("invalid scale %g: must be positive", a.Scale)
	}

	res, err := s.analyze(a.imageArgs)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	circle := res.Circle.Circle()
	return imaging.RenderOverlay(img, imaging.OverlaySpec{
		Path:        optical.Points(res.Hull),
		Circle:      &circle,
		PathColor:   a.PathColor,
		CircleColor: a.CircleColor,
		ShowLabel:   showLabel,
		Scale:       a.Scale,
	})
}

type imageRecenterCropArgs struct {
	imageArgs
	Padding int     `json:"padding"`
	Scale   float64 `json:"scale"`
}

func (s *Server) handleImageRecenterCrop(args json.RawMessage) (interface{}, error) {
	var a imageRecenterCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Padding < 0 {
		return nil, invalidArgs("invalid padding %d: must be >= 0", a.Padding)
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if a.Scale < 0 {
		return nil, invalidArgs("invalid scale %g: must be positive", a.Scale)
	}

	res, err := s.analyze(a.imageArgs)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.RecenterCrop(img, res.Circle.Circle(), a.Padding, a.Scale)
}

// === Raw Geometry Handlers ===

type pointsArgs struct {
	Points []optical.Coord `json:"points"`
}

type geometryHullResult struct {
	VertexCount int             `json:"vertex_count"`
	Hull        []optical.Coord `json:"hull"`
}

func (s *Server) handleGeometryConvexHull(args json.RawMessage) (interface{}, error) {
	var a pointsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	hull := geometry.ConvexHull(optical.Points(a.Points))
	return geometryHullResult{
		VertexCount: len(hull),
		Hull:        optical.ToCoords(hull),
	}, nil
}

type geometryCircleResult struct {
	Found  bool           `json:"found"`
	Center *optical.Coord `json:"center,omitempty"`
	Radius float64        `json:"radius"`
}

func (s *Server) handleGeometryEnclosingCircle(args json.RawMessage) (interface{}, error) {
	var a pointsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	circle, ok := geometry.Enclose(optical.Points(a.Points))
	if !ok {
		return geometryCircleResult{Found: false}, nil
	}
	c := optical.ToCircleResult(circle)
	return geometryCircleResult{
		Found:  true,
		Center: &c.Center,
		Radius: c.Radius,
	}, nil
}

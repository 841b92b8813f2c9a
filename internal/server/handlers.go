package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	_ "image/png" // histogram dimensions
	"log"

	"github.com/ironsheep/depth-tools-mcp/internal/depth"
	"github.com/ironsheep/depth-tools-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "depth_load", "depth_region_stats").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// A region without valid readings is not an error; see handleRegionStats.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads the capture from cache
//  4. Calls the appropriate depth/imaging function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if s.debug {
		log.Printf("tool %s %s", name, args)
	}

	switch name {
	case "depth_load":
		return s.handleLoad(args)

	case "depth_colorize":
		return s.handleColorize(args)
	case "depth_selection_preview":
		return s.handleSelectionPreview(args)
	case "depth_grid_overlay":
		return s.handleGridOverlay(args)
	case "depth_crop":
		return s.handleCrop(args)

	case "depth_region_stats":
		return s.handleRegionStats(args)
	case "depth_region_histogram":
		return s.handleRegionHistogram(args)

	case "depth_sample":
		return s.handleSample(args)
	case "depth_sample_multi":
		return s.handleSampleMulti(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Shared argument groups ===

type frameArgs struct {
	Dir       string `json:"dir"`
	DepthPath string `json:"depth_path"`
	ImagePath string `json:"image_path"`
}

type rectArgs struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

func (r rectArgs) rect() depth.Rect {
	return depth.Rect{X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: r.Y1}
}

type viewArgs struct {
	View    string   `json:"view"`
	Opacity *float64 `json:"opacity"`
}

func (v viewArgs) render(f *imaging.Frame) (image.Image, error) {
	opacity := imaging.DefaultOverlayOpacity
	if v.Opacity != nil {
		opacity = *v.Opacity
	}
	return imaging.View(f, v.View, opacity)
}

// loadFrame resolves the capture paths, falling back to the server's data
// directory, and loads the frame through the cache.
func (s *Server) loadFrame(a frameArgs) (*imaging.Frame, error) {
	dir := a.Dir
	if dir == "" && a.DepthPath == "" && a.ImagePath == "" {
		dir = s.dataDir
	}
	depthPath, imagePath, err := imaging.ResolvePaths(dir, a.DepthPath, a.ImagePath)
	if err != nil {
		return nil, err
	}
	return s.cache.Load(depthPath, imagePath)
}

func defaultScale(scale float64) float64 {
	if scale == 0 {
		return 1.0
	}
	return scale
}

// === Loading ===

func (s *Server) handleLoad(args json.RawMessage) (interface{}, error) {
	var a frameArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	f, err := s.loadFrame(a)
	if err != nil {
		return nil, err
	}
	return imaging.LoadFrameInfo(s.cache, f.DepthPath, f.ImagePath)
}

// === Rendering ===

type colorizeArgs struct {
	frameArgs
	viewArgs
	Scale float64 `json:"scale"`
}

func (s *Server) handleColorize(args json.RawMessage) (interface{}, error) {
	var a colorizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	f, err := s.loadFrame(a.frameArgs)
	if err != nil {
		return nil, err
	}
	img, err := a.render(f)
	if err != nil {
		return nil, err
	}
	return imaging.Encode(img, defaultScale(a.Scale))
}

type selectionPreviewArgs struct {
	frameArgs
	rectArgs
	viewArgs
	Color string  `json:"color"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleSelectionPreview(args json.RawMessage) (interface{}, error) {
	var a selectionPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Color == "" {
		a.Color = imaging.DefaultSelectionColor
	}
	if a.View == "" {
		a.View = imaging.ViewIntensity
	}
	f, err := s.loadFrame(a.frameArgs)
	if err != nil {
		return nil, err
	}
	img, err := a.render(f)
	if err != nil {
		return nil, err
	}
	preview, err := imaging.SelectionPreview(img, a.rect(), a.Color)
	if err != nil {
		return nil, err
	}
	return imaging.Encode(preview, defaultScale(a.Scale))
}

type gridOverlayArgs struct {
	frameArgs
	viewArgs
	GridSpacing     int    `json:"grid_spacing"`
	ShowCoordinates *bool  `json:"show_coordinates"`
	GridColor       string `json:"grid_color"`
}

func (s *Server) handleGridOverlay(args json.RawMessage) (interface{}, error) {
	var a gridOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.GridSpacing == 0 {
		a.GridSpacing = 50
	}
	if a.GridColor == "" {
		a.GridColor = "#FFFFFF80"
	}
	showCoordinates := a.ShowCoordinates == nil || *a.ShowCoordinates

	f, err := s.loadFrame(a.frameArgs)
	if err != nil {
		return nil, err
	}
	img, err := a.render(f)
	if err != nil {
		return nil, err
	}
	grid, err := imaging.GridOverlay(img, a.GridSpacing, showCoordinates, a.GridColor)
	if err != nil {
		return nil, err
	}
	return imaging.Encode(grid, 1.0)
}

type cropArgs struct {
	frameArgs
	rectArgs
	viewArgs
	Scale float64 `json:"scale"`
}

func (s *Server) handleCrop(args json.RawMessage) (interface{}, error) {
	var a cropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	f, err := s.loadFrame(a.frameArgs)
	if err != nil {
		return nil, err
	}
	img, err := a.render(f)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, a.rect(), defaultScale(a.Scale))
}

// === Statistics ===

type regionArgs struct {
	frameArgs
	rectArgs
}

// regionStatsResult is the presentation form of depth.Stats: depths are
// rounded to whole millimeters and omitted when the region had no valid
// readings.
type regionStatsResult struct {
	Requested depth.Rect `json:"requested"`
	Region    depth.Rect `json:"region"`

	Good  int  `json:"good"`
	Bad   int  `json:"bad"`
	Empty bool `json:"empty"`

	Min           *uint16 `json:"min_mm,omitempty"`
	Max           *uint16 `json:"max_mm,omitempty"`
	Mean          *int    `json:"mean_mm,omitempty"`
	TopDecileMean *int    `json:"top_decile_mean_mm,omitempty"`

	Summary string `json:"summary"`
}

// handleRegionStats normalizes and clamps the requested corners before
// computing, so the stats engine never sees an unordered rectangle.
func (s *Server) handleRegionStats(args json.RawMessage) (interface{}, error) {
	var a regionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	f, err := s.loadFrame(a.frameArgs)
	if err != nil {
		return nil, err
	}

	requested := a.rect()
	stats, err := depth.StatsForSelection(f.Depth, requested.X0, requested.Y0, requested.X1, requested.Y1)
	if err != nil {
		return nil, err
	}

	result := &regionStatsResult{
		Requested: requested,
		Region:    stats.Region,
		Good:      stats.Good,
		Bad:       stats.Bad,
		Empty:     stats.Empty(),
		Summary:   stats.Summary(),
	}
	if !stats.Empty() {
		mean := stats.RoundedMean()
		top := stats.RoundedTopDecileMean()
		result.Min = &stats.Min
		result.Max = &stats.Max
		result.Mean = &mean
		result.TopDecileMean = &top
	}
	return result, nil
}

type regionHistogramArgs struct {
	regionArgs
	Bins int `json:"bins"`
}

type histogramResult struct {
	Region      depth.Rect `json:"region"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	ImageBase64 string     `json:"image_base64"`
	MimeType    string     `json:"mime_type"`
}

func (s *Server) handleRegionHistogram(args json.RawMessage) (interface{}, error) {
	var a regionHistogramArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	f, err := s.loadFrame(a.frameArgs)
	if err != nil {
		return nil, err
	}

	r := a.rect().Normalize().Clamp(f.Width(), f.Height())
	data, err := depth.Histogram(f.Depth, r, a.Bins)
	if err != nil {
		return nil, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read histogram image: %w", err)
	}

	return &histogramResult{
		Region:      r,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "image/png",
	}, nil
}

// === Sampling ===

type sampleArgs struct {
	frameArgs
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleSample(args json.RawMessage) (interface{}, error) {
	var a sampleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	f, err := s.loadFrame(a.frameArgs)
	if err != nil {
		return nil, err
	}
	return imaging.SampleDepth(f, a.X, a.Y)
}

type sampleMultiArgs struct {
	frameArgs
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleSampleMulti(args json.RawMessage) (interface{}, error) {
	var a sampleMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	f, err := s.loadFrame(a.frameArgs)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleDepthMulti(f, points)
}

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ironsheep/pixel-filter-mcp/internal/filter"
	"github.com/ironsheep/pixel-filter-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_blur").
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
		return s.errorResponse(req.ID, -32000, "Tool execution failed", toolErrorData(err))
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
//  3. Loads a private copy of the image from the cache
//  4. Runs the filter through a Processor that encodes (and optionally saves)
//     the frame when the filter commits
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Pixel Adjustments
	case "image_brightness":
		return s.handleImageBrightness(args)
	case "image_contrast":
		return s.handleImageContrast(args)
	case "image_grayscale":
		return s.handleImageGrayscale(args)
	case "image_saturation":
		return s.handleImageSaturation(args)
	case "image_hue":
		return s.handleImageHue(args)

	// Convolution
	case "image_blur":
		return s.handleImageBlur(args)

	// Masking
	case "image_remove_background":
		return s.handleImageRemoveBackground(args)

	// Inspection
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
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

// toolErrorData describes err for the error response. Engine errors carry
// the name of their kind so clients can tell bad input from bad state.
func toolErrorData(err error) interface{} {
	var kind string
	switch {
	case errors.Is(err, filter.ErrInvalidDimensions):
		kind = "invalid_dimensions"
	case errors.Is(err, filter.ErrDegenerateParameter):
		kind = "degenerate_parameter"
	default:
		return err.Error()
	}
	return map[string]string{
		"kind":    kind,
		"message": err.Error(),
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// requireNumber converts a required numeric argument to float32. Values
// beyond float32 range become ±Inf and are rejected by the engine.
func requireNumber(name string, v *float64) (float32, error) {
	if v == nil {
		return 0, fmt.Errorf("missing required argument: %s", name)
	}
	return float32(*v), nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path          string `json:"path"`
	ThumbnailSize int    `json:"thumbnail_size"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	if a.ThumbnailSize > 0 {
		f, err := s.cache.Load(a.Path)
		if err != nil {
			return nil, err
		}
		if info.Thumbnail, err = imaging.EncodeThumbnail(f, a.ThumbnailSize); err != nil {
			return nil, err
		}
	}
	return info, nil
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Filter Handlers ===

// filterCommonArgs are accepted by every filter tool.
type filterCommonArgs struct {
	Path       string          `json:"path"`
	OutputPath string          `json:"output_path"`
	Scale      float64         `json:"scale"`
	Region     string          `json:"region"`
	Crop       *imaging.Region `json:"crop"`
}

// loadFrame returns a private copy of the image, cropped when the arguments
// ask for it. The returned region is nil for the whole image.
func (s *Server) loadFrame(common filterCommonArgs) (*filter.Frame, *imaging.Region, error) {
	f, err := s.cache.Load(common.Path)
	if err != nil {
		return nil, nil, err
	}

	var r imaging.Region
	switch {
	case common.Crop != nil && common.Region != "":
		return nil, nil, fmt.Errorf("crop and region are mutually exclusive")
	case common.Crop != nil:
		r = *common.Crop
	case common.Region != "":
		if r, err = imaging.NamedRegion(f.Width, f.Height, common.Region); err != nil {
			return nil, nil, err
		}
	default:
		return f, nil, nil
	}

	cropped, err := imaging.CropFrame(f, r)
	if err != nil {
		return nil, nil, err
	}
	return cropped, &r, nil
}

// maxPreviewScale bounds the preview size to 4x the filtered frame per axis.
const maxPreviewScale = 4

// runFilter loads a copy of the image and runs apply through a Processor
// whose commit encodes the frame and, if requested, saves it.
func (s *Server) runFilter(common filterCommonArgs, op filter.Op, apply func(*filter.Processor, *filter.Frame) error) (*imaging.FilterResult, error) {
	if common.Scale == 0 {
		common.Scale = 1.0
	}
	if common.Scale < 0 {
		return nil, fmt.Errorf("scale must be positive, got %v", common.Scale)
	}
	if common.Scale > maxPreviewScale {
		return nil, fmt.Errorf("scale must be at most %d, got %v", maxPreviewScale, common.Scale)
	}

	f, region, err := s.loadFrame(common)
	if err != nil {
		return nil, err
	}
	before := f.Clone()

	var result *imaging.FilterResult
	commit := filter.CommitFunc(func(f *filter.Frame) error {
		res, err := imaging.EncodeResult(f, common.Scale)
		if err != nil {
			return err
		}
		if res.Changes, err = imaging.CompareFrames(before, f); err != nil {
			return err
		}
		res.Region = region
		if common.OutputPath != "" {
			out := s.resolveOutput(common.OutputPath, op)
			if err := imaging.SaveFrame(f, out); err != nil {
				return err
			}
			res.SavedTo = out
		}
		result = res
		return nil
	})

	start := time.Now()
	if err := apply(filter.NewProcessor(s.blur, commit), f); err != nil {
		return nil, err
	}
	if s.debug {
		log.Printf("%s %s (%dx%d) in %v", op, common.Path, f.Width, f.Height, time.Since(start))
	}

	result.Filter = string(op)
	return result, nil
}

// resolveOutput joins relative output paths onto the configured directory.
// A path ending in a separator names a directory; the file inside it gets a
// generated "<op>-<uuid>.png" name.
func (s *Server) resolveOutput(path string, op filter.Op) string {
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		path = filepath.Join(path, fmt.Sprintf("%s-%s.png", op, uuid.New().String()))
	}
	if s.outputDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.outputDir, path)
}

type imageBrightnessArgs struct {
	filterCommonArgs
	Brightness *float64 `json:"brightness"`
}

func (s *Server) handleImageBrightness(args json.RawMessage) (interface{}, error) {
	var a imageBrightnessArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	v, err := requireNumber("brightness", a.Brightness)
	if err != nil {
		return nil, err
	}
	return s.runFilter(a.filterCommonArgs, filter.OpBrightness, func(p *filter.Processor, f *filter.Frame) error {
		return p.ApplyBrightness(f, v)
	})
}

type imageContrastArgs struct {
	filterCommonArgs
	Contrast *float64 `json:"contrast"`
}

func (s *Server) handleImageContrast(args json.RawMessage) (interface{}, error) {
	var a imageContrastArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	v, err := requireNumber("contrast", a.Contrast)
	if err != nil {
		return nil, err
	}
	return s.runFilter(a.filterCommonArgs, filter.OpContrast, func(p *filter.Processor, f *filter.Frame) error {
		return p.ApplyContrast(f, v)
	})
}

func (s *Server) handleImageGrayscale(args json.RawMessage) (interface{}, error) {
	var a filterCommonArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.runFilter(a, filter.OpGrayscale, func(p *filter.Processor, f *filter.Frame) error {
		return p.ApplyGrayscale(f)
	})
}

type imageSaturationArgs struct {
	filterCommonArgs
	Amount *float64 `json:"amount"`
}

func (s *Server) handleImageSaturation(args json.RawMessage) (interface{}, error) {
	var a imageSaturationArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	v, err := requireNumber("amount", a.Amount)
	if err != nil {
		return nil, err
	}
	return s.runFilter(a.filterCommonArgs, filter.OpSaturation, func(p *filter.Processor, f *filter.Frame) error {
		return p.ApplySaturation(f, v)
	})
}

type imageHueArgs struct {
	filterCommonArgs
	Degrees *float64 `json:"degrees"`
}

func (s *Server) handleImageHue(args json.RawMessage) (interface{}, error) {
	var a imageHueArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	v, err := requireNumber("degrees", a.Degrees)
	if err != nil {
		return nil, err
	}
	return s.runFilter(a.filterCommonArgs, filter.OpHue, func(p *filter.Processor, f *filter.Frame) error {
		return p.ApplyHue(f, v)
	})
}

type imageBlurArgs struct {
	filterCommonArgs
	Radius *float64 `json:"radius"`
}

func (s *Server) handleImageBlur(args json.RawMessage) (interface{}, error) {
	var a imageBlurArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	v, err := requireNumber("radius", a.Radius)
	if err != nil {
		return nil, err
	}
	return s.runFilter(a.filterCommonArgs, filter.OpBlur, func(p *filter.Processor, f *filter.Frame) error {
		return p.GaussianBlur(f, v)
	})
}

type imageRemoveBackgroundArgs struct {
	filterCommonArgs
	Threshold *float64 `json:"threshold"`
}

func (s *Server) handleImageRemoveBackground(args json.RawMessage) (interface{}, error) {
	var a imageRemoveBackgroundArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	v, err := requireNumber("threshold", a.Threshold)
	if err != nil {
		return nil, err
	}
	return s.runFilter(a.filterCommonArgs, filter.OpRemoveBackground, func(p *filter.Processor, f *filter.Frame) error {
		return p.RemoveBackground(f, v)
	})
}

// === Inspection Handlers ===

type imageSampleColorArgs struct {
	Path   string  `json:"path"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Filter string  `json:"filter"`
	Value  float64 `json:"value"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	f, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Filter != "" {
		p := filter.NewProcessor(s.blur, nil)
		if err := p.Apply(f, filter.Op(a.Filter), float32(a.Value)); err != nil {
			return nil, err
		}
	}
	return imaging.SampleColor(f, a.X, a.Y)
}

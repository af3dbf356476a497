// Package server implements the MCP (Model Context Protocol) server for the
// pixel filter tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the filter engine
// in internal/filter through the MCP protocol, so MCP clients can adjust,
// blur and mask images on disk and inspect the result.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Pixel Adjustments:
//   - image_brightness: Offset RGB by brightness*255
//   - image_contrast: Scale RGB around mid-gray
//   - image_grayscale: Luma grayscale
//   - image_saturation: Scale HSV saturation
//   - image_hue: Rotate HSV hue
//
// Convolution:
//   - image_blur: Separable Gaussian blur
//
// Masking:
//   - image_remove_background: Clear alpha below a luminance threshold
//
// Inspection:
//   - image_sample_color: Get color at pixel, optionally after a filter
//
// # Filter Results
//
// Every filter tool works on a private copy of the cached image. The filter
// runs through a filter.Processor whose commit callback encodes the frame as
// a base64 PNG (optionally scaled) and, when output_path is given, writes it
// to disk. The cached image itself is never modified, so filters do not
// compose across calls.
//
// # Image Caching
//
// The server maintains an in-memory cache of decoded images keyed by path.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, or for engine errors an object
//     {"kind": "invalid_dimensions" | "degenerate_parameter", "message": ...}
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server

// Package server implements the MCP (Model Context Protocol) server for depth
// capture inspection.
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
// Loading:
//   - depth_load: Load a capture and report dimensions and depth range
//
// Rendering:
//   - depth_colorize: Hue-encoded depth, intensity or overlay view as PNG
//   - depth_selection_preview: Draw a selection rectangle on a view
//   - depth_grid_overlay: Add a coordinate grid to a view
//   - depth_crop: Extract a rectangular region of a view
//
// Statistics:
//   - depth_region_stats: Good/bad counts, min, max, mean and nearest mean
//   - depth_region_histogram: Depth distribution plot for a region
//
// Sampling:
//   - depth_sample: Depth and color at a pixel
//   - depth_sample_multi: Depth and color at several pixels
//
// # Locating Captures
//
// Every tool accepts depth_path and image_path, or a dir holding the
// conventional DepthData.bin and IR.jpg. When none are given the server's
// data directory (DEPTH_MCP_DATA_DIR) is used. Loaded captures are cached
// by depth path for the lifetime of the process.
//
// # Error Handling
//
// Missing files, size mismatches between the depth file and the image, and
// invalid arguments are returned as JSON-RPC error responses with code
// -32000 and the Go error string as data. A selection without any valid
// depth reading is a normal result with "empty": true.
package server

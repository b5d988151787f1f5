// Package server implements the MCP (Model Context Protocol) server for the
// developer utilities.
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
// Units:
//   - unit_convert: Convert length, weight, volume and temperature values
//   - unit_list: List unit names per category
//
// Colors:
//   - color_convert: Hex to rgb()/hsl(), or channels to hex
//   - color_sample_image: Pick the color of a pixel in an image file
//   - color_palette: Most common colors of an image
//   - color_loupe: Magnified view around a pixel
//   - image_cache_clear: Evict one cached image or clear the cache
//
// Encoders:
//   - base64_encode, base64_decode
//   - url_encode, url_decode
//
// Generators:
//   - password_generate: Random password from chosen character classes
//   - dice_roll, dice_history: Dice with a short roll history
//   - lorem_words: Filler text
//
// Text:
//   - regex_test: JavaScript regex syntax and flags
//   - text_diff: Line diff and unified diff
//   - markdown_render: Sanitized HTML
//
// Time:
//   - age_calculate: Age in years, months and days
//   - pomodoro_plan: Upcoming work and break phases
//
// Images:
//   - qr_generate: QR code PNG
//
// # Limits and Configuration
//
// Tool calls pass a token-bucket rate limiter. Arguments are checked against
// struct validation tags before a tool runs. Reload swaps in a new
// configuration while the server is running; the CLI calls it from a file
// watcher.
//
// # Error Handling
//
// Tool failures are returned as JSON-RPC error responses with:
//   - code: -32000 (tool failed), -32602 (invalid params), -32029 (rate
//     limited) or -32601 (unknown method)
//   - message: Human-readable error description
//   - data: The Go error string
//
// Every call is logged as "tool.call" with a call id, duration and outcome.
//
// # Usage
//
//	srv := server.New(cfg, version)
//	if err := srv.Run(ctx); err != nil {
//	    return err
//	}
package server

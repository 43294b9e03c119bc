// Package server implements the MCP (Model Context Protocol) server for
// shredded-document reconstruction tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the strip
// reconstruction pipeline through the MCP protocol, so MCP-compatible
// clients can reassemble vertically shredded documents and inspect the
// matching process.
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
//   - strips_reconstruct: Predict the reading order of base64-encoded strip
//     images
//   - strips_reconstruct_files: Same, but strips are image files on disk
//   - strips_score_pair: Dissimilarity between two strips' facing edges,
//     for debugging a reconstruction
//   - strips_edge_profile: Statistics of one strip edge, for spotting flat
//     or degenerate edges
//
// # Fallback Behavior
//
// Reconstruction tools never fail on bad image data: undecodable strips,
// mismatched heights, and unassemblable cost matrices all degrade to the
// identity permutation, reported via the result's fallback fields. JSON-RPC
// errors are reserved for malformed requests.
//
// # Image Caching
//
// The file-based tool maintains an in-memory cache of decoded images keyed
// by path, reused across tool calls for the lifetime of the process.
package server

package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/paperglue/unshred-mcp/internal/order"
	"github.com/paperglue/unshred-mcp/internal/strip"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "strips_reconstruct").
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "strips_reconstruct":
		return s.handleReconstruct(args)
	case "strips_reconstruct_files":
		return s.handleReconstructFiles(args)
	case "strips_score_pair":
		return s.handleScorePair(args)
	case "strips_edge_profile":
		return s.handleEdgeProfile(args)
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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// pipelineArgs are the reconstruction options shared by the tools.
//
// The zero value selects the defaults: SAD metric, 2-opt enabled, no
// smoothing. DisableTwoOpt is inverted so that omitting it keeps
// refinement on.
type pipelineArgs struct {
	Metric        string  `json:"metric"`
	DisableTwoOpt bool    `json:"disable_two_opt"`
	SmoothSigma   float64 `json:"smooth_sigma"`
}

func (a pipelineArgs) config() order.Config {
	cfg := order.DefaultConfig()
	if a.Metric != "" {
		cfg.Metric = order.Metric(a.Metric)
	}
	cfg.TwoOpt = !a.DisableTwoOpt
	cfg.SmoothSigma = a.SmoothSigma
	return cfg
}

// === Reconstruction Handlers ===

type reconstructArgs struct {
	// Strips are base64-encoded strip images in original document-cut order.
	Strips []string `json:"strips"`
	pipelineArgs
}

func (s *Server) handleReconstruct(args json.RawMessage) (interface{}, error) {
	var a reconstructArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	buffers := make([][]byte, len(a.Strips))
	for i, enc := range a.Strips {
		data, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			return nil, fmt.Errorf("strip %d is not valid base64: %w", i, err)
		}
		buffers[i] = data
	}

	rec, err := order.NewReconstructor(a.config())
	if err != nil {
		return nil, err
	}
	return rec.Reconstruct(buffers), nil
}

type reconstructFilesArgs struct {
	// Paths are strip image files in original document-cut order.
	Paths []string `json:"paths"`
	pipelineArgs
}

func (s *Server) handleReconstructFiles(args json.RawMessage) (interface{}, error) {
	var a reconstructFilesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	rec, err := order.NewReconstructor(a.config())
	if err != nil {
		return nil, err
	}

	imgs, err := s.cache.LoadAll(a.Paths)
	if err != nil {
		// Unreadable files follow the same identity fallback as
		// undecodable buffers.
		return &order.Result{
			Permutation:    order.Identity(len(a.Paths)),
			Metric:         order.Metric(a.Metric),
			Fallback:       true,
			FallbackReason: err.Error(),
		}, nil
	}

	strips, err := strip.FromImages(imgs, a.SmoothSigma)
	if err != nil {
		return &order.Result{
			Permutation:    order.Identity(len(a.Paths)),
			Metric:         order.Metric(a.Metric),
			Fallback:       true,
			FallbackReason: err.Error(),
		}, nil
	}

	return rec.ReconstructStrips(strips), nil
}

// === Debugging Handlers ===

type scorePairArgs struct {
	// StripA and StripB are base64-encoded strip images; the tool scores
	// the right edge of A against the left edge of B.
	StripA      string  `json:"strip_a"`
	StripB      string  `json:"strip_b"`
	Metric      string  `json:"metric"`
	SmoothSigma float64 `json:"smooth_sigma"`
}

// scorePairResult reports one directed edge comparison.
type scorePairResult struct {
	Cost    float64      `json:"cost"`
	Metric  order.Metric `json:"metric"`
	HeightA int          `json:"height_a"`
	HeightB int          `json:"height_b"`
}

func (s *Server) handleScorePair(args json.RawMessage) (interface{}, error) {
	var a scorePairArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Metric == "" {
		a.Metric = string(order.MetricSAD)
	}

	scorer, err := order.NewScorer(order.Metric(a.Metric))
	if err != nil {
		return nil, err
	}

	stripA, err := decodeBase64Strip(0, a.StripA, a.SmoothSigma)
	if err != nil {
		return nil, fmt.Errorf("strip_a: %w", err)
	}
	stripB, err := decodeBase64Strip(1, a.StripB, a.SmoothSigma)
	if err != nil {
		return nil, fmt.Errorf("strip_b: %w", err)
	}

	cost, err := scorer.Score(stripA.Right, stripB.Left)
	if err != nil {
		return nil, err
	}

	return &scorePairResult{
		Cost:    cost,
		Metric:  order.Metric(a.Metric),
		HeightA: stripA.Height(),
		HeightB: stripB.Height(),
	}, nil
}

type edgeProfileArgs struct {
	// Strip is a base64-encoded strip image; Path loads a file instead.
	// Exactly one of the two must be provided.
	Strip       string  `json:"strip,omitempty"`
	Path        string  `json:"path,omitempty"`
	Side        string  `json:"side"`
	SmoothSigma float64 `json:"smooth_sigma"`
}

func (s *Server) handleEdgeProfile(args json.RawMessage) (interface{}, error) {
	var a edgeProfileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Side == "" {
		a.Side = "left"
	}
	if a.Side != "left" && a.Side != "right" {
		return nil, fmt.Errorf("side must be \"left\" or \"right\", got %q", a.Side)
	}

	var (
		st  strip.Strip
		err error
	)
	switch {
	case a.Path != "" && a.Strip != "":
		return nil, fmt.Errorf("provide either path or strip, not both")
	case a.Path != "":
		img, lerr := s.cache.Load(a.Path)
		if lerr != nil {
			return nil, lerr
		}
		st, err = strip.FromImage(0, img, a.SmoothSigma)
	case a.Strip != "":
		st, err = decodeBase64Strip(0, a.Strip, a.SmoothSigma)
	default:
		return nil, fmt.Errorf("either path or strip is required")
	}
	if err != nil {
		return nil, err
	}

	if a.Side == "left" {
		return strip.Profile(st.Left), nil
	}
	return strip.Profile(st.Right), nil
}

// decodeBase64Strip decodes a base64 payload into an extracted strip.
func decodeBase64Strip(id int, enc string, smoothSigma float64) (strip.Strip, error) {
	data, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return strip.Strip{}, fmt.Errorf("not valid base64: %w", err)
	}
	return strip.FromBytes(id, data, smoothSigma)
}

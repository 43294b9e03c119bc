package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/paperglue/unshred-mcp/internal/order"
	"github.com/paperglue/unshred-mcp/internal/strip"
)

// stripPNG builds a strip image whose every column has intensity base+x*step.
func stripPNG(t *testing.T, width, height int, base, step int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		v := uint8(base + x*step)
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode strip: %v", err)
	}
	return buf.Bytes()
}

// gradientStripsB64 cuts a synthetic gradient document into base64 strips.
// Strip k covers intensities [k*width*step, ...), so the document order is
// simply the strip index.
func gradientStripsB64(t *testing.T, n, width, height int) []string {
	t.Helper()
	const step = 4
	encoded := make([]string, n)
	for k := 0; k < n; k++ {
		data := stripPNG(t, width, height, k*width*step, step)
		encoded[k] = base64.StdEncoding.EncodeToString(data)
	}
	return encoded
}

func callTool(t *testing.T, s *Server, name string, args interface{}) (interface{}, error) {
	t.Helper()
	raw, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("failed to marshal args: %v", err)
	}
	return s.executeTool(name, raw)
}

func TestExecuteTool_Unknown(t *testing.T) {
	s := New()
	_, err := s.executeTool("image_crop", nil)
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
}

func TestStripsReconstruct(t *testing.T) {
	s := New()
	strips := gradientStripsB64(t, 4, 5, 6)
	// Input order holds document strips 2,0,3,1; the inverse is 1,3,0,2.
	shuffled := []string{strips[2], strips[0], strips[3], strips[1]}

	res, err := callTool(t, s, "strips_reconstruct", map[string]interface{}{
		"strips": shuffled,
	})
	if err != nil {
		t.Fatalf("strips_reconstruct failed: %v", err)
	}

	result, ok := res.(*order.Result)
	if !ok {
		t.Fatalf("result type: got %T", res)
	}
	if result.Fallback {
		t.Fatalf("unexpected fallback: %s", result.FallbackReason)
	}
	want := []int{1, 3, 0, 2}
	for i := range want {
		if result.Permutation[i] != want[i] {
			t.Fatalf("got %v, want %v", result.Permutation, want)
		}
	}
	if result.Metric != order.MetricSAD {
		t.Errorf("default metric: got %q, want sad", result.Metric)
	}
}

func TestStripsReconstruct_Options(t *testing.T) {
	s := New()
	strips := gradientStripsB64(t, 4, 5, 6)

	res, err := callTool(t, s, "strips_reconstruct", map[string]interface{}{
		"strips":          strips,
		"metric":          "ncc",
		"disable_two_opt": true,
	})
	if err != nil {
		t.Fatalf("strips_reconstruct failed: %v", err)
	}

	result := res.(*order.Result)
	if result.Metric != order.MetricNCC {
		t.Errorf("metric: got %q, want ncc", result.Metric)
	}
	if result.Refined {
		t.Error("refinement should have been disabled")
	}
}

func TestStripsReconstruct_BadBase64(t *testing.T) {
	s := New()
	_, err := callTool(t, s, "strips_reconstruct", map[string]interface{}{
		"strips": []string{"!!!not-base64!!!"},
	})
	if err == nil {
		t.Fatal("expected error for invalid base64")
	}
}

func TestStripsReconstruct_BadMetric(t *testing.T) {
	s := New()
	strips := gradientStripsB64(t, 2, 4, 4)
	_, err := callTool(t, s, "strips_reconstruct", map[string]interface{}{
		"strips": strips,
		"metric": "hamming",
	})
	if err == nil {
		t.Fatal("expected error for unknown metric")
	}
}

func TestStripsReconstruct_UndecodableStripFallsBack(t *testing.T) {
	s := New()
	junk := base64.StdEncoding.EncodeToString([]byte("junk bytes"))
	strips := gradientStripsB64(t, 2, 4, 4)

	res, err := callTool(t, s, "strips_reconstruct", map[string]interface{}{
		"strips": []string{strips[0], junk, strips[1]},
	})
	if err != nil {
		t.Fatalf("strips_reconstruct failed: %v", err)
	}

	result := res.(*order.Result)
	if !result.Fallback {
		t.Fatal("expected identity fallback for undecodable strip")
	}
	for i := 0; i < 3; i++ {
		if result.Permutation[i] != i {
			t.Fatalf("fallback must be identity, got %v", result.Permutation)
		}
	}
}

func TestStripsReconstructFiles(t *testing.T) {
	s := New()
	dir := t.TempDir()

	const step = 4
	paths := make([]string, 3)
	docOrder := []int{1, 2, 0} // file i holds document strip docOrder[i]
	for i, k := range docOrder {
		data := stripPNG(t, 4, 6, k*4*step, step)
		paths[i] = filepath.Join(dir, "strip"+string(rune('a'+i))+".png")
		if err := os.WriteFile(paths[i], data, 0o644); err != nil {
			t.Fatalf("failed to write strip file: %v", err)
		}
	}

	res, err := callTool(t, s, "strips_reconstruct_files", map[string]interface{}{
		"paths": paths,
	})
	if err != nil {
		t.Fatalf("strips_reconstruct_files failed: %v", err)
	}

	result := res.(*order.Result)
	if result.Fallback {
		t.Fatalf("unexpected fallback: %s", result.FallbackReason)
	}
	want := []int{2, 0, 1} // inverse of docOrder
	for i := range want {
		if result.Permutation[i] != want[i] {
			t.Fatalf("got %v, want %v", result.Permutation, want)
		}
	}
}

func TestStripsReconstructFiles_MissingFileFallsBack(t *testing.T) {
	s := New()
	res, err := callTool(t, s, "strips_reconstruct_files", map[string]interface{}{
		"paths": []string{"/nonexistent/a.png", "/nonexistent/b.png"},
	})
	if err != nil {
		t.Fatalf("strips_reconstruct_files failed: %v", err)
	}

	result := res.(*order.Result)
	if !result.Fallback {
		t.Fatal("expected identity fallback for missing files")
	}
	if len(result.Permutation) != 2 {
		t.Fatalf("fallback length: got %d, want 2", len(result.Permutation))
	}
	for i := 0; i < 2; i++ {
		if result.Permutation[i] != i {
			t.Fatalf("fallback must be identity, got %v", result.Permutation)
		}
	}
}

func TestStripsScorePair(t *testing.T) {
	s := New()
	// A's right column equals B's left column, so SAD cost is 0.
	a := stripPNG(t, 4, 6, 0, 4)  // columns 0,4,8,12
	b := stripPNG(t, 4, 6, 12, 4) // columns 12,16,20,24

	res, err := callTool(t, s, "strips_score_pair", map[string]interface{}{
		"strip_a": base64.StdEncoding.EncodeToString(a),
		"strip_b": base64.StdEncoding.EncodeToString(b),
	})
	if err != nil {
		t.Fatalf("strips_score_pair failed: %v", err)
	}

	result, ok := res.(*scorePairResult)
	if !ok {
		t.Fatalf("result type: got %T", res)
	}
	if result.Cost != 0 {
		t.Errorf("matching edges: got cost %v, want 0", result.Cost)
	}
	if result.HeightA != 6 || result.HeightB != 6 {
		t.Errorf("heights: got %d/%d, want 6/6", result.HeightA, result.HeightB)
	}
}

func TestStripsScorePair_HeightMismatch(t *testing.T) {
	s := New()
	a := stripPNG(t, 4, 6, 0, 4)
	b := stripPNG(t, 4, 9, 0, 4)

	_, err := callTool(t, s, "strips_score_pair", map[string]interface{}{
		"strip_a": base64.StdEncoding.EncodeToString(a),
		"strip_b": base64.StdEncoding.EncodeToString(b),
	})
	if err == nil {
		t.Fatal("expected error for mismatched heights")
	}
}

func TestStripsEdgeProfile(t *testing.T) {
	s := New()
	data := stripPNG(t, 4, 8, 50, 10)

	res, err := callTool(t, s, "strips_edge_profile", map[string]interface{}{
		"strip": base64.StdEncoding.EncodeToString(data),
		"side":  "right",
	})
	if err != nil {
		t.Fatalf("strips_edge_profile failed: %v", err)
	}

	profile, ok := res.(*strip.EdgeProfile)
	if !ok {
		t.Fatalf("result type: got %T", res)
	}
	if profile.Height != 8 {
		t.Errorf("height: got %d, want 8", profile.Height)
	}
	if !profile.Flat {
		t.Error("vertically uniform column should be flat")
	}
}

func TestStripsEdgeProfile_FromFile(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "strip.png")
	if err := os.WriteFile(path, stripPNG(t, 4, 8, 0, 0), 0o644); err != nil {
		t.Fatalf("failed to write strip file: %v", err)
	}

	res, err := callTool(t, s, "strips_edge_profile", map[string]interface{}{
		"path": path,
	})
	if err != nil {
		t.Fatalf("strips_edge_profile failed: %v", err)
	}
	if res.(*strip.EdgeProfile).Height != 8 {
		t.Errorf("height: got %d, want 8", res.(*strip.EdgeProfile).Height)
	}
}

func TestStripsEdgeProfile_ArgumentErrors(t *testing.T) {
	s := New()
	data := base64.StdEncoding.EncodeToString(stripPNG(t, 4, 4, 0, 0))

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"no source", map[string]interface{}{}},
		{"both sources", map[string]interface{}{"strip": data, "path": "/tmp/x.png"}},
		{"bad side", map[string]interface{}{"strip": data, "side": "top"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := callTool(t, s, "strips_edge_profile", tt.args); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestHandleToolsCall_WrapsResultAsContent(t *testing.T) {
	s := New()
	strips := gradientStripsB64(t, 2, 4, 4)
	params, _ := json.Marshal(ToolCallParams{
		Name:      "strips_reconstruct",
		Arguments: mustRaw(t, map[string]interface{}{"strips": strips}),
	})

	resp := s.handleToolsCall(&MCPRequest{JSONRPC: "2.0", ID: 9, Method: "tools/call", Params: params})
	if resp.Error != nil {
		t.Fatalf("tools/call failed: %+v", resp.Error)
	}

	result := resp.Result.(map[string]interface{})
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("content shape: %#v", result["content"])
	}
	if content[0]["type"] != "text" {
		t.Errorf("content type: got %v, want text", content[0]["type"])
	}
	text, _ := content[0]["text"].(string)
	if text == "" {
		t.Error("content text is empty")
	}
}

func mustRaw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return raw
}

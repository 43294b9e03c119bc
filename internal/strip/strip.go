package strip

import "errors"

// ErrDecode indicates that a strip's bytes could not be decoded into pixel data.
var ErrDecode = errors.New("strip: image decode failed")

// ErrHeightMismatch indicates that strips in one request report different heights.
var ErrHeightMismatch = errors.New("strip: inconsistent strip heights")

// RGB represents an 8-bit color sample from a strip edge.
type RGB struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Edge is one boundary pixel column of a strip, ordered top to bottom.
//
// Both representations cover the same pixels: RGB[k] is the raw color of row
// k and Gray[k] is its grayscale intensity (0-255). Metrics pick whichever
// they operate on; the two slices always have equal length.
type Edge struct {
	RGB  []RGB
	Gray []float64
}

// Len returns the edge height in rows.
func (e Edge) Len() int {
	return len(e.Gray)
}

// Strip is one vertical slice of the shredded document.
//
// ID is the slice's position in the original input and is never reassigned;
// the reconstruction output is a permutation of these IDs.
type Strip struct {
	ID    int
	Left  Edge
	Right Edge
}

// Height returns the strip height in rows.
func (s Strip) Height() int {
	return s.Left.Len()
}

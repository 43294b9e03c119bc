package strip

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

// flatEps is the intensity spread below which an edge counts as flat
// (uniformly colored). Flat edges carry no correlation signal.
const flatEps = 1e-9

// EdgeProfile summarizes one edge for inspection. It exists so a user can
// spot degenerate edges (flat columns, near-flat scans of empty margin)
// that make correlation-based matching unreliable.
type EdgeProfile struct {
	// Height is the edge length in rows.
	Height int `json:"height"`

	// Mean is the average grayscale intensity (0-255).
	Mean float64 `json:"mean"`

	// StdDev is the sample standard deviation of the grayscale intensities.
	StdDev float64 `json:"std_dev"`

	// Flat reports whether the edge is uniformly colored (no variance).
	Flat bool `json:"flat"`

	// MeanColorHex is the average edge color in "#RRGGBB" form.
	MeanColorHex string `json:"mean_color_hex"`

	// LabL, LabA, LabB are the CIE-Lab coordinates of the average color,
	// a perceptual summary that separates lightness from chroma.
	LabL float64 `json:"lab_l"`
	LabA float64 `json:"lab_a"`
	LabB float64 `json:"lab_b"`
}

// Profile computes the summary statistics of an edge.
func Profile(e Edge) *EdgeProfile {
	p := &EdgeProfile{Height: e.Len()}
	if e.Len() == 0 {
		p.Flat = true
		p.MeanColorHex = "#000000"
		return p
	}

	p.Mean = stat.Mean(e.Gray, nil)
	if e.Len() > 1 {
		p.StdDev = stat.StdDev(e.Gray, nil)
	}
	p.Flat = p.StdDev < flatEps

	var sumR, sumG, sumB float64
	for _, c := range e.RGB {
		sumR += float64(c.R)
		sumG += float64(c.G)
		sumB += float64(c.B)
	}
	n := float64(e.Len())
	mean := colorful.Color{
		R: sumR / n / 255.0,
		G: sumG / n / 255.0,
		B: sumB / n / 255.0,
	}
	p.MeanColorHex = mean.Hex()
	p.LabL, p.LabA, p.LabB = mean.Lab()

	p.Mean = round2(p.Mean)
	p.StdDev = round2(p.StdDev)
	p.LabL = round4(p.LabL)
	p.LabA = round4(p.LabA)
	p.LabB = round4(p.LabB)
	return p
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// String renders a short human-readable form, handy in debug logs.
func (p *EdgeProfile) String() string {
	return fmt.Sprintf("h=%d mean=%.2f std=%.2f flat=%v color=%s",
		p.Height, p.Mean, p.StdDev, p.Flat, p.MeanColorHex)
}

package strip

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// FromBytes decodes one strip image and samples its boundary columns.
//
// Parameters:
//   - id: The strip's original input index, stored unchanged on the result.
//   - data: Encoded image bytes (PNG, JPEG, or GIF).
//   - smoothSigma: Gaussian smoothing radius applied before sampling.
//     Zero or negative disables smoothing. Smoothing suppresses compression
//     artifacts along the cut columns at the price of softening real detail.
//
// Returns ErrDecode (wrapped) if the bytes are not a decodable image or the
// decoded image is empty.
func FromBytes(id int, data []byte, smoothSigma float64) (Strip, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Strip{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return FromImage(id, img, smoothSigma)
}

// FromImage samples the boundary columns of an already-decoded strip image.
//
// Returns ErrDecode (wrapped) for images with zero width or height.
func FromImage(id int, img image.Image, smoothSigma float64) (Strip, error) {
	if img.Bounds().Dx() < 1 || img.Bounds().Dy() < 1 {
		return Strip{}, fmt.Errorf("%w: empty image", ErrDecode)
	}

	if smoothSigma > 0 {
		img = blur.Gaussian(img, smoothSigma)
	}

	// Grayscale once per strip; both edges sample from the same conversion.
	gray := imaging.Grayscale(img)

	bounds := img.Bounds()
	return Strip{
		ID:    id,
		Left:  sampleColumn(img, gray, bounds.Min.X),
		Right: sampleColumn(img, gray, bounds.Max.X-1),
	}, nil
}

// FromImages builds strips from decoded images, assigning IDs by input order
// and enforcing a uniform height across the request.
func FromImages(imgs []image.Image, smoothSigma float64) ([]Strip, error) {
	strips := make([]Strip, 0, len(imgs))
	for i, img := range imgs {
		s, err := FromImage(i, img, smoothSigma)
		if err != nil {
			return nil, fmt.Errorf("strip %d: %w", i, err)
		}
		if i > 0 && s.Height() != strips[0].Height() {
			return nil, fmt.Errorf("%w: strip %d has height %d, expected %d",
				ErrHeightMismatch, i, s.Height(), strips[0].Height())
		}
		strips = append(strips, s)
	}
	return strips, nil
}

// FromBuffers decodes each buffer and builds strips with IDs in input order,
// enforcing a uniform height across the request.
func FromBuffers(buffers [][]byte, smoothSigma float64) ([]Strip, error) {
	strips := make([]Strip, 0, len(buffers))
	for i, data := range buffers {
		s, err := FromBytes(i, data, smoothSigma)
		if err != nil {
			return nil, fmt.Errorf("strip %d: %w", i, err)
		}
		if i > 0 && s.Height() != strips[0].Height() {
			return nil, fmt.Errorf("%w: strip %d has height %d, expected %d",
				ErrHeightMismatch, i, s.Height(), strips[0].Height())
		}
		strips = append(strips, s)
	}
	return strips, nil
}

// sampleColumn reads one pixel column of img top to bottom.
//
// gray must be the grayscale conversion of img; imaging.Grayscale returns a
// zero-origin image regardless of the source bounds, so its coordinates are
// offset by the source minimum.
func sampleColumn(img image.Image, gray *image.NRGBA, x int) Edge {
	bounds := img.Bounds()
	height := bounds.Dy()

	edge := Edge{
		RGB:  make([]RGB, height),
		Gray: make([]float64, height),
	}
	for y := 0; y < height; y++ {
		r, g, b, _ := img.At(x, bounds.Min.Y+y).RGBA()
		// Convert from 16-bit to 8-bit
		edge.RGB[y] = RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
		edge.Gray[y] = float64(gray.NRGBAAt(x-bounds.Min.X, y).R)
	}
	return edge
}

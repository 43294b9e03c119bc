// Package strip turns shredded-document slice images into edge descriptors.
//
// A strip is one vertical slice of a document. The only information the
// reconstruction pipeline uses is the strip's two boundary pixel columns:
// the leftmost column (its left edge) and the rightmost column (its right
// edge). This package decodes strip images, optionally pre-smooths them, and
// samples those columns into Edge values carrying both RGB triples and
// grayscale scalars so that any downstream metric can pick the
// representation it needs.
//
// # Coordinate System
//
// Rows are sampled top to bottom, so Edge entry k corresponds to image row k.
// All strips in one request must share the same height; FromBuffers and
// FromImages enforce this and return ErrHeightMismatch otherwise.
//
// # Supported Formats
//
// Strip buffers are decoded with the standard image registry; PNG, JPEG and
// GIF decoders are registered by this package.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Extraction functions are
// stateless; Strip and Edge values are read-only once built.
package strip

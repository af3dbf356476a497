// Package imaging is the host side of the filter engine: it owns image
// storage, turning files into frames and frames back into encoded output.
//
// Frames produced here are non-premultiplied RGBA with their origin at the
// image's top-left corner: (0,0) is the top-left pixel, X increases rightward
// and Y increases downward.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Every Load returns a private
// copy of the cached pixels, so callers may filter it in place.
//
// # Output
//
// EncodeResult produces a base64 PNG for returning to a client, optionally
// scaled for preview. SaveFrame writes PNG, JPEG or BMP files chosen by
// extension.
//
// # Regions
//
// CropFrame copies a rectangle out of a frame so a filter can run on part of
// an image; NamedRegion resolves names such as "top-left" or "center".
// CompareFrames reports how much a filter changed its input.
//
// # Error Handling
//
// Functions return errors for:
//   - Coordinates outside image bounds
//   - Frames whose buffer length does not match their dimensions
//   - File I/O, decoding and encoding failures
package imaging

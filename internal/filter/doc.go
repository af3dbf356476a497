// Package filter implements the pixel-level filter engine.
//
// Every operation works on a caller-owned [Frame]: a flat RGBA byte buffer of
// length Width*Height*4, row-major, channel order R,G,B,A. The engine borrows
// the buffer for the duration of one call, mutates it in place and keeps no
// reference after returning.
//
// # Pixel Contract
//
// Per-pixel transforms (Brightness, Contrast, Grayscale, Saturation, HueRotate,
// RemoveBackground) read and write one pixel at a time. Channel math is done in
// float32; the result is clamped to [0,255] and truncated, not rounded. Alpha is
// left alone by every color adjustment and is the only channel touched by
// RemoveBackground.
//
// # Gaussian Blur
//
// GaussianBlur builds a normalized 1-D kernel (see [GaussianKernel]) and runs
// two passes: rows from the frame into a scratch buffer, then columns from the
// scratch buffer back into the frame. Neighbors outside the image are sampled
// clamp-to-edge. Alpha is convolved exactly like the color channels; colors are
// not premultiplied, so transparent neighbors still contribute their RGB.
//
// # Errors
//
// Invalid buffers fail with [ErrInvalidDimensions] before any pixel is read.
// Non-finite parameters and a contrast of exactly 259 fail with
// [ErrDegenerateParameter]. A frame with zero width or height is a successful
// no-op.
//
// # Thread Safety
//
// Operations share no mutable state. Different frames may be processed
// concurrently; the same frame must not be.
package filter

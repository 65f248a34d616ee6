// Package texture provides CPU-side page image helpers: conversion to the
// tightly packed RGBA layout the GPU upload path expects, and validation
// of externally supplied pixel buffers.
package texture

import (
	"fmt"
	"image"
	"image/color"
)

// BytesPerPixel is the only pixel layout accepted for upload: 4-byte RGBA,
// row-major, top row first.
const BytesPerPixel = 4

// ValidatePixels checks that pix is a tightly packed RGBA buffer for a
// width x height image. Rejected buffers are dropped by the caller; the
// previous texture contents stay in place.
func ValidatePixels(pix []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	want := width * height * BytesPerPixel
	if len(pix) != want {
		return fmt.Errorf("pixel buffer is %d bytes, want %d (%dx%d RGBA)",
			len(pix), want, width, height)
	}
	return nil
}

// ImageToRGBA converts any image to a tightly packed *image.RGBA. An image
// that already is one with zero origin and tight stride is returned as-is.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		b := rgba.Bounds()
		if b.Min == (image.Point{}) && rgba.Stride == b.Dx()*BytesPerPixel {
			return rgba
		}
	}

	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			out.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.RGBA{
				R: uint8(r16 >> 8),
				G: uint8(g16 >> 8),
				B: uint8(b16 >> 8),
				A: uint8(a16 >> 8),
			})
		}
	}
	return out
}

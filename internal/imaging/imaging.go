// Package imaging validates and normalizes uploaded photos before they reach
// blob storage.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"

	"golang.org/x/image/draw"
)

// MaxBytes is the upload size limit per photo.
const MaxBytes = 5 << 20

// MaxDimension is the maximum width or height for stored photos.
const MaxDimension = 1600

// JPEGQuality is the compression quality for re-encoded output.
const JPEGQuality = 85

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Result is a processed, storage-ready photo.
type Result struct {
	Data        []byte
	ContentType string
}

// Process validates raw upload bytes (size cap, MIME sniffed from content
// rather than client headers), downscales anything larger than MaxDimension
// and re-encodes as JPEG.
func Process(data []byte) (*Result, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	if len(data) > MaxBytes {
		return nil, fmt.Errorf("file exceeds %dMB limit", MaxBytes>>20)
	}

	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format %s, only JPEG and PNG are accepted", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	img = downscale(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return &Result{Data: buf.Bytes(), ContentType: "image/jpeg"}, nil
}

// downscale resizes img so neither dimension exceeds maxDim, preserving
// aspect ratio. Returns img unchanged when already within bounds.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = h * maxDim / w
	} else {
		newH = maxDim
		newW = w * maxDim / h
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

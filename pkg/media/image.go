// Package media prepares uploaded profile photos for storage.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	PhotoMaxDimension = 512
	PhotoQuality      = 82
	MaxPhotoBytes     = 5 << 20
)

var ErrUnsupportedImage = errors.New("only jpeg, png and webp images are allowed")

// allowedTypes are checked against the sniffed content type, never the
// client supplied header.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// DetectImageType sniffs data and reports whether it is an accepted image.
func DetectImageType(data []byte) (string, error) {
	contentType := http.DetectContentType(data)
	if !allowedTypes[contentType] {
		return contentType, ErrUnsupportedImage
	}
	return contentType, nil
}

// CompressImage scales the image down so its longer side is at most
// maxDimension and re-encodes it as JPEG.
func CompressImage(data []byte, maxDimension, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width, height := scaledSize(bounds.Dx(), bounds.Dy(), maxDimension)

	resized := image.NewRGBA(image.Rect(0, 0, width, height))
	// JPEG has no alpha; paint transparent areas white
	draw.Draw(resized, resized.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func scaledSize(width, height, maxDimension int) (int, int) {
	if width <= maxDimension && height <= maxDimension {
		return width, height
	}
	if width > height {
		return maxDimension, max(1, height*maxDimension/width)
	}
	return max(1, width*maxDimension/height), maxDimension
}

// Package imaging decodes uploaded images and encodes processing results.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/webp"
)

// ErrUnsupportedImage is returned for bytes that no registered decoder accepts.
var ErrUnsupportedImage = errors.New("unsupported or corrupt image")

// pngSignature is the 8 byte header every PNG stream starts with.
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Decode decodes PNG, JPEG, GIF or WebP bytes and reports the detected format.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}

	return img, format, nil
}

// DecodeConfig reads only the header of data and returns the image dimensions.
func DecodeConfig(data []byte) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, "", fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}

	return cfg, format, nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("error encoding png: %w", err)
	}

	return buf.Bytes(), nil
}

// IsPNG reports whether data starts with the PNG signature.
func IsPNG(data []byte) bool {
	return bytes.HasPrefix(data, pngSignature)
}

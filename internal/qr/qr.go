// Package qr wraps QR image generation for payment instructions: the code
// encodes either the vendor wallet address (order awaiting payment) or the
// buyer's transaction reference (order paid).
package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const imageSize = 256

// Generator produces QR code images from string payloads.
type Generator struct{}

// NewGenerator creates a new Generator.
func NewGenerator() Generator {
	return Generator{}
}

// PNG encodes the payload as a PNG image.
func (Generator) PNG(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, imageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

// DataURI encodes the payload as a PNG data URI, suitable for inlining in
// an img tag.
func (g Generator) DataURI(payload string) (string, error) {
	png, err := g.PNG(payload)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

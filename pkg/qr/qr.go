package qr

import (
	"errors"

	qrcode "github.com/skip2/go-qrcode"
)

const DefaultSize = 320

// PNG renders content as a scannable QR code image.
func PNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr: empty content")
	}
	if size <= 0 {
		size = DefaultSize
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}

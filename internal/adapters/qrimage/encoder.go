package qrimage

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// Encoder renders QR payload content as PNG bytes.
type Encoder struct{}

// NewEncoder creates a new QR PNG encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodePNG renders content as a size x size PNG QR code.
// Medium error correction matches what phone cameras handle well on a
// printed card.
// PRE: content is non-empty, size > 0
// POST: Returns PNG bytes
func (e *Encoder) EncodePNG(content string, size int) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr encode failed: %w", err)
	}
	return png, nil
}

package orchestrators

import (
	"context"
	"time"

	"gymdesk/internal/domain/qrcard"
)

// DefaultQRSize is the pixel size of generated QR card images.
const DefaultQRSize = 256

// QRImageEncoder renders payload text into a QR image.
type QRImageEncoder interface {
	EncodePNG(content string, size int) ([]byte, error)
}

// IssueQRCardDeps holds dependencies for IssueQRCard.
type IssueQRCardDeps struct {
	MemberStore RenewMemberStore
	Images      QRImageEncoder
}

// QRCardResult carries the issued card payload and its rendered image.
type QRCardResult struct {
	Payload qrcard.Payload
	PNG     []byte
}

// ExecuteIssueQRCard builds the canonical QR payload for a member and
// renders it as a PNG for printing.
// PRE: memberNumber identifies an existing member; size > 0 or 0 for default
// POST: Returns the payload and image; nothing is persisted
func ExecuteIssueQRCard(ctx context.Context, memberNumber int64, size int, deps IssueQRCardDeps, now time.Time) (QRCardResult, error) {
	m, err := deps.MemberStore.GetByNumber(ctx, memberNumber)
	if err != nil {
		return QRCardResult{}, ErrMemberNotFound
	}

	if size <= 0 {
		size = DefaultQRSize
	}

	content, err := qrcard.EncodeString(m, now)
	if err != nil {
		return QRCardResult{}, err
	}

	png, err := deps.Images.EncodePNG(content, size)
	if err != nil {
		return QRCardResult{}, err
	}

	return QRCardResult{Payload: qrcard.Encode(m, now), PNG: png}, nil
}

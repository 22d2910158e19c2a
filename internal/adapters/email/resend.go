package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// resendBatchMax is the per-call ceiling of Resend's batch endpoint.
const resendBatchMax = 100

// ResendSender delivers reminder emails through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender builds a sender. from is used whenever a request
// does not name its own sender address.
// PRE: apiKey is a valid Resend API key
// POST: Returns a ready-to-use sender
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) buildParams(req SendRequest) *resend.SendEmailRequest {
	from := req.From
	if from == "" {
		from = s.from
	}
	params := &resend.SendEmailRequest{
		From:    from,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
	}
	if req.ReplyTo != "" {
		params.ReplyTo = req.ReplyTo
	}
	return params
}

// Send delivers a single email.
// PRE: req has at least one recipient and a subject
// POST: Email is queued with Resend; MessageID is Resend's ID
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, s.buildParams(req))
	if err != nil {
		slog.Error("email_event", "event", "send_failed", "to", req.To, "subject", req.Subject, "error", err)
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}

	slog.Info("email_event", "event", "sent", "message_id", sent.Id, "to", req.To, "subject", req.Subject)
	return SendResult{
		MessageID: sent.Id,
		SentAt:    time.Now(),
	}, nil
}

// SendBatch delivers emails through the batch endpoint, splitting into
// chunks of at most resendBatchMax.
// PRE: len(reqs) > 0
// POST: Results are in request order; on a chunk failure the results
// of the chunks already sent are returned with the error
func (s *ResendSender) SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	var results []SendResult
	for i := 0; i < len(reqs); i += resendBatchMax {
		end := min(i+resendBatchMax, len(reqs))
		chunk := reqs[i:end]

		params := make([]*resend.SendEmailRequest, 0, len(chunk))
		for _, req := range chunk {
			params = append(params, s.buildParams(req))
		}

		resp, err := s.client.Batch.SendWithContext(ctx, params)
		if err != nil {
			slog.Error("email_event", "event", "batch_failed", "batch_size", len(chunk), "error", err)
			return results, fmt.Errorf("resend batch send failed: %w", err)
		}

		for _, item := range resp.Data {
			results = append(results, SendResult{
				MessageID: item.Id,
				SentAt:    time.Now(),
			})
		}
		slog.Info("email_event", "event", "batch_sent", "count", len(chunk), "total_sent", len(results))
	}

	return results, nil
}

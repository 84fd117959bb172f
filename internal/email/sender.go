// Package email delivers transactional email for inquiry updates.
package email

import "context"

// Sender delivers inquiry notification email.
type Sender interface {
	// SendMatchFoundEmail tells the submitter a staff member matched their
	// inquiry to an item in the inventory.
	SendMatchFoundEmail(ctx context.Context, toEmail, itemName, inquiryURL string) error

	// SendInquiryResolvedEmail confirms the handover after the submitter
	// accepted the matched item.
	SendInquiryResolvedEmail(ctx context.Context, toEmail, inquiryTitle string) error
}

// NoopSender is used when SMTP is not configured. Notifications still reach
// users over SSE; email is best effort.
type NoopSender struct{}

func (NoopSender) SendMatchFoundEmail(ctx context.Context, toEmail, itemName, inquiryURL string) error {
	return nil
}

func (NoopSender) SendInquiryResolvedEmail(ctx context.Context, toEmail, inquiryTitle string) error {
	return nil
}

var _ Sender = NoopSender{}

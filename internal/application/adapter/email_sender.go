// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// DigestRenderer renders the monthly digest e-mail.
type DigestRenderer interface {
	// RenderDigest returns the HTML and plain-text bodies for data.
	RenderDigest(data DigestData) (html string, text string, err error)
}

// DigestData is the template data of the monthly digest.
type DigestData struct {
	Name              string
	Period            string
	CurrencySymbol    string
	GrossClosed       decimal.Decimal
	NetClosed         decimal.Decimal
	GrossOpen         decimal.Decimal
	ObjectiveProgress decimal.Decimal
	ClosedCount       int
	OpenCount         int
	FallenCount       int
	Points            int
	TopAdvisors       []DigestAdvisor
}

// DigestAdvisor is one row of the digest ranking.
type DigestAdvisor struct {
	Position  int
	Name      string
	BrokerFee decimal.Decimal
	Points    int
}

// File: services/payment/payment.go
package payment

import (
	"context"
	"fmt"

	"mindlink/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/refund"
)

// RefundIssuer asks the external financial service to return the money for a
// booking that landed in Refund. The lifecycle core treats issuance as
// best-effort collaborator work; the wallet/ledger side lives entirely in
// that service.
type RefundIssuer interface {
	IssueRefund(ctx context.Context, b *models.Booking) error
}

// StripeRefundIssuer issues refunds against the payment intent recorded at
// checkout.
type StripeRefundIssuer struct{}

func NewStripeRefundIssuer() *StripeRefundIssuer {
	return &StripeRefundIssuer{}
}

func (s *StripeRefundIssuer) IssueRefund(ctx context.Context, b *models.Booking) error {
	if b.PaymentRef == "" {
		return fmt.Errorf("booking %s has no payment reference to refund", b.ID)
	}
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(b.PaymentRef),
	}
	params.Context = ctx
	if _, err := refund.New(params); err != nil {
		return fmt.Errorf("failed to issue refund for booking %s: %w", b.ID, err)
	}
	return nil
}

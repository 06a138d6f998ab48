// File: services/booking/admin.go
package booking

import (
	"context"

	"mindlink/models"
)

// RefundOnReport resolves a reported booking in the member's favour: the
// report is upheld and the money goes back. Terminal.
func (s *DefaultLifecycleService) RefundOnReport(ctx context.Context, bookingID, adminID string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, models.RoleAdmin, adminID, models.StatusRefund, nil)
}

// RejectOnReport dismisses a report. Rejected is deliberately a distinct
// terminal status from Complete so history keeps which resolution happened.
func (s *DefaultLifecycleService) RejectOnReport(ctx context.Context, bookingID, adminID string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, models.RoleAdmin, adminID, models.StatusRejected, nil)
}

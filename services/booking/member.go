// File: services/booking/member.go
package booking

import (
	"context"
	"fmt"
	"time"

	"mindlink/models"
)

// CancelAsMember moves a Confirm booking to MemberCancel, storing the
// member's reason verbatim.
func (s *DefaultLifecycleService) CancelAsMember(ctx context.Context, bookingID, memberID, cancelReason string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, models.RoleMember, memberID, models.StatusMemberCancel, func(b *models.Booking) {
		b.CancelReason = cancelReason
	})
}

// ProposeReschedule records the member's proposed replacement slot and moves
// the booking to Reschedule for the counselor to accept.
func (s *DefaultLifecycleService) ProposeReschedule(ctx context.Context, bookingID, memberID string, startAt, endAt time.Time) (*models.Booking, error) {
	return s.transition(ctx, bookingID, models.RoleMember, memberID, models.StatusReschedule, func(b *models.Booking) {
		b.ProposedStartAt = startAt
		b.ProposedEndAt = endAt
	})
}

// ReportBooking flags the session for admin review. Legal from Confirm,
// Finish and Complete; the message travels with the record until an admin
// resolves it.
func (s *DefaultLifecycleService) ReportBooking(ctx context.Context, bookingID, memberID, message string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, models.RoleMember, memberID, models.StatusReport, func(b *models.Booking) {
		b.IsReport = true
		b.ReportMessage = message
	})
}

// SubmitFeedback writes the member's rating and feedback text. Feedback sits
// outside the lifecycle: it is legal once the session has finished and does
// not move the status.
func (s *DefaultLifecycleService) SubmitFeedback(ctx context.Context, bookingID, memberID string, rating int, feedback string) (*models.Booking, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !ownedBy(b, models.RoleMember, memberID) {
		return nil, Denied(ReasonRoleNotPermitted)
	}
	switch b.Status {
	case models.StatusFinish, models.StatusComplete:
	default:
		return nil, Denied(ReasonNotYetEligible)
	}

	return s.Repo.UpdateFeedback(ctx, bookingID, rating, feedback)
}

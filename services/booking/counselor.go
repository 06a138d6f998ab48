// File: services/booking/counselor.go
package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "mindlink/database/repository/booking"
	"mindlink/models"
)

// CancelAsCounselor cancels a Confirm booking from the counselor side. The
// member is owed their money back, so this goes straight to Refund rather
// than MemberCancel.
func (s *DefaultLifecycleService) CancelAsCounselor(ctx context.Context, bookingID, counselorID, cancelReason string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, models.RoleCounselor, counselorID, models.StatusRefund, func(b *models.Booking) {
		b.CancelReason = cancelReason
	})
}

// AcceptReschedule adopts the member's proposed slot as the new session time
// and returns the booking to Confirm.
func (s *DefaultLifecycleService) AcceptReschedule(ctx context.Context, bookingID, counselorID string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, models.RoleCounselor, counselorID, models.StatusConfirm, func(b *models.Booking) {
		b.StartAt = b.ProposedStartAt
		b.EndAt = b.ProposedEndAt
		b.ProposedStartAt = time.Time{}
		b.ProposedEndAt = time.Time{}
	})
}

// SaveNotesAndMaybeComplete writes the consultation notes. On a Finish
// booking the note write and the move to Complete happen as one
// compare-and-swap, so the store never shows notes without the status or the
// status without the notes. On a Complete booking the notes are edited in
// place, but the mandatory fields can never be cleared back to empty.
func (s *DefaultLifecycleService) SaveNotesAndMaybeComplete(ctx context.Context, bookingID, counselorID string, draft models.NoteDraft) (*models.Booking, error) {
	current, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !ownedBy(current, models.RoleCounselor, counselorID) {
		return nil, Denied(ReasonRoleNotPermitted)
	}

	if err := ValidateNotes(current.Status, draft).Err(); err != nil {
		return nil, err
	}
	trimmed := draft.Trimmed()

	if current.Status == models.StatusFinish {
		return s.transition(ctx, bookingID, models.RoleCounselor, counselorID, models.StatusComplete, func(b *models.Booking) {
			writeNotes(b, trimmed)
		})
	}

	// Already Complete: edit in place, status untouched.
	updated, err := s.Repo.CompareAndSwap(ctx, bookingID, current.Status, func(b *models.Booking) error {
		writeNotes(b, trimmed)
		return nil
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrConflict) {
			return nil, Denied(ReasonConflict)
		}
		return nil, err
	}
	return updated, nil
}

func writeNotes(b *models.Booking, d models.NoteDraft) {
	b.ProblemSummary = d.ProblemSummary
	b.ProblemAnalysis = d.ProblemAnalysis
	b.Guides = d.Guides
}

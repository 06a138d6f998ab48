// File: services/booking/finalize.go
package booking

import (
	"context"
	"errors"

	bookingRepo "mindlink/database/repository/booking"
	"mindlink/models"
	"mindlink/utils"

	"go.uber.org/zap"
)

// FinalizeSession ends a live counseling session and promotes the booking
// from Confirm to Finish. The note gate runs before any store mutation: if
// problemSummary or guides is empty the counselor gets notes-required back,
// the booking stays in Confirm, and the call can be ended again after the
// notes are filled in. Notes and the status change commit in one
// compare-and-swap; the call room is torn down only after the commit and
// only best-effort.
func (s *DefaultLifecycleService) FinalizeSession(ctx context.Context, bookingID, counselorID string, draft models.NoteDraft) (*models.Booking, error) {
	trimmed := draft.Trimmed()
	var missing []FieldName
	if trimmed.ProblemSummary == "" {
		missing = append(missing, FieldProblemSummary)
	}
	if trimmed.Guides == "" {
		missing = append(missing, FieldGuides)
	}
	if len(missing) > 0 {
		return nil, Denied(ReasonNotesRequired, missing...)
	}

	current, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !ownedBy(current, models.RoleCounselor, counselorID) {
		return nil, Denied(ReasonRoleNotPermitted)
	}

	candidate := *current
	writeNotes(&candidate, trimmed)
	decision := Decide(current.Status, models.StatusFinish, models.RoleCounselor, &candidate)
	if !decision.Allowed {
		if decision.Reason == ReasonInvalidTransition {
			// The booking is no longer in Confirm (cancelled, reported, or
			// already finished); an ordinary denial for the caller.
			return nil, decision.Err()
		}
		// The gate above guarantees the table's preconditions, so any other
		// denial means the gate and the table have drifted apart.
		utils.GetLogger().Panic("finalize precondition drifted from transition table",
			zap.String("booking_id", bookingID),
			zap.String("reason", string(decision.Reason)))
	}

	updated, err := s.Repo.CompareAndSwap(ctx, bookingID, current.Status, func(b *models.Booking) error {
		writeNotes(b, trimmed)
		b.Status = models.StatusFinish
		return nil
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrConflict) {
			return nil, Denied(ReasonConflict)
		}
		return nil, err
	}

	if s.Call != nil {
		if err := s.Call.EndRoom(ctx, bookingID); err != nil {
			utils.GetLogger().Warn("call room teardown failed",
				zap.String("booking_id", bookingID), zap.Error(err))
		}
	}
	s.afterTransition(ctx, updated, current.Status, models.StatusFinish)
	return updated, nil
}

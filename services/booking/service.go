package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mindlink/config"
	bookingRepo "mindlink/database/repository/booking"
	"mindlink/models"
	"mindlink/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ownedBy reports whether actorID belongs to the booking on the given actor
// surface. Admins act on any booking; members act on their own (including
// the partner of a couple session); counselors on their own schedule.
func ownedBy(b *models.Booking, role models.Role, actorID string) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleMember:
		return b.MemberID == actorID || (b.IsCouple() && b.PartnerMemberID == actorID)
	case models.RoleCounselor:
		return b.CounselorID == actorID
	}
	return false
}

// transition runs one lifecycle edge end to end: load, ownership check,
// table decision against the candidate record, then a single
// compare-and-swap keyed on the status the decision was made against. A
// denied decision or a conflict leaves the store untouched.
func (s *DefaultLifecycleService) transition(ctx context.Context, bookingID string, role models.Role, actorID string, target models.BookingStatus, apply func(*models.Booking)) (*models.Booking, error) {
	current, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !ownedBy(current, role, actorID) {
		return nil, Denied(ReasonRoleNotPermitted)
	}

	candidate := *current
	if apply != nil {
		apply(&candidate)
	}
	decision := Decide(current.Status, target, role, &candidate)
	if err := decision.Err(); err != nil {
		return nil, err
	}

	updated, err := s.Repo.CompareAndSwap(ctx, bookingID, current.Status, func(b *models.Booking) error {
		if apply != nil {
			apply(b)
		}
		b.Status = target
		return nil
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrConflict) {
			return nil, Denied(ReasonConflict)
		}
		return nil, err
	}

	s.afterTransition(ctx, updated, current.Status, target)
	return updated, nil
}

// afterTransition runs best-effort collaborator work for a committed
// transition. Failures are logged and never undo the write.
func (s *DefaultLifecycleService) afterTransition(ctx context.Context, b *models.Booking, from, to models.BookingStatus) {
	logger := utils.GetLogger()

	if s.Notify != nil {
		if err := s.Notify.NotifyStatusChange(ctx, b, from, to); err != nil {
			logger.Warn("status change notification failed",
				zap.String("booking_id", b.ID), zap.Error(err))
		}
	}

	if to == models.StatusRefund && s.Refunds != nil {
		if err := s.Refunds.IssueRefund(ctx, b); err != nil {
			logger.Error("refund issuance failed",
				zap.String("booking_id", b.ID), zap.Error(err))
		}
	}
}

// CreateBooking is the scheduling action: it validates the record shape and
// creates the booking in Confirm. Parties, couple flag, price and topic tags
// are fixed here for the lifetime of the record.
func (s *DefaultLifecycleService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	if input.MemberID == "" || input.CounselorID == "" {
		return nil, fmt.Errorf("member and counselor are required")
	}
	if !input.EndAt.After(input.StartAt) {
		return nil, fmt.Errorf("booking end time must be after start time")
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("booking price cannot be negative")
	}

	b := &models.Booking{
		ID:              uuid.New().String(),
		MemberID:        input.MemberID,
		PartnerMemberID: input.PartnerMemberID,
		CounselorID:     input.CounselorID,
		StartAt:         input.StartAt,
		EndAt:           input.EndAt,
		Price:           input.Price,
		PaymentRef:      input.PaymentRef,
		Status:          models.StatusConfirm,
		Subcategories:   input.Subcategories,
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.Reminders != nil {
		lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
		fireAt := b.StartAt.Add(-lead)
		if fireAt.After(time.Now()) {
			payload := models.ReminderPayload{
				BookingID:   b.ID,
				MemberID:    b.MemberID,
				CounselorID: b.CounselorID,
				StartAt:     b.StartAt,
			}
			if err := s.Reminders.ScheduleReminder(payload, fireAt); err != nil {
				utils.GetLogger().Warn("failed to schedule session reminder",
					zap.String("booking_id", b.ID), zap.Error(err))
			}
		}
	}

	return b, nil
}

func (s *DefaultLifecycleService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultLifecycleService) ListForCounselor(ctx context.Context, counselorID string) ([]models.Booking, error) {
	return s.Repo.ListByCounselor(ctx, counselorID)
}

func (s *DefaultLifecycleService) ListForMember(ctx context.Context, memberID string) ([]models.Booking, error) {
	return s.Repo.ListByMember(ctx, memberID)
}

package bookingRepo

import (
	"context"
	"errors"

	"mindlink/models"
)

// Store-level sentinel errors. ErrConflict means the record's status changed
// between the caller's decision and the guarded write; it is surfaced to the
// caller, never retried here.
var (
	ErrNotFound = errors.New("booking not found")
	ErrConflict = errors.New("booking status changed concurrently")
)

// BookingRepository is the durable record store for bookings. All lifecycle
// mutations go through CompareAndSwap so the transition decision and the
// write apply as one atomic unit keyed on the expected status.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)

	// CompareAndSwap loads the booking, verifies its status still equals
	// expected, applies mutate to a copy, and writes the copy back guarded
	// by the same status check. Returns ErrConflict when another writer got
	// there first, and the authoritative post-write record on success.
	CompareAndSwap(ctx context.Context, id string, expected models.BookingStatus, mutate func(*models.Booking) error) (*models.Booking, error)

	ListByCounselor(ctx context.Context, counselorID string) ([]models.Booking, error)
	ListByMember(ctx context.Context, memberID string) ([]models.Booking, error)

	// UpdateFeedback writes the member's rating and feedback text. Feedback
	// sits outside the lifecycle, so this is a plain update, not a CAS.
	UpdateFeedback(ctx context.Context, id string, rating int, feedback string) (*models.Booking, error)
}

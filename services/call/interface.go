package call

import "context"

// CallService manages the live video-call room attached to a booking. The
// lifecycle core tears rooms down after a successful finalization but never
// depends on teardown succeeding.
type CallService interface {
	OpenRoom(ctx context.Context, bookingID string) (string, error)
	GetRoom(ctx context.Context, bookingID string) (string, error)
	EndRoom(ctx context.Context, bookingID string) error
}

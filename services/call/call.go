// File: services/call/call.go
package call

import (
	"context"
	"fmt"
	"time"

	"mindlink/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Rooms outlive their scheduled slot by a grace period so an overrunning
// session is not cut off by key expiry.
const roomTTL = 3 * time.Hour

// DefaultCallService tracks live rooms in Redis, one key per booking.
type DefaultCallService struct {
	Cache *redis.Client
}

func NewDefaultCallService() *DefaultCallService {
	return &DefaultCallService{Cache: utils.GetCallRoomCacheClient()}
}

func roomKey(bookingID string) string {
	return "callroom:" + bookingID
}

// OpenRoom creates (or returns the existing) room for a booking.
func (s *DefaultCallService) OpenRoom(ctx context.Context, bookingID string) (string, error) {
	key := roomKey(bookingID)
	roomID := uuid.New().String()

	ok, err := s.Cache.SetNX(ctx, key, roomID, roomTTL).Result()
	if err != nil {
		return "", fmt.Errorf("failed to open call room for booking %s: %w", bookingID, err)
	}
	if !ok {
		return s.Cache.Get(ctx, key).Result()
	}
	return roomID, nil
}

// GetRoom returns the active room for a booking, if any.
func (s *DefaultCallService) GetRoom(ctx context.Context, bookingID string) (string, error) {
	roomID, err := s.Cache.Get(ctx, roomKey(bookingID)).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("no active call room for booking %s", bookingID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up call room for booking %s: %w", bookingID, err)
	}
	return roomID, nil
}

// EndRoom tears down the room for a booking. Ending a room that was never
// opened is not an error.
func (s *DefaultCallService) EndRoom(ctx context.Context, bookingID string) error {
	if err := s.Cache.Del(ctx, roomKey(bookingID)).Err(); err != nil {
		return fmt.Errorf("failed to end call room for booking %s: %w", bookingID, err)
	}
	return nil
}

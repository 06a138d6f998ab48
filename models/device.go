// File: models/device.go
package models

import "time"

// ActorDevice holds the push-notification token for one actor (member or
// counselor). One document per actor; re-registration overwrites.
type ActorDevice struct {
	ActorID   string    `bson:"actor_id" json:"actor_id"`
	Role      Role      `bson:"role" json:"role"`
	FCMToken  string    `bson:"fcm_token" json:"fcm_token"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"mindlink/config"

	"github.com/go-redis/redis/v8"
)

// CallRoomCacheClient tracks live call rooms, on its own DB.
var CallRoomCacheClient *redis.Client

// InitCallRoomCache initializes the Redis client for the call-room registry.
func InitCallRoomCache() {
	CallRoomCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCallRoomDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CallRoomCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Call Rooms): %v", err)
	}
}

// GetCallRoomCacheClient returns the Redis client for the call-room registry.
func GetCallRoomCacheClient() *redis.Client {
	if CallRoomCacheClient == nil {
		InitCallRoomCache()
	}
	return CallRoomCacheClient
}

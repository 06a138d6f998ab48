package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"mindlink/config"
	"mindlink/models"
	"mindlink/services/notification"
	"mindlink/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				time.Sleep(time.Duration(attempts) * 2 * time.Second)
				continue
			}
			return
		}
		log.Println("[ReminderWorker] giving up; reminders will not be delivered")
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload models.ReminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			log.Printf("[ReminderWorker] bad payload: %v", err)
			return nil // malformed tasks are dropped, not retried
		}
		if err := notifSvc.SendReminder(ctx, payload); err != nil {
			log.Printf("[ReminderWorker] failed to deliver reminder for booking %s: %v", payload.BookingID, err)
			return err
		}
		return nil
	}
}

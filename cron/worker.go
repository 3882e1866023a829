package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ridebook/config"
	"ridebook/models"
	recordsRepo "ridebook/database/repository/records"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypePickupReminder = "pickup:reminder"

// ReminderLead is how long before the scheduled pickup the reminder fires.
const ReminderLead = 30 * time.Minute

// ReminderClient enqueues pickup reminders for submitted bookings.
type ReminderClient struct {
	client *asynq.Client
}

// NewReminderClient builds the asynq enqueue client.
func NewReminderClient() *ReminderClient {
	return &ReminderClient{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisTaskDB,
		}),
	}
}

// SchedulePickupReminder queues a reminder to fire ahead of the pickup time.
// Bookings already inside the lead window get no reminder.
func (c *ReminderClient) SchedulePickupReminder(record models.BookingRecord) error {
	fireAt := record.PickupTime.Add(-ReminderLead)
	if !fireAt.After(time.Now()) {
		return nil
	}
	payload, err := json.Marshal(models.PickupReminderPayload{
		RecordID:   record.ID,
		UserID:     record.UserID,
		BookingID:  record.BookingID,
		PickupTime: record.PickupTime.Format(time.RFC3339),
		Address:    record.Pickup.Address,
	})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypePickupReminder, payload)
	_, err = c.client.Enqueue(task, asynq.ProcessAt(fireAt))
	return err
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(records recordsRepo.BookingRecordRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
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
	mux.HandleFunc(TypePickupReminder, handleReminderTask(records))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(records recordsRepo.BookingRecordRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PickupReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] pickup reminder for booking %s (user %s) at %s: %s",
			p.BookingID, p.UserID, p.PickupTime, p.Address)

		if err := records.SetStatus(ctx, p.RecordID, "Reminded"); err != nil {
			log.Printf("[ReminderHandler] failed to mark record reminded: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}

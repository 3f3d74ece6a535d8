package cron

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"concierge/config"
	"concierge/services/orders"
)

const TypeSnapshotRefresh = "snapshot:refresh"

// InitSnapshotWorker runs the async worker in background and schedules the
// periodic snapshot refresh so the dashboard's first paint after idle is warm.
func InitSnapshotWorker(svc orders.OrderViewService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSnapshotRefresh, handleSnapshotRefresh(svc))

	// Start async worker with retry logic
	go func() {
		log.Println("[SnapshotWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SnapshotWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SnapshotWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	go enqueueRefreshLoop(redisOpts)
}

// enqueueRefreshLoop periodically enqueues a refresh task on the configured interval.
func enqueueRefreshLoop(redisOpts asynq.RedisClientOpt) {
	client := asynq.NewClient(redisOpts)
	defer client.Close()

	interval := config.AppConfig.RefreshInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		task := asynq.NewTask(TypeSnapshotRefresh, nil)
		if _, err := client.Enqueue(task); err != nil {
			log.Printf("[SnapshotWorker] Failed to enqueue refresh task: %v", err)
		}
	}
}

func handleSnapshotRefresh(svc orders.OrderViewService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		snapshot, err := svc.GetSnapshot(ctx, true)
		if err != nil {
			log.Printf("[SnapshotRefresh] Failed to rebuild snapshot: %v", err)
			return err
		}
		log.Printf("[SnapshotRefresh] Snapshot rebuilt: %d bookings, %d dropped, partial=%v",
			len(snapshot.Bookings), snapshot.Dropped, snapshot.Partial)
		return nil
	}
}

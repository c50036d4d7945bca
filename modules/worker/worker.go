package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	redisutil "atelier-studio-server/modules/common/redis"
	"atelier-studio-server/modules/studio"
)

// StartWorker blocks on the job queue and processes async generation jobs.
// Run it in its own goroutine from main.
func StartWorker(rdb *redis.Client) {
	log.Println("🔄 Studio queue worker starting...")
	if rdb == nil {
		log.Println("⚠️ [Worker] Redis not configured, worker disabled")
		return
	}

	service := studio.NewService()
	ctx := context.Background()
	log.Printf("👀 Watching queue: %s", redisutil.QueueKey)

	for {
		result, err := rdb.BRPop(ctx, 0, redisutil.QueueKey).Result()
		if err != nil {
			log.Printf("❌ [Worker] Redis BRPOP error: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		var job Job
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("❌ [Worker] Dropping malformed job payload: %v", err)
			continue
		}

		log.Printf("🎯 [Worker] Received job: %s", job.ID)
		go processJob(ctx, rdb, service, &job)
	}
}

func processJob(ctx context.Context, rdb *redis.Client, service *studio.Service, job *Job) {
	if job.Request == nil {
		updateStatus(ctx, rdb, job.ID, map[string]interface{}{
			"status": StatusFailed,
			"error":  "job carries no request payload",
		})
		return
	}
	if redisutil.IsJobCancelled(rdb, job.ID) {
		log.Printf("🛑 [Worker] Job %s cancelled before start", job.ID)
		updateStatus(ctx, rdb, job.ID, map[string]interface{}{"status": StatusCancelled})
		return
	}

	updateStatus(ctx, rdb, job.ID, map[string]interface{}{
		"status":    StatusProcessing,
		"startedAt": time.Now().UTC().Format(time.RFC3339),
	})

	jobCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	// Watch the cancel flag while the batch runs and cut the context when it
	// appears.
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if redisutil.IsJobCancelled(rdb, job.ID) {
					log.Printf("🛑 [Worker] Job %s cancelled mid-flight", job.ID)
					cancel()
					return
				}
			}
		}
	}()

	// Each finished view lands in the status hash immediately so the
	// websocket stream shows real batch progress.
	resp, err := service.GenerateWithProgress(jobCtx, job.Request, func(result studio.ViewResult) {
		fields := map[string]interface{}{
			"view:" + string(result.View): viewStatus(result),
		}
		if payload, err := json.Marshal(result); err == nil {
			fields["viewResult:"+string(result.View)] = string(payload)
		}
		updateStatus(ctx, rdb, job.ID, fields)
	})
	close(done)

	if redisutil.IsJobCancelled(rdb, job.ID) {
		updateStatus(ctx, rdb, job.ID, map[string]interface{}{
			"status":     StatusCancelled,
			"finishedAt": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err != nil {
		log.Printf("❌ [Worker] Job %s failed: %v", job.ID, err)
		updateStatus(ctx, rdb, job.ID, map[string]interface{}{
			"status":     StatusFailed,
			"error":      err.Error(),
			"finishedAt": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	// A nil error means at least one view produced an image; total failure
	// comes back as an error and lands in the branch above.
	fields := map[string]interface{}{
		"status":     StatusCompleted,
		"finishedAt": time.Now().UTC().Format(time.RFC3339),
	}
	if payload, err := json.Marshal(resp); err == nil {
		fields["result"] = string(payload)
	}
	updateStatus(ctx, rdb, job.ID, fields)
	log.Printf("✅ [Worker] Job %s finished: %s", job.ID, StatusCompleted)
}

func viewStatus(result studio.ViewResult) string {
	if result.Error != "" {
		return StatusFailed
	}
	return StatusCompleted
}

func updateStatus(ctx context.Context, rdb *redis.Client, jobID string, fields map[string]interface{}) {
	if err := redisutil.UpdateJobStatus(ctx, rdb, jobID, fields); err != nil {
		log.Printf("⚠️ [Worker] Failed to update status for %s: %v", jobID, err)
	}
}

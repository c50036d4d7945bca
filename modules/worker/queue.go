package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	redisutil "atelier-studio-server/modules/common/redis"
	"atelier-studio-server/modules/studio"
)

// Job is the queued payload: the full generate request travels with the job,
// there is no database lookup on the worker side.
type Job struct {
	ID        string                  `json:"id"`
	Request   *studio.GenerateRequest `json:"request"`
	CreatedAt time.Time               `json:"createdAt"`
}

// Queue wraps the redis job list. It implements studio.Enqueuer.
type Queue struct {
	rdb *redis.Client
}

func NewQueue(rdb *redis.Client) *Queue {
	if rdb == nil {
		return nil
	}
	return &Queue{rdb: rdb}
}

// Enqueue pushes a job and seeds its status hash so clients can start
// polling immediately.
func (q *Queue) Enqueue(req *studio.GenerateRequest) (string, error) {
	job := Job{
		ID:        uuid.New().String(),
		Request:   req,
		CreatedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("failed to marshal job: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisutil.UpdateJobStatus(ctx, q.rdb, job.ID, map[string]interface{}{
		"status":    StatusQueued,
		"createdAt": job.CreatedAt.Format(time.RFC3339),
	}); err != nil {
		return "", fmt.Errorf("failed to seed job status: %w", err)
	}
	if err := q.rdb.LPush(ctx, redisutil.QueueKey, payload).Err(); err != nil {
		return "", fmt.Errorf("failed to enqueue job: %w", err)
	}
	return job.ID, nil
}

// Job lifecycle states written to the status hash.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusCancelled  = "cancelled"
)

// IsTerminal reports whether a status value ends the job lifecycle.
func IsTerminal(status string) bool {
	switch status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

package redis

import (
	"context"
	"crypto/tls"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"atelier-studio-server/modules/common/config"
)

// QueueKey is the list the async worker blocks on.
const QueueKey = "studio:jobs:queue"

// Connect creates a Redis client, or nil when Redis is not configured/reachable.
func Connect(cfg *config.Config) *redis.Client {
	if cfg.RedisHost == "" {
		return nil
	}

	log.Printf("🔌 Connecting to Redis: %s", cfg.GetRedisAddr())

	var tlsConfig *tls.Config
	if cfg.RedisUseTLS {
		tlsConfig = &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: true, // managed Redis with self-signed chain
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Username:     cfg.RedisUsername,
		Password:     cfg.RedisPassword,
		TLSConfig:    tlsConfig,
		DB:           0,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("❌ Redis ping failed: %v", err)
		return nil
	}

	return rdb
}

func cancelKey(jobID string) string {
	return "studio:job:cancel:" + jobID
}

func statusKey(jobID string) string {
	return "studio:job:status:" + jobID
}

// SetJobCancelled flags a job for cancellation. The flag expires on its own
// so abandoned jobs do not leak keys.
func SetJobCancelled(rdb *redis.Client, jobID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return rdb.Set(ctx, cancelKey(jobID), "1", time.Hour).Err()
}

// IsJobCancelled reports whether a cancel flag exists for the job.
func IsJobCancelled(rdb *redis.Client, jobID string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	n, err := rdb.Exists(ctx, cancelKey(jobID)).Result()
	if err != nil {
		log.Printf("⚠️ Redis cancel check failed for %s: %v", jobID, err)
		return false
	}
	return n > 0
}

// UpdateJobStatus writes the job status hash the progress stream reads from.
func UpdateJobStatus(ctx context.Context, rdb *redis.Client, jobID string, fields map[string]interface{}) error {
	if err := rdb.HSet(ctx, statusKey(jobID), fields).Err(); err != nil {
		return err
	}
	return rdb.Expire(ctx, statusKey(jobID), 24*time.Hour).Err()
}

// GetJobStatus reads the full status hash for a job. An empty map means the
// job is unknown (or expired).
func GetJobStatus(ctx context.Context, rdb *redis.Client, jobID string) (map[string]string, error) {
	return rdb.HGetAll(ctx, statusKey(jobID)).Result()
}

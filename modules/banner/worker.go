package banner

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"courseflow-server/modules/common/config"
	redisClient "courseflow-server/modules/common/redis"
)

const (
	queueKey     = "banner:jobs"
	jobKeyPrefix = "banner:job:"
	jobTTL       = time.Hour
)

func jobKey(jobID string) string {
	return jobKeyPrefix + jobID
}

// setJobStatus - persist job state under banner:job:<id> with a 1h TTL.
func setJobStatus(ctx context.Context, rdb *redis.Client, status *JobStatus) error {
	status.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal job status: %w", err)
	}

	if err := rdb.Set(ctx, jobKey(status.JobID), data, jobTTL).Err(); err != nil {
		return fmt.Errorf("failed to save job status: %w", err)
	}
	return nil
}

// GetJobStatus - load the persisted state of an async job.
func GetJobStatus(ctx context.Context, rdb *redis.Client, jobID string) (*JobStatus, error) {
	data, err := rdb.Get(ctx, jobKey(jobID)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load job status: %w", err)
	}

	var status JobStatus
	if err := json.Unmarshal([]byte(data), &status); err != nil {
		return nil, fmt.Errorf("failed to parse job status: %w", err)
	}
	return &status, nil
}

// EnqueueJob - register a pending job and push it onto the queue.
func EnqueueJob(ctx context.Context, rdb *redis.Client, req *GenerateRequest) (string, int64, error) {
	job := Job{
		JobID:      uuid.New().String(),
		Request:    *req,
		EnqueuedAt: time.Now().UTC(),
	}

	if err := setJobStatus(ctx, rdb, &JobStatus{JobID: job.JobID, Status: StatusPending}); err != nil {
		return "", 0, err
	}

	data, err := json.Marshal(job)
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal job: %w", err)
	}

	if _, err := rdb.LPush(ctx, queueKey, data).Result(); err != nil {
		return "", 0, fmt.Errorf("failed to enqueue job: %w", err)
	}

	queueLen, _ := rdb.LLen(ctx, queueKey).Result()
	log.Printf("📥 [Banner] Job %s enqueued (position: %d)", job.JobID, queueLen)
	return job.JobID, queueLen, nil
}

// StartWorker - blocking Redis queue worker for async banner jobs. Runs in a
// goroutine from main; returns immediately when Redis is not configured.
func StartWorker() {
	cfg := config.GetConfig()

	rdb := redisClient.Connect(cfg)
	if rdb == nil {
		log.Println("⚠️ [Banner] Worker not started - Redis unavailable")
		return
	}

	service := NewService()
	if service == nil {
		log.Println("⚠️ [Banner] Worker not started - generation service unavailable")
		return
	}

	log.Printf("👀 [Banner] Worker watching queue: %s", queueKey)

	ctx := context.Background()

	for {
		result, err := rdb.BRPop(ctx, 0, queueKey).Result()
		if err != nil {
			log.Printf("❌ [Banner] Redis BRPOP error: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		// result[0] is the queue name, result[1] the job payload.
		go processJob(ctx, rdb, service, result[1])
	}
}

func processJob(ctx context.Context, rdb *redis.Client, service *Service, payload string) {
	var job Job
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		log.Printf("❌ [Banner] Failed to parse queued job: %v", err)
		return
	}

	log.Printf("🚀 [Banner] Processing job: %s", job.JobID)

	if err := setJobStatus(ctx, rdb, &JobStatus{JobID: job.JobID, Status: StatusProcessing}); err != nil {
		log.Printf("⚠️ [Banner] Failed to mark job %s processing: %v", job.JobID, err)
	}

	response, err := service.GenerateBannerSet(ctx, &job.Request)
	if err != nil {
		log.Printf("❌ [Banner] Job %s failed: %v", job.JobID, err)
		if err := setJobStatus(ctx, rdb, &JobStatus{
			JobID:  job.JobID,
			Status: StatusFailed,
			Error:  err.Error(),
		}); err != nil {
			log.Printf("⚠️ [Banner] Failed to mark job %s failed: %v", job.JobID, err)
		}
		return
	}

	if err := setJobStatus(ctx, rdb, &JobStatus{
		JobID:  job.JobID,
		Status: StatusCompleted,
		Result: response,
	}); err != nil {
		log.Printf("⚠️ [Banner] Failed to mark job %s completed: %v", job.JobID, err)
		return
	}

	log.Printf("✅ [Banner] Job %s completed", job.JobID)
}

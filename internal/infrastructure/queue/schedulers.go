package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// periodicJob is one cron entry enqueued by the Scheduler.
type periodicJob struct {
	cron     string
	taskType string
	payload  any
	opts     []asynq.Option
}

// Scheduler enqueues the periodic maintenance tasks run by the worker.
type Scheduler struct {
	scheduler *asynq.Scheduler
	jobs      []periodicJob
}

func NewScheduler(redisAddr, password string, db int, backfillLimit int) *Scheduler {
	return &Scheduler{
		scheduler: asynq.NewScheduler(
			asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db},
			&asynq.SchedulerOpts{Location: time.UTC, LogLevel: asynq.WarnLevel},
		),
		jobs: []periodicJob{
			{
				// Assets whose thumbnail task was lost or exhausted its retries.
				cron:     "15 * * * *",
				taskType: TypeBackfillThumbnails,
				payload:  BackfillPayload{Limit: backfillLimit},
				opts:     []asynq.Option{asynq.Queue(QueueAsset), asynq.MaxRetry(1), asynq.Timeout(5 * time.Minute)},
			},
		},
	}
}

func (s *Scheduler) RegisterJobs() error {
	for _, job := range s.jobs {
		payload, err := json.Marshal(job.payload)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", job.taskType, err)
		}

		entryID, err := s.scheduler.Register(job.cron, asynq.NewTask(job.taskType, payload), job.opts...)
		if err != nil {
			return fmt.Errorf("register %s: %w", job.taskType, err)
		}

		log.Info().
			Str("task", job.taskType).
			Str("cron", job.cron).
			Str("entry_id", entryID).
			Msg("[Scheduler] Registered periodic task")
	}
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}

package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

const (
	TypeGenerateThumbnail  = "asset:generate_thumbnail"
	TypeBackfillThumbnails = "asset:backfill_thumbnails"

	QueueAsset = "asset"
)

// ThumbnailPayload identifies the asset whose blob should get a thumbnail.
type ThumbnailPayload struct {
	AssetID int64 `json:"assetId"`
}

// BackfillPayload bounds how many assets one backfill run enqueues.
type BackfillPayload struct {
	Limit int `json:"limit"`
}

// NewThumbnailTask builds the asynq task for one asset.
func NewThumbnailTask(assetID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(ThumbnailPayload{AssetID: assetID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeGenerateThumbnail, payload), nil
}

// Client enqueues background jobs for the API.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr, password string, db int) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db}),
	}
}

// EnqueueThumbnail schedules thumbnail generation for an asset.
func (c *Client) EnqueueThumbnail(ctx context.Context, assetID int64) error {
	task, err := NewThumbnailTask(assetID)
	if err != nil {
		return fmt.Errorf("build thumbnail task: %w", err)
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueAsset),
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("enqueue thumbnail: %w", err)
	}

	log.Debug().Str("task_id", info.ID).Int64("asset_id", assetID).Msg("Thumbnail task enqueued")
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

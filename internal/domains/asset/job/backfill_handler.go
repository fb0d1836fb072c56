package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	assetService "xpose-backend/internal/domains/asset/service"
	"xpose-backend/internal/infrastructure/queue"
)

const defaultBackfillLimit = 100

// BackfillHandler re-enqueues assets whose thumbnail was never produced.
type BackfillHandler struct {
	assetService assetService.ServiceInterface
}

func NewBackfillHandler(assetService assetService.ServiceInterface) *BackfillHandler {
	return &BackfillHandler{
		assetService: assetService,
	}
}

func (h *BackfillHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload queue.BackfillPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
		}
	}
	if payload.Limit <= 0 {
		payload.Limit = defaultBackfillLimit
	}

	n, err := h.assetService.BackfillThumbnails(ctx, payload.Limit)
	if err != nil {
		log.Error().Err(err).Msg("Thumbnail backfill failed")
		return fmt.Errorf("backfill thumbnails: %w", err)
	}

	log.Info().Int("enqueued", n).Msg("Thumbnail backfill done")
	return nil
}

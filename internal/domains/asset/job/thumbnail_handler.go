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

// ThumbnailHandler generates the thumbnail of one asset.
type ThumbnailHandler struct {
	assetService assetService.ServiceInterface
}

func NewThumbnailHandler(assetService assetService.ServiceInterface) *ThumbnailHandler {
	return &ThumbnailHandler{
		assetService: assetService,
	}
}

func (h *ThumbnailHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload queue.ThumbnailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal GenerateThumbnail payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Int64("asset_id", payload.AssetID).
		Msg("Generating asset thumbnail")

	if err := h.assetService.GenerateThumbnail(ctx, payload.AssetID); err != nil {
		log.Error().
			Err(err).
			Int64("asset_id", payload.AssetID).
			Msg("Failed to generate thumbnail")
		return fmt.Errorf("generate thumbnail: %w", err)
	}

	return nil
}

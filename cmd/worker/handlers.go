package main

import (
	"github.com/hibiken/asynq"

	assetJob "xpose-backend/internal/domains/asset/job"
	"xpose-backend/internal/infrastructure/queue"
	"xpose-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	thumbnail *assetJob.ThumbnailHandler
	backfill  *assetJob.BackfillHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		thumbnail: assetJob.NewThumbnailHandler(c.AssetService),
		backfill:  assetJob.NewBackfillHandler(c.AssetService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TypeGenerateThumbnail, h.thumbnail.ProcessTask)
	mux.HandleFunc(queue.TypeBackfillThumbnails, h.backfill.ProcessTask)
}

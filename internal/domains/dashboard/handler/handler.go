package handler

import (
	"github.com/gin-gonic/gin"

	"xpose-backend/internal/domains/dashboard/service"
	"xpose-backend/internal/shared/response"
)

type DashboardHandler struct {
	service service.ServiceInterface
}

func NewDashboardHandler(service service.ServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		service: service,
	}
}

// Stats handles GET /dashboard
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, stats.Totals())
}

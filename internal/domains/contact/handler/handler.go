package handler

import (
	"github.com/gin-gonic/gin"

	"xpose-backend/internal/domains/contact/model"
	"xpose-backend/internal/domains/contact/service"
	"xpose-backend/internal/shared/response"
	"xpose-backend/internal/shared/utils"
)

type ContactHandler struct {
	service service.ServiceInterface
}

func NewContactHandler(service service.ServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// List handles GET /contactInformations
func (h *ContactHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Get handles GET /contactInformations/:id
func (h *ContactHandler) Get(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Create handles POST /contactInformations
func (h *ContactHandler) Create(c *gin.Context) {
	var req model.ContactInformation
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Update handles PUT /contactInformations/:id
func (h *ContactHandler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req model.ContactInformation
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete handles DELETE /contactInformations/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.HandleError(c, err)
		return
	}
	response.NoContent(c)
}

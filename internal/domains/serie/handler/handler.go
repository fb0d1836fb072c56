package handler

import (
	"github.com/gin-gonic/gin"

	"xpose-backend/internal/domains/serie/model"
	"xpose-backend/internal/domains/serie/service"
	"xpose-backend/internal/shared/response"
	"xpose-backend/internal/shared/utils"
)

type SerieHandler struct {
	service service.ServiceInterface
}

func NewSerieHandler(service service.ServiceInterface) *SerieHandler {
	return &SerieHandler{
		service: service,
	}
}

// List handles GET /series
func (h *SerieHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Filter handles GET /series/filter?name=&artistId=&active=
func (h *SerieHandler) Filter(c *gin.Context) {
	var f model.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := f.Validate(); err != nil {
		response.HandleError(c, err)
		return
	}

	result, err := h.service.Filter(c.Request.Context(), f)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Get handles GET /series/:id
func (h *SerieHandler) Get(c *gin.Context) {
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

// Create handles POST /series
func (h *SerieHandler) Create(c *gin.Context) {
	var req model.Serie
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

// Update handles PUT /series/:id
func (h *SerieHandler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req model.Serie
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

// Delete handles DELETE /series/:id
func (h *SerieHandler) Delete(c *gin.Context) {
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

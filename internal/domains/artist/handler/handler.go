package handler

import (
	"github.com/gin-gonic/gin"

	"xpose-backend/internal/domains/artist/model"
	"xpose-backend/internal/domains/artist/service"
	"xpose-backend/internal/shared/response"
	"xpose-backend/internal/shared/utils"
)

type ArtistHandler struct {
	service service.ServiceInterface
}

func NewArtistHandler(service service.ServiceInterface) *ArtistHandler {
	return &ArtistHandler{
		service: service,
	}
}

// List handles GET /artists
func (h *ArtistHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Filter handles GET /artists/filter?name=&surname=&artisticName=
func (h *ArtistHandler) Filter(c *gin.Context) {
	var f model.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Filter(c.Request.Context(), f)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Get handles GET /artists/:id
func (h *ArtistHandler) Get(c *gin.Context) {
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

// Create handles POST /artists
func (h *ArtistHandler) Create(c *gin.Context) {
	var req model.Artist
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

// Update handles PUT /artists/:id
func (h *ArtistHandler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req model.Artist
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

// Delete handles DELETE /artists/:id
func (h *ArtistHandler) Delete(c *gin.Context) {
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

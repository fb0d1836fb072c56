package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"xpose-backend/internal/domains/settings/model"
	"xpose-backend/internal/domains/settings/service"
	"xpose-backend/internal/shared/apperror"
	"xpose-backend/internal/shared/response"
	"xpose-backend/internal/shared/utils"
)

type SettingsHandler struct {
	service service.ServiceInterface
}

func NewSettingsHandler(service service.ServiceInterface) *SettingsHandler {
	return &SettingsHandler{
		service: service,
	}
}

// List handles GET /website-settings
func (h *SettingsHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Current handles GET /website-settings/contact
func (h *SettingsHandler) Current(c *gin.Context) {
	result, err := h.service.Current(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Get handles GET /website-settings/:id
func (h *SettingsHandler) Get(c *gin.Context) {
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

// Create handles POST /website-settings
func (h *SettingsHandler) Create(c *gin.Context) {
	var req model.WebsiteSettings
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

// Update handles PUT /website-settings/:id, either as JSON or as a flat
// multipart form with an optional logo "file".
func (h *SettingsHandler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var (
		req  model.WebsiteSettings
		logo *model.File
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		var form model.Form
		if err := c.ShouldBind(&form); err != nil {
			response.BadRequest(c, "Invalid request payload: "+err.Error())
			return
		}
		req = form.Settings()

		header, err := c.FormFile("file")
		switch {
		case err == nil && header.Size > 0:
			f, err := header.Open()
			if err != nil {
				response.HandleError(c, fmt.Errorf("open logo: %w", err))
				return
			}
			defer f.Close()
			logo = &model.File{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Body:        f,
			}
		case err != nil && !errors.Is(err, http.ErrMissingFile):
			response.HandleError(c, fmt.Errorf("%w: file: %v", apperror.ErrInvalid, err))
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req, logo)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete handles DELETE /website-settings/:id
func (h *SettingsHandler) Delete(c *gin.Context) {
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

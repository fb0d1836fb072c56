package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	artistModel "xpose-backend/internal/domains/artist/model"
	"xpose-backend/internal/domains/asset/model"
	serieModel "xpose-backend/internal/domains/serie/model"
	"xpose-backend/internal/shared/apperror"
	"xpose-backend/internal/shared/response"
	"xpose-backend/internal/shared/utils"
)

// UploadResponse is returned by POST /file/upload.
type UploadResponse struct {
	Message string       `json:"message"`
	URL     string       `json:"url"`
	Asset   *model.Asset `json:"asset"`
}

// Upload handles POST /file/upload
// Form: image, name, description, type, active, artistId, collectionId.
// Blank or "0" ids mean no association; the artist and the collection are linked independently.
func (h *AssetHandler) Upload(c *gin.Context) {
	file, err := filePart(c, "image")
	if err != nil {
		response.HandleError(c, err)
		return
	}
	if file == nil {
		response.HandleError(c, fmt.Errorf("image is required: %w", apperror.ErrInvalid))
		return
	}
	defer file.close()

	asset, err := uploadForm(c)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), *asset, &file.File)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.OK(c, UploadResponse{
		Message: "Uploaded as: " + created.URL,
		URL:     created.URL,
		Asset:   created,
	})
}

func uploadForm(c *gin.Context) (*model.Asset, error) {
	asset := &model.Asset{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Type:        c.PostForm("type"),
		Active:      strings.EqualFold(strings.TrimSpace(c.PostForm("active")), "true"),
		Authors:     make([]artistModel.Artist, 0),
		Series:      make([]serieModel.Serie, 0),
	}

	artistID, ok, err := utils.ParseOptionalID(c.PostForm("artistId"))
	if err != nil {
		return nil, fmt.Errorf("%w: artistId: %v", apperror.ErrInvalid, err)
	}
	if ok {
		asset.Authors = append(asset.Authors, artistModel.Artist{ID: artistID})
	}

	serieID, ok, err := utils.ParseOptionalID(c.PostForm("collectionId"))
	if err != nil {
		return nil, fmt.Errorf("%w: collectionId: %v", apperror.ErrInvalid, err)
	}
	if ok {
		asset.Series = append(asset.Series, serieModel.Serie{ID: serieID})
	}

	return asset, nil
}

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"xpose-backend/internal/domains/asset/model"
	"xpose-backend/internal/domains/asset/service"
	"xpose-backend/internal/shared/apperror"
	"xpose-backend/internal/shared/response"
	"xpose-backend/internal/shared/utils"
)

type AssetHandler struct {
	service service.ServiceInterface
}

func NewAssetHandler(service service.ServiceInterface) *AssetHandler {
	return &AssetHandler{
		service: service,
	}
}

// List handles GET /assets
func (h *AssetHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Filter handles GET /assets/filter?name=&type=&active=&artistId=&collectionId=
func (h *AssetHandler) Filter(c *gin.Context) {
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

// ListBySerie handles GET /assets/serie/:id
func (h *AssetHandler) ListBySerie(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ListBySerie(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// ListByArtist handles GET /assets/artist/:id
func (h *AssetHandler) ListByArtist(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ListByArtist(c.Request.Context(), id)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// PublicCollections handles GET /series/public
func (h *AssetHandler) PublicCollections(c *gin.Context) {
	result, err := h.service.PublicCollections(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Get handles GET /assets/:id
func (h *AssetHandler) Get(c *gin.Context) {
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

// Create handles POST /assets (multipart: "asset" JSON part + "file")
func (h *AssetHandler) Create(c *gin.Context) {
	asset, err := assetPart(c)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	file, err := filePart(c, "file")
	if err != nil {
		response.HandleError(c, err)
		return
	}
	if file == nil {
		response.HandleError(c, model.ErrFileRequired)
		return
	}
	defer file.close()

	result, err := h.service.Create(c.Request.Context(), *asset, &file.File)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Update handles PUT /assets/:id, either multipart ("asset" part + optional "file") or JSON.
func (h *AssetHandler) Update(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var (
		asset *model.Asset
		file  *upload
	)
	if isMultipart(c) {
		if asset, err = assetPart(c); err != nil {
			response.HandleError(c, err)
			return
		}
		if file, err = filePart(c, "file"); err != nil {
			response.HandleError(c, err)
			return
		}
	} else {
		asset = &model.Asset{}
		if err := c.ShouldBindJSON(asset); err != nil {
			response.BadRequest(c, "Invalid request payload: "+err.Error())
			return
		}
	}

	var blob *model.File
	if file != nil {
		defer file.close()
		blob = &file.File
	}

	result, err := h.service.Update(c.Request.Context(), id, *asset, blob)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete handles DELETE /assets/:id
func (h *AssetHandler) Delete(c *gin.Context) {
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

// Export handles GET /assets/export with the same parameters as Filter.
func (h *AssetHandler) Export(c *gin.Context) {
	var f model.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := f.Validate(); err != nil {
		response.HandleError(c, err)
		return
	}

	file, err := h.service.Export(c.Request.Context(), f)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="assets.xlsx"`)
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("Failed to write assets export")
	}
}

type upload struct {
	model.File
	closer io.Closer
}

func (u *upload) close() {
	if u.closer != nil {
		_ = u.closer.Close()
	}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/")
}

// filePart opens the named multipart file. A missing part returns nil, nil.
func filePart(c *gin.Context, name string) (*upload, error) {
	header, err := c.FormFile(name)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", apperror.ErrInvalid, name, err)
	}
	if header.Size == 0 {
		return nil, nil
	}
	return openUpload(header)
}

func openUpload(header *multipart.FileHeader) (*upload, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	return &upload{
		File: model.File{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        f,
		},
		closer: f,
	}, nil
}

// assetPart decodes the "asset" JSON part. Browsers send it either as a plain
// form value or as a Blob, which arrives as a file part.
func assetPart(c *gin.Context) (*model.Asset, error) {
	var raw []byte
	if v, ok := c.GetPostForm("asset"); ok {
		raw = []byte(v)
	} else if header, err := c.FormFile("asset"); err == nil {
		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("open asset part: %w", err)
		}
		defer f.Close()
		if raw, err = io.ReadAll(f); err != nil {
			return nil, fmt.Errorf("read asset part: %w", err)
		}
	} else {
		return nil, model.ErrAssetPart
	}

	var asset model.Asset
	if err := json.Unmarshal(raw, &asset); err != nil {
		return nil, fmt.Errorf("%w: asset part: %v", apperror.ErrInvalid, err)
	}
	return &asset, nil
}

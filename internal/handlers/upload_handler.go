package handlers

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/dto"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/middleware"
)

type ImageUploader interface {
	Upload(ctx context.Context, ownerID uuid.UUID, data []byte) (string, error)
}

type ImageValidator interface {
	Validate(data []byte) error
}

type UploadHandler struct {
	store     ImageUploader
	validator ImageValidator
}

func NewUploadHandler(store ImageUploader, validator ImageValidator) *UploadHandler {
	return &UploadHandler{store: store, validator: validator}
}

// ReferenceImage accepts a multipart "file" and answers with the URL to put
// in a booking's referenceImages.
func (h *UploadHandler) ReferenceImage(c *gin.Context) {
	userID := middleware.MustUserID(c)

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.Respond(c, httperr.ErrBusiness("invalid_request"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, storage.DefaultMaxBytes+1))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.validator.Validate(data); err != nil {
		log.Debug().Err(err).Msg("reference image rejected")
		httperr.Respond(c, httperr.ErrBusiness("invalid_image"))
		return
	}

	url, err := h.store.Upload(c.Request.Context(), userID, data)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.UploadResponse{URL: url})
}

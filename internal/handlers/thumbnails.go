package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"thumbnail-backend/internal/inference"
	"thumbnail-backend/internal/middleware"
	"thumbnail-backend/internal/models"
	"thumbnail-backend/internal/services"
)

type ThumbnailsHandler struct {
	service *services.GenerationService
	log     zerolog.Logger
}

func NewThumbnailsHandler(service *services.GenerationService, log zerolog.Logger) *ThumbnailsHandler {
	return &ThumbnailsHandler{
		service: service,
		log:     log,
	}
}

// GenerateThumbnail godoc
// @Summary     Generate a thumbnail
// @Description Composes a prompt from the request, tries each configured text-to-image model in order and uploads the first image produced. A record is created before generation and is always left succeeded or failed.
// @Tags        thumbnails
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.GenerateThumbnailRequest true "Generation request"
// @Success     200 {object} models.ThumbnailResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     429 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Failure     502 {object} models.GenerationErrorResponse
// @Router      /thumbnails/generate [post]
func (h *ThumbnailsHandler) GenerateThumbnail(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.GenerateThumbnailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
		})
		return
	}

	thumbnail, err := h.service.Generate(c.Request.Context(), userID, req)
	if err != nil {
		h.writeGenerateError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ThumbnailResponse{
		Message:   "Thumbnail generated successfully",
		Thumbnail: *thumbnail,
	})
}

func (h *ThumbnailsHandler) writeGenerateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrNoImage):
		resp := models.GenerationErrorResponse{
			Error:   "generation failed",
			Message: "Failed to generate image with any available model",
		}
		var genErr *inference.GenerationError
		if errors.As(err, &genErr) {
			resp.Model = genErr.Model
			resp.Status = genErr.Status
			resp.Body = genErr.Body
			if genErr.Err != nil {
				resp.Body = genErr.Err.Error()
			}
		}
		c.JSON(http.StatusBadGateway, resp)
	case errors.Is(err, services.ErrUpload):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to upload thumbnail",
			Message: err.Error(),
		})
	default:
		h.log.Error().Err(err).Msg("thumbnail generation error")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to generate thumbnail",
			Message: err.Error(),
		})
	}
}

// ListThumbnails godoc
// @Summary     List thumbnails
// @Description Returns the caller's thumbnails, newest first
// @Tags        thumbnails
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ThumbnailListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /thumbnails [get]
func (h *ThumbnailsHandler) ListThumbnails(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	thumbnails, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list thumbnails",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.ThumbnailListResponse{Thumbnails: thumbnails})
}

// GetThumbnail godoc
// @Summary     Get thumbnail
// @Description Returns one of the caller's thumbnails
// @Tags        thumbnails
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Thumbnail ID"
// @Success     200 {object} models.Thumbnail
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /thumbnails/{id} [get]
func (h *ThumbnailsHandler) GetThumbnail(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid thumbnail id"})
		return
	}

	thumbnail, err := h.service.Get(c.Request.Context(), id, userID)
	if errors.Is(err, models.ErrThumbnailNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "thumbnail not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to get thumbnail",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, thumbnail)
}

// DeleteThumbnail godoc
// @Summary     Delete thumbnail
// @Description Deletes the thumbnail if it belongs to the caller. The response is the same whether or not a matching record existed.
// @Tags        thumbnails
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Thumbnail ID"
// @Success     200 {object} models.MessageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /thumbnails/{id} [delete]
func (h *ThumbnailsHandler) DeleteThumbnail(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid thumbnail id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to delete thumbnail",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Thumbnail deleted successfully"})
}

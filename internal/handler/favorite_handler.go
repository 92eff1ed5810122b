package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutor-match-api/internal/dto"
	"github.com/noah-isme/tutor-match-api/pkg/middleware/cors"
	"github.com/noah-isme/tutor-match-api/pkg/response"
)

type favoriteService interface {
	List(ctx context.Context, deviceID string) (*dto.FavoriteList, error)
	Status(ctx context.Context, deviceID, classID string) (*dto.FavoriteStatus, error)
	Add(ctx context.Context, deviceID, classID string) (*dto.FavoriteStatus, error)
	Remove(ctx context.Context, deviceID, classID string) (*dto.FavoriteStatus, error)
}

// FavoriteHandler manages the favorite classes of a device identified by X-Device-ID.
type FavoriteHandler struct {
	service favoriteService
}

// NewFavoriteHandler builds a new handler.
func NewFavoriteHandler(service favoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// List godoc
// @Summary List favorite classes of the calling device
// @Tags Favorites
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Success 200 {object} response.Envelope
// @Router /favorites [get]
func (h *FavoriteHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), c.GetHeader(cors.DeviceHeader))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Status godoc
// @Summary Tell whether a class is a favorite
// @Tags Favorites
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Param classId path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /favorites/{classId} [get]
func (h *FavoriteHandler) Status(c *gin.Context) {
	h.respond(c, h.service.Status)
}

// Add godoc
// @Summary Mark a class as favorite
// @Tags Favorites
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Param classId path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /favorites/{classId} [put]
func (h *FavoriteHandler) Add(c *gin.Context) {
	h.respond(c, h.service.Add)
}

// Remove godoc
// @Summary Remove a class from favorites
// @Tags Favorites
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Param classId path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /favorites/{classId} [delete]
func (h *FavoriteHandler) Remove(c *gin.Context) {
	h.respond(c, h.service.Remove)
}

func (h *FavoriteHandler) respond(c *gin.Context, op func(ctx context.Context, deviceID, classID string) (*dto.FavoriteStatus, error)) {
	status, err := op(c.Request.Context(), c.GetHeader(cors.DeviceHeader), c.Param("classId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutor-match-api/internal/dto"
	"github.com/noah-isme/tutor-match-api/internal/models"
	appErrors "github.com/noah-isme/tutor-match-api/pkg/errors"
	"github.com/noah-isme/tutor-match-api/pkg/response"
)

type connectionService interface {
	Create(ctx context.Context, req dto.CreateConnectionRequest) (*models.Connection, error)
	Total(ctx context.Context, teacherID string) (*dto.ConnectionTotal, error)
}

// ConnectionHandler records and counts student-teacher connections.
type ConnectionHandler struct {
	service connectionService
}

// NewConnectionHandler builds a new handler.
func NewConnectionHandler(service connectionService) *ConnectionHandler {
	return &ConnectionHandler{service: service}
}

// Total godoc
// @Summary Count connections
// @Tags Connections
// @Produce json
// @Param teacher_id query string false "Restrict to one teacher"
// @Success 200 {object} response.Envelope
// @Router /connections [get]
func (h *ConnectionHandler) Total(c *gin.Context) {
	total, err := h.service.Total(c.Request.Context(), c.Query("teacher_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, total)
}

// Create godoc
// @Summary Record that a student contacted a teacher
// @Tags Connections
// @Accept json
// @Produce json
// @Param payload body dto.CreateConnectionRequest true "Connection payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /connections [post]
func (h *ConnectionHandler) Create(c *gin.Context) {
	var req dto.CreateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid connection payload"))
		return
	}
	conn, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, conn)
}

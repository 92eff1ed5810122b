package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutor-match-api/internal/dto"
	"github.com/noah-isme/tutor-match-api/internal/middleware"
	appErrors "github.com/noah-isme/tutor-match-api/pkg/errors"
	"github.com/noah-isme/tutor-match-api/pkg/response"
)

type classService interface {
	Search(ctx context.Context, query dto.SearchClassesQuery) ([]dto.ClassSearchResult, error)
	Get(ctx context.Context, id string) (*dto.ClassDetail, error)
	Register(ctx context.Context, req dto.CreateClassRequest) (*dto.ClassDetail, error)
}

// ClassHandler exposes class availability search and registration.
type ClassHandler struct {
	service classService
}

// NewClassHandler builds a new handler.
func NewClassHandler(service classService) *ClassHandler {
	return &ClassHandler{service: service}
}

// Search godoc
// @Summary Search available classes
// @Description Lists classes of a subject with a schedule slot covering the given week day and time.
// @Tags Classes
// @Produce json
// @Param subject query string true "Subject"
// @Param week_day query int true "Week day (0 = Sunday ... 6 = Saturday)"
// @Param time query string true "Time of day (HH:MM)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) Search(c *gin.Context) {
	var query dto.SearchClassesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid search filters"))
		return
	}
	results, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "count", len(results))
	response.JSON(c, http.StatusOK, results, middleware.ExtractMeta(c))
}

// Get godoc
// @Summary Get a class with its teacher and schedule
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail)
}

// Create godoc
// @Summary Register a teacher, a class and its weekly schedule
// @Description All rows are written in one transaction; nothing is stored when any part fails.
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body dto.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid class payload"))
		return
	}
	detail, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, detail)
}

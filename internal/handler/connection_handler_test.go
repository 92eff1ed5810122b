package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutor-match-api/internal/dto"
	"github.com/noah-isme/tutor-match-api/internal/models"
	appErrors "github.com/noah-isme/tutor-match-api/pkg/errors"
)

type connectionServiceMock struct {
	createErr   error
	total       int64
	lastTeacher string
	created     bool
}

func (m *connectionServiceMock) Create(ctx context.Context, req dto.CreateConnectionRequest) (*models.Connection, error) {
	m.created = true
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &models.Connection{ID: "conn-1", TeacherID: req.TeacherID}, nil
}

func (m *connectionServiceMock) Total(ctx context.Context, teacherID string) (*dto.ConnectionTotal, error) {
	m.lastTeacher = teacherID
	return &dto.ConnectionTotal{Total: m.total}, nil
}

func TestConnectionHandlerTotal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &connectionServiceMock{total: 7}
	handler := NewConnectionHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/connections?teacher_id=t-1", nil)

	handler.Total(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "t-1", mockSvc.lastTeacher)
	assert.JSONEq(t, `{"total":7}`, string(decodeEnvelope(t, w).Data))
}

func TestConnectionHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewConnectionHandler(&connectionServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/connections", bytes.NewBufferString(`{"teacher_id":"t-1"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestConnectionHandlerCreateUnknownTeacher(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &connectionServiceMock{createErr: appErrors.Clone(appErrors.ErrNotFound, "teacher not found")}
	handler := NewConnectionHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/connections", bytes.NewBufferString(`{"teacher_id":"t-1"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, mockSvc.created)
}

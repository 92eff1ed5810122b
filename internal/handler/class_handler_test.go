package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutor-match-api/internal/dto"
	appErrors "github.com/noah-isme/tutor-match-api/pkg/errors"
)

type classServiceMock struct {
	searchResp  []dto.ClassSearchResult
	searchErr   error
	getResp     *dto.ClassDetail
	getErr      error
	registerRes *dto.ClassDetail
	registerErr error
	lastQuery   dto.SearchClassesQuery
	lastRequest dto.CreateClassRequest
	registered  bool
}

func (m *classServiceMock) Search(ctx context.Context, query dto.SearchClassesQuery) ([]dto.ClassSearchResult, error) {
	m.lastQuery = query
	return m.searchResp, m.searchErr
}

func (m *classServiceMock) Get(ctx context.Context, id string) (*dto.ClassDetail, error) {
	return m.getResp, m.getErr
}

func (m *classServiceMock) Register(ctx context.Context, req dto.CreateClassRequest) (*dto.ClassDetail, error) {
	m.registered = true
	m.lastRequest = req
	return m.registerRes, m.registerErr
}

type envelopeBody struct {
	Data  json.RawMessage        `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelopeBody {
	t.Helper()
	var body envelopeBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestClassHandlerSearch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &classServiceMock{
		searchResp: []dto.ClassSearchResult{{ID: "class-1", TeacherID: "teacher-1", Subject: "Math", Cost: 80}},
	}
	handler := NewClassHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/classes?subject=Math&week_day=1&time=09:00", nil)

	handler.Search(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.SearchClassesQuery{Subject: "Math", WeekDay: "1", Time: "09:00"}, mockSvc.lastQuery)

	body := decodeEnvelope(t, w)
	var results []dto.ClassSearchResult
	require.NoError(t, json.Unmarshal(body.Data, &results))
	require.Len(t, results, 1)
	assert.Equal(t, "class-1", results[0].ID)
	assert.Equal(t, float64(1), body.Meta["count"])
}

func TestClassHandlerSearchEmptyListIsArray(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewClassHandler(&classServiceMock{searchResp: []dto.ClassSearchResult{}})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/classes?subject=Math&week_day=1&time=10:00", nil)

	handler.Search(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(decodeEnvelope(t, w).Data))
}

func TestClassHandlerSearchMissingParameter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewClassHandler(&classServiceMock{searchErr: appErrors.ErrMissingParameter})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/classes?subject=Math", nil)

	handler.Search(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeEnvelope(t, w)
	require.NotNil(t, body.Error)
	assert.Equal(t, "MISSING_PARAMETER", body.Error.Code)
	assert.Equal(t, "missing filters in search classes", body.Error.Message)
}

func TestClassHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &classServiceMock{registerRes: &dto.ClassDetail{ID: "class-1", Subject: "Math"}}
	handler := NewClassHandler(mockSvc)

	payload := `{"name":"Diego","avatar":"https://example.com/a.png","whatsapp":"5511","bio":"bio","subject":"Math","cost":80,
		"schedule":[{"week_day":1,"from":"08:00","to":"10:00"},{"week_day":"3","from":"14:00","to":"16:00"}]}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/classes", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, mockSvc.registered)
	require.Len(t, mockSvc.lastRequest.Schedule, 2)
	require.NotNil(t, mockSvc.lastRequest.Schedule[1].WeekDay)
	assert.EqualValues(t, 3, *mockSvc.lastRequest.Schedule[1].WeekDay)
	require.NotNil(t, mockSvc.lastRequest.Cost)
	assert.Equal(t, 80.0, *mockSvc.lastRequest.Cost)
}

func TestClassHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &classServiceMock{}
	handler := NewClassHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/classes", bytes.NewBufferString(`{"name":"Diego"`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mockSvc.registered)
}

func TestClassHandlerCreateRegistrationFailed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewClassHandler(&classServiceMock{registerErr: appErrors.ErrRegistrationFailed})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/classes", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, "unexpected error while creating new class", body.Error.Message)
}

func TestClassHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewClassHandler(&classServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "class not found")})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/classes/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

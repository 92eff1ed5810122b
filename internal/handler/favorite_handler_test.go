package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutor-match-api/internal/dto"
	appErrors "github.com/noah-isme/tutor-match-api/pkg/errors"
	"github.com/noah-isme/tutor-match-api/pkg/middleware/cors"
)

type favoriteServiceMock struct {
	lastDevice string
	lastClass  string
	lastOp     string
	err        error
}

func (m *favoriteServiceMock) record(op, deviceID, classID string) (*dto.FavoriteStatus, error) {
	m.lastOp, m.lastDevice, m.lastClass = op, deviceID, classID
	if m.err != nil {
		return nil, m.err
	}
	return &dto.FavoriteStatus{ClassID: classID, Favorited: op != "remove"}, nil
}

func (m *favoriteServiceMock) List(ctx context.Context, deviceID string) (*dto.FavoriteList, error) {
	m.lastOp, m.lastDevice = "list", deviceID
	return &dto.FavoriteList{ClassIDs: []string{"class-1"}}, m.err
}

func (m *favoriteServiceMock) Status(ctx context.Context, deviceID, classID string) (*dto.FavoriteStatus, error) {
	return m.record("status", deviceID, classID)
}

func (m *favoriteServiceMock) Add(ctx context.Context, deviceID, classID string) (*dto.FavoriteStatus, error) {
	return m.record("add", deviceID, classID)
}

func (m *favoriteServiceMock) Remove(ctx context.Context, deviceID, classID string) (*dto.FavoriteStatus, error) {
	return m.record("remove", deviceID, classID)
}

func TestFavoriteHandlerRoutesDeviceAndClass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &favoriteServiceMock{}
	handler := NewFavoriteHandler(mockSvc)

	r := gin.New()
	r.GET("/favorites", handler.List)
	r.GET("/favorites/:classId", handler.Status)
	r.PUT("/favorites/:classId", handler.Add)
	r.DELETE("/favorites/:classId", handler.Remove)

	cases := []struct {
		method string
		path   string
		op     string
	}{
		{http.MethodGet, "/favorites", "list"},
		{http.MethodGet, "/favorites/class-1", "status"},
		{http.MethodPut, "/favorites/class-1", "add"},
		{http.MethodDelete, "/favorites/class-1", "remove"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set(cors.DeviceHeader, "device-9")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, tc.path)
		assert.Equal(t, tc.op, mockSvc.lastOp)
		assert.Equal(t, "device-9", mockSvc.lastDevice)
	}
	assert.Equal(t, "class-1", mockSvc.lastClass)
}

func TestFavoriteHandlerDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewFavoriteHandler(&favoriteServiceMock{err: appErrors.ErrUnavailable})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPut, "/favorites/class-1", nil)
	c.Params = gin.Params{{Key: "classId", Value: "class-1"}}

	handler.Add(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

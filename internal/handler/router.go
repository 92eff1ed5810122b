package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Handlers groups the endpoint handlers mounted by RegisterRoutes.
type Handlers struct {
	Classes     *ClassHandler
	Connections *ConnectionHandler
	Favorites   *FavoriteHandler
	Metrics     *MetricsHandler
}

// RegisterRoutes mounts operational endpoints at the root and the API under prefix.
// A nil Favorites handler leaves the favorites routes unregistered.
func RegisterRoutes(r gin.IRouter, prefix string, h Handlers) {
	if h.Metrics != nil {
		r.GET("/health", h.Metrics.Health)
		r.GET("/ready", h.Metrics.Ready)
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	api := r.Group("/" + strings.Trim(prefix, "/"))

	if h.Classes != nil {
		classes := api.Group("/classes")
		classes.GET("", h.Classes.Search)
		classes.POST("", h.Classes.Create)
		classes.GET("/:id", h.Classes.Get)
	}

	if h.Connections != nil {
		connections := api.Group("/connections")
		connections.GET("", h.Connections.Total)
		connections.POST("", h.Connections.Create)
	}

	if h.Favorites != nil {
		favorites := api.Group("/favorites")
		favorites.GET("", h.Favorites.List)
		favorites.GET("/:classId", h.Favorites.Status)
		favorites.PUT("/:classId", h.Favorites.Add)
		favorites.DELETE("/:classId", h.Favorites.Remove)
	}
}

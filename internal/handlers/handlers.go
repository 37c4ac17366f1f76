// Package handlers implements the HTTP endpoints of the recommendation API.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/filmyfim/filmyfim/internal/metrics"
	"github.com/filmyfim/filmyfim/internal/models"
	"github.com/filmyfim/filmyfim/pkg/logger"
)

// Recommender produces recommendations for a seed title.
type Recommender interface {
	Recommend(ctx context.Context, seed string) ([]models.MovieRecord, error)
}

// FeaturedSource produces the featured-movies sample.
type FeaturedSource interface {
	Featured(ctx context.Context) ([]models.MovieRecord, error)
}

// Handler handles HTTP requests for the recommendation API.
type Handler struct {
	recommender Recommender
	featured    FeaturedSource
	logger      logger.Logger
}

// New creates a new Handler.
func New(recommender Recommender, featured FeaturedSource, log logger.Logger) *Handler {
	return &Handler{
		recommender: recommender,
		featured:    featured,
		logger:      log,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.handleHome)
	r.GET("/featured-movies", h.handleFeatured)
	r.POST("/recommend", h.handleRecommend)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func (h *Handler) handleHome(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok", Message: "Server is running"})
}

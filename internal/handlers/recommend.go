package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/filmyfim/filmyfim/internal/errors"
	"github.com/filmyfim/filmyfim/internal/models"
)

func (h *Handler) handleRecommend(c *gin.Context) {
	var req models.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperrors.NewInvalidRequestError("movie_title is required"))
		return
	}

	h.logger.Infof("[RecommendHandler] processing recommendation request for %q", req.MovieTitle)

	movies, err := h.recommender.Recommend(c.Request.Context(), req.MovieTitle)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RecommendResponse{Recommendations: movies})
}

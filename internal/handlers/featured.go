package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/filmyfim/filmyfim/internal/models"
)

func (h *Handler) handleFeatured(c *gin.Context) {
	movies, err := h.featured.Featured(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.FeaturedResponse{Movies: movies})
}

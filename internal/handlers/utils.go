package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/filmyfim/filmyfim/internal/errors"
	"github.com/filmyfim/filmyfim/internal/models"
)

// respondError writes {"detail": ...} with a status chosen from the error type.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if apperrors.IsType(err, apperrors.ErrorTypeInvalidRequest) {
		status = http.StatusBadRequest
	}

	if status >= 500 {
		h.logger.Errorf("[Handler] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
	} else {
		h.logger.Warnf("[Handler] %s %s rejected: %v", c.Request.Method, c.FullPath(), err)
	}

	c.AbortWithStatusJSON(status, models.ErrorResponse{Detail: err.Error()})
}

package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/unscroll/unscroll/internal/errors"
	"github.com/unscroll/unscroll/internal/logger"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondServiceError maps validation errors to 400 and everything else
// to 500.
func respondServiceError(c *gin.Context, err error) {
	if v, ok := apperrors.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": v.Message, "field": v.Field})
		return
	}
	logger.Error("Request failed", "path", c.FullPath(), "error", err)
	respondError(c, http.StatusInternalServerError, "internal error")
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseIntParam(c *gin.Context, key string) (int, bool) {
	v, err := strconv.Atoi(c.Param(key))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid "+key)
		return 0, false
	}
	return v, true
}

package http

import (
	"errors"
	"net/http"
	"strconv"

	"yamdb/internal/entity"
	"yamdb/internal/permissions"
	"yamdb/pkg/logger"
	"yamdb/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto status codes: field failures and
// storage conflicts are 400, missing or mis-scoped records 404, ownership
// and role failures 403. Anything else is a logged 500.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	var vErr *entity.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": vErr.Fields})
		return
	}
	if errors.Is(err, entity.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if errors.Is(err, entity.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
		return
	}
	log.Error("Request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// requirePermission enforces an endpoint-level decision before the handler
// touches the use case; unauthenticated and under-privileged callers get
// distinct statuses.
func requirePermission(c *gin.Context, decision permissions.Decision) bool {
	switch decision {
	case permissions.Allow:
		return true
	case permissions.Unauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided"})
		return false
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
		return false
	}
}

func currentUser(c *gin.Context) *entity.User {
	return middleware.CurrentUser(c)
}

func parsePagination(c *gin.Context) (limit, offset int) {
	limit = 20
	offset = 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > 100 {
				l = 100
			}
			limit = l
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}

package api

import (
	"errors"
	"net/http"
	"strconv"

	"lifehub/internal/domain"

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// respondError maps service failures onto status codes uniformly: the typed
// not-found sentinel becomes 404, rejected transitions and guarded balances
// become 409, everything else is an infrastructure failure logged as 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInsufficientPoints),
		errors.Is(err, domain.ErrInsufficientQuantity):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"error":  err.Error(),
		}).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// bindError reports a validation/binding failure.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
}

// pathID parses the named path parameter as a UUID, answering 400 itself on
// failure.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// ownerID parses the required user_id query parameter. Owner scoping is
// explicit: the id travels with every list query instead of living in
// ambient context.
func ownerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id query parameter is required"})
		return uuid.Nil, false
	}
	return id, true
}

// boolQuery parses an optional boolean query parameter, answering 400 on a
// malformed value. A missing parameter returns nil.
func boolQuery(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return nil, false
	}
	return &v, true
}

// matchBodyID enforces that an id carried in a request body agrees with the
// path id. Mismatch is a 400 before the handler runs.
func matchBodyID(c *gin.Context, pathID, bodyID uuid.UUID) bool {
	if bodyID != uuid.Nil && bodyID != pathID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body id does not match path id"})
		return false
	}
	return true
}

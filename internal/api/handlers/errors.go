package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carrental/internal/domain/entities"
)

// errorCodes maps engine error kinds to a stable machine-readable code and an
// HTTP status. Order matters only for readability; kinds never wrap each
// other.
var errorCodes = []struct {
	kind   error
	code   string
	status int
}{
	{entities.ErrNotFound, "not_found", http.StatusNotFound},
	{entities.ErrDuplicateID, "duplicate_id", http.StatusConflict},
	{entities.ErrCarUnavailable, "car_unavailable", http.StatusConflict},
	{entities.ErrAlreadyClosed, "already_closed", http.StatusConflict},
	{entities.ErrInvalidDuration, "invalid_duration", http.StatusBadRequest},
	{entities.ErrInvalidDate, "invalid_date", http.StatusBadRequest},
	{entities.ErrInvalidRate, "invalid_rate", http.StatusBadRequest},
	{entities.ErrInvalidCategory, "invalid_category", http.StatusBadRequest},
	{entities.ErrInvalidDriver, "invalid_driver", http.StatusBadRequest},
	{context.DeadlineExceeded, "timeout", http.StatusServiceUnavailable},
	{context.Canceled, "canceled", http.StatusServiceUnavailable},
}

// writeError translates err into a JSON error response.
func writeError(c *gin.Context, err error) {
	for _, e := range errorCodes {
		if errors.Is(err, e.kind) {
			c.JSON(e.status, gin.H{"error": e.code, "message": err.Error()})
			return
		}
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "not authorized"})
}

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"calculator-backend/internal/parse"
	"calculator-backend/internal/runloop"
	"calculator-backend/internal/session"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	sessions *session.Registry
}

// NewHandler creates a new API handler.
func NewHandler(sessions *session.Registry) *Handler {
	return &Handler{sessions: sessions}
}

// session resolves the :id path parameter, writing a 404 when it is unknown.
func (h *Handler) session(c *gin.Context) (*session.Session, bool) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}
	return s, true
}

// abortWithError maps domain errors onto HTTP statuses.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, runloop.ErrStopped):
		status = http.StatusNotFound
	case errors.Is(err, parse.ErrUnknownCommand), errors.Is(err, parse.ErrInvalidToken):
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

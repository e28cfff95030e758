package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"calculator-backend/internal/parse"
)

// CreateSession handles POST /api/sessions.
func (h *Handler) CreateSession(c *gin.Context) {
	s, err := h.sessions.Create()
	if err != nil {
		abortWithError(c, err)
		return
	}

	snap, err := s.Snapshot(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

// GetSession handles GET /api/sessions/:id.
func (h *Handler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	snap, err := s.Snapshot(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// DeleteSession handles DELETE /api/sessions/:id.
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type commandRequest struct {
	Command string `json:"command" binding:"required"`
	Token   string `json:"token"`
}

// PostCommand handles POST /api/sessions/:id/commands, one button press per request.
func (h *Handler) PostCommand(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd, err := parse.ParseCommand(req.Command, req.Token)
	if err != nil {
		abortWithError(c, err)
		return
	}

	s, ok := h.session(c)
	if !ok {
		return
	}

	snap, err := s.Exec(c.Request.Context(), cmd)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

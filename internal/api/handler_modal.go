package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"calculator-backend/internal/modal"
)

type modalResponse struct {
	Open bool `json:"open"`
	*modal.View
}

func renderModal(c *gin.Context, v *modal.View) {
	c.JSON(http.StatusOK, modalResponse{Open: v != nil, View: v})
}

// GetModal handles GET /api/sessions/:id/modal.
func (h *Handler) GetModal(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	v, err := s.Modal(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	renderModal(c, v)
}

// OpenModal handles POST /api/sessions/:id/modal/open.
func (h *Handler) OpenModal(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	v, err := s.OpenModal(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	renderModal(c, v)
}

// CloseModal handles POST /api/sessions/:id/modal/close.
func (h *Handler) CloseModal(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.CloseModal(c.Request.Context()); err != nil {
		abortWithError(c, err)
		return
	}
	renderModal(c, nil)
}

package api

import (
	"github.com/gin-gonic/gin"
)

// StreamDisplay handles GET /api/sessions/:id/events. It sends the current
// display followed by every later write, including the deferred ones from
// the hello and bye commands.
func (h *Handler) StreamDisplay(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	updates, unsubscribe := s.Subscribe()
	defer unsubscribe()

	ctx := c.Request.Context()
	snap, err := s.Snapshot(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent("display", snap.Display)
	c.Writer.Flush()

	for {
		select {
		case text, open := <-updates:
			if !open {
				return
			}
			c.SSEvent("display", text)
			c.Writer.Flush()
		case <-ctx.Done():
			return
		}
	}
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/promptstash/promptstash/internal/i18n"
)

// ListActivity returns the workspace's most recent audit trail entries
func (h *Handler) ListActivity(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := h.db.ListActivity(c.Request.Context(), s.workspaceID, limit)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(200, entries)
}

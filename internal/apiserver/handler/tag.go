package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/promptstash/promptstash/internal/apiserver/database"
	"github.com/promptstash/promptstash/internal/common/cnst"
	"github.com/promptstash/promptstash/internal/common/dto"
	"github.com/promptstash/promptstash/internal/i18n"
	"github.com/promptstash/promptstash/internal/validator"
)

// ListTags returns the workspace's tags
func (h *Handler) ListTags(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	tags, err := h.db.ListTags(c.Request.Context(), s.workspaceID)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(200, tags)
}

// CreateTag creates a tag in the session workspace
func (h *Handler) CreateTag(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	var req dto.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}
	if err := validator.Validate(
		validator.Required("name", req.Name),
		validator.MaxLen("name", req.Name, 50),
	); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	tag := &database.Tag{WorkspaceID: s.workspaceID, Name: req.Name}
	if err := h.db.CreateTag(c.Request.Context(), tag); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logActivity(c, s, cnst.ActionCreate, cnst.EntityTag, tag.ID, tag.Name)
	i18n.Created(i18n.SuccessTagCreated).WithPayload(tag).Send(c)
}

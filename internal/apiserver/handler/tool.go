package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/promptstash/promptstash/internal/apiserver/database"
	"github.com/promptstash/promptstash/internal/common/cnst"
	"github.com/promptstash/promptstash/internal/common/dto"
	"github.com/promptstash/promptstash/internal/i18n"
	"github.com/promptstash/promptstash/internal/validator"
)

func validateTool(req *dto.ToolRequest) error {
	return validator.Validate(
		validator.Required("name", req.Name),
		validator.MaxLen("name", req.Name, 200),
		validator.OneOf("masteryLevel", req.MasteryLevel, "beginner", "intermediate", "advanced", "expert"),
		validator.PositiveIDs("tagIds", req.TagIDs),
	)
}

// resolveTags loads the referenced tags and rejects ids outside the workspace
func (h *Handler) resolveTags(ctx context.Context, workspaceID uint, ids []uint) ([]*database.Tag, error) {
	if ids == nil {
		return nil, nil
	}
	tags, err := h.db.GetTagsByIDs(ctx, workspaceID, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, i18n.ErrorTagNotFound
	}
	return tags, nil
}

// checkCategory verifies a category reference points inside the workspace
func (h *Handler) checkCategory(ctx context.Context, workspaceID uint, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}
	if _, err := h.db.GetCategoryByID(ctx, workspaceID, *categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return i18n.ErrorCategoryNotFound
		}
		return err
	}
	return nil
}

// ListTools returns the workspace's non-archived tools
func (h *Handler) ListTools(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	tools, err := h.db.ListTools(c.Request.Context(), s.workspaceID, c.Query("search"))
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(200, tools)
}

// GetTool returns a single tool by id
func (h *Handler) GetTool(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		i18n.Error(i18n.ErrorToolNotFound).Send(c)
		return
	}

	tool, err := h.db.GetToolByID(c.Request.Context(), s.workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			i18n.Error(i18n.ErrorToolNotFound).Send(c)
			return
		}
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(200, tool)
}

// CreateTool creates a tool in the session workspace
func (h *Handler) CreateTool(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	var req dto.ToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}
	if err := validateTool(&req); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.checkCategory(ctx, s.workspaceID, req.CategoryID); err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	tags, err := h.resolveTags(ctx, s.workspaceID, req.TagIDs)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	tool := &database.Tool{
		WorkspaceID:    s.workspaceID,
		Name:           req.Name,
		Description:    req.Description,
		Prerequisites:  req.Prerequisites,
		CommonMistakes: req.CommonMistakes,
		BestPractices:  req.BestPractices,
		MasteryLevel:   req.MasteryLevel,
		CategoryID:     req.CategoryID,
		Tags:           tags,
	}
	if err := h.db.CreateTool(ctx, tool); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logActivity(c, s, cnst.ActionCreate, cnst.EntityTool, tool.ID, tool.Name)
	i18n.Created(i18n.SuccessToolCreated).WithPayload(tool).Send(c)
}

// UpdateTool updates a tool and, when tagIds is present, its tag set
func (h *Handler) UpdateTool(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		i18n.Error(i18n.ErrorToolNotFound).Send(c)
		return
	}

	var req dto.ToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}
	if err := validateTool(&req); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	tool, err := h.db.GetToolByID(ctx, s.workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			i18n.Error(i18n.ErrorToolNotFound).Send(c)
			return
		}
		i18n.RespondWithError(c, err)
		return
	}

	if err := h.checkCategory(ctx, s.workspaceID, req.CategoryID); err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	tags, err := h.resolveTags(ctx, s.workspaceID, req.TagIDs)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	tool.Name = req.Name
	tool.Description = req.Description
	tool.Prerequisites = req.Prerequisites
	tool.CommonMistakes = req.CommonMistakes
	tool.BestPractices = req.BestPractices
	tool.MasteryLevel = req.MasteryLevel
	tool.CategoryID = req.CategoryID
	if err := h.db.UpdateTool(ctx, tool, tags); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	updated, err := h.db.GetToolByID(ctx, s.workspaceID, id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logActivity(c, s, cnst.ActionUpdate, cnst.EntityTool, updated.ID, updated.Name)
	i18n.Success(i18n.SuccessToolUpdated).WithPayload(updated).Send(c)
}

// ArchiveTool hides a tool from list responses without deleting it
func (h *Handler) ArchiveTool(c *gin.Context) {
	h.setToolArchived(c, true)
}

// UnarchiveTool returns an archived tool to list responses
func (h *Handler) UnarchiveTool(c *gin.Context) {
	h.setToolArchived(c, false)
}

func (h *Handler) setToolArchived(c *gin.Context, archived bool) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		i18n.Error(i18n.ErrorToolNotFound).Send(c)
		return
	}

	if err := h.db.SetToolArchived(c.Request.Context(), s.workspaceID, id, archived); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			i18n.Error(i18n.ErrorToolNotFound).Send(c)
			return
		}
		i18n.RespondWithError(c, err)
		return
	}

	h.logActivity(c, s, cnst.ActionArchive, cnst.EntityTool, id, "")
	i18n.Success(i18n.SuccessToolArchived).With("archived", archived).Send(c)
}

// DeleteTool permanently removes a tool
func (h *Handler) DeleteTool(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		i18n.Error(i18n.ErrorToolNotFound).Send(c)
		return
	}

	tool, err := h.db.GetToolByID(c.Request.Context(), s.workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			i18n.Error(i18n.ErrorToolNotFound).Send(c)
			return
		}
		i18n.RespondWithError(c, err)
		return
	}

	if err := h.db.DeleteTool(c.Request.Context(), s.workspaceID, id); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logActivity(c, s, cnst.ActionDelete, cnst.EntityTool, id, tool.Name)
	i18n.Success(i18n.SuccessToolDeleted).Send(c)
}

// ToggleToolFavorite flips the favorite flag on a tool
func (h *Handler) ToggleToolFavorite(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		i18n.Error(i18n.ErrorToolNotFound).Send(c)
		return
	}

	tool, err := h.db.ToggleToolFavorite(c.Request.Context(), s.workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			i18n.Error(i18n.ErrorToolNotFound).Send(c)
			return
		}
		i18n.RespondWithError(c, err)
		return
	}

	i18n.Success(i18n.SuccessFavoriteToggled).WithPayload(tool).Send(c)
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/promptstash/promptstash/internal/apiserver/database"
	"github.com/promptstash/promptstash/internal/common/cnst"
	"github.com/promptstash/promptstash/internal/common/dto"
	"github.com/promptstash/promptstash/internal/i18n"
	"github.com/promptstash/promptstash/internal/validator"
)

func validateCategory(req *dto.CategoryRequest) error {
	return validator.Validate(
		validator.Required("name", req.Name),
		validator.MaxLen("name", req.Name, 100),
		validator.MaxLen("color", req.Color, 20),
	)
}

// ListCategories returns the workspace's categories
func (h *Handler) ListCategories(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	categories, err := h.db.ListCategories(c.Request.Context(), s.workspaceID, c.Query("search"))
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(200, categories)
}

// CreateCategory creates a category in the session workspace
func (h *Handler) CreateCategory(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}
	if err := validateCategory(&req); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	category := &database.Category{
		WorkspaceID: s.workspaceID,
		Name:        req.Name,
		Color:       req.Color,
		Icon:        req.Icon,
	}
	if err := h.db.CreateCategory(c.Request.Context(), category); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logActivity(c, s, cnst.ActionCreate, cnst.EntityCategory, category.ID, category.Name)
	i18n.Created(i18n.SuccessCategoryCreated).WithPayload(category).Send(c)
}

// UpdateCategory updates a category in the session workspace
func (h *Handler) UpdateCategory(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		i18n.Error(i18n.ErrorCategoryNotFound).Send(c)
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}
	if err := validateCategory(&req); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	category, err := h.db.GetCategoryByID(c.Request.Context(), s.workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			i18n.Error(i18n.ErrorCategoryNotFound).Send(c)
			return
		}
		i18n.RespondWithError(c, err)
		return
	}

	category.Name = req.Name
	category.Color = req.Color
	category.Icon = req.Icon
	if err := h.db.UpdateCategory(c.Request.Context(), category); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logActivity(c, s, cnst.ActionUpdate, cnst.EntityCategory, category.ID, category.Name)
	i18n.Success(i18n.SuccessCategoryUpdated).WithPayload(category).Send(c)
}

// DeleteCategory removes a category from the session workspace
func (h *Handler) DeleteCategory(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		i18n.Error(i18n.ErrorCategoryNotFound).Send(c)
		return
	}

	category, err := h.db.GetCategoryByID(c.Request.Context(), s.workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			i18n.Error(i18n.ErrorCategoryNotFound).Send(c)
			return
		}
		i18n.RespondWithError(c, err)
		return
	}

	if err := h.db.DeleteCategory(c.Request.Context(), s.workspaceID, id); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logActivity(c, s, cnst.ActionDelete, cnst.EntityCategory, id, category.Name)
	i18n.Success(i18n.SuccessCategoryDeleted).Send(c)
}

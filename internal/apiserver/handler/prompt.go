package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/promptstash/promptstash/internal/apiserver/database"
	"github.com/promptstash/promptstash/internal/common/cnst"
	"github.com/promptstash/promptstash/internal/common/dto"
	"github.com/promptstash/promptstash/internal/i18n"
	"github.com/promptstash/promptstash/internal/template"
	"github.com/promptstash/promptstash/internal/validator"
)

func validatePrompt(req *dto.PromptRequest) error {
	return validator.Validate(
		validator.Required("title", req.Title),
		validator.MaxLen("title", req.Title, 200),
		validator.Required("content", req.Content),
	)
}

// ListPrompts returns the workspace's prompts
func (h *Handler) ListPrompts(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	prompts, err := h.db.ListPrompts(c.Request.Context(), s.workspaceID, c.Query("search"))
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(200, prompts)
}

// GetPrompt returns a prompt with its test runs
func (h *Handler) GetPrompt(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	prompt, ok := h.loadPrompt(c, s)
	if !ok {
		return
	}
	c.JSON(200, prompt)
}

// loadPrompt resolves the :id path parameter to a workspace-scoped prompt,
// writing the error response itself when the prompt cannot be loaded
func (h *Handler) loadPrompt(c *gin.Context, s *session) (*database.Prompt, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		i18n.Error(i18n.ErrorPromptNotFound).Send(c)
		return nil, false
	}

	prompt, err := h.db.GetPromptByID(c.Request.Context(), s.workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			i18n.Error(i18n.ErrorPromptNotFound).Send(c)
			return nil, false
		}
		i18n.RespondWithError(c, err)
		return nil, false
	}
	return prompt, true
}

// CreatePrompt creates a prompt in the session workspace
func (h *Handler) CreatePrompt(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	var req dto.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}
	if err := validatePrompt(&req); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	prompt := &database.Prompt{
		WorkspaceID: s.workspaceID,
		Title:       req.Title,
		Content:     req.Content,
	}
	if err := h.db.CreatePrompt(c.Request.Context(), prompt); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logActivity(c, s, cnst.ActionCreate, cnst.EntityPrompt, prompt.ID, prompt.Title)
	i18n.Created(i18n.SuccessPromptCreated).WithPayload(prompt).Send(c)
}

// UpdatePrompt updates a prompt's title and content
func (h *Handler) UpdatePrompt(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	var req dto.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}
	if err := validatePrompt(&req); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	prompt, ok := h.loadPrompt(c, s)
	if !ok {
		return
	}

	prompt.Title = req.Title
	prompt.Content = req.Content
	if err := h.db.UpdatePrompt(c.Request.Context(), prompt); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logActivity(c, s, cnst.ActionUpdate, cnst.EntityPrompt, prompt.ID, prompt.Title)
	i18n.Success(i18n.SuccessPromptUpdated).WithPayload(prompt).Send(c)
}

// DeletePrompt removes a prompt together with its test runs
func (h *Handler) DeletePrompt(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	prompt, ok := h.loadPrompt(c, s)
	if !ok {
		return
	}

	if err := h.db.DeletePrompt(c.Request.Context(), s.workspaceID, prompt.ID); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logActivity(c, s, cnst.ActionDelete, cnst.EntityPrompt, prompt.ID, prompt.Title)
	i18n.Success(i18n.SuccessPromptDeleted).Send(c)
}

// TogglePromptFavorite flips the favorite flag on a prompt
func (h *Handler) TogglePromptFavorite(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		i18n.Error(i18n.ErrorPromptNotFound).Send(c)
		return
	}

	prompt, err := h.db.TogglePromptFavorite(c.Request.Context(), s.workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			i18n.Error(i18n.ErrorPromptNotFound).Send(c)
			return
		}
		i18n.RespondWithError(c, err)
		return
	}

	i18n.Success(i18n.SuccessFavoriteToggled).WithPayload(prompt).Send(c)
}

// ListPromptTests returns a prompt's test runs, oldest first
func (h *Handler) ListPromptTests(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	prompt, ok := h.loadPrompt(c, s)
	if !ok {
		return
	}

	tests, err := h.db.ListPromptTests(c.Request.Context(), prompt.ID)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(200, tests)
}

// CreatePromptTest records a test run. A rated run recomputes the prompt's
// average rating.
func (h *Handler) CreatePromptTest(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	prompt, ok := h.loadPrompt(c, s)
	if !ok {
		return
	}

	var req dto.PromptTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}
	if err := validator.Validate(
		validator.Required("output", req.Output),
		validator.IntRange("rating", req.Rating, 1, 5),
	); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	test := &database.PromptTest{
		PromptID:  prompt.ID,
		Input:     req.Input,
		Output:    req.Output,
		IsSuccess: req.IsSuccess,
		Rating:    req.Rating,
		Notes:     req.Notes,
		Model:     req.Model,
	}
	if err := h.db.CreatePromptTest(c.Request.Context(), test); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logActivity(c, s, cnst.ActionCreate, cnst.EntityPromptTest, test.ID, prompt.Title)
	i18n.Created(i18n.SuccessPromptTestCreated).WithPayload(test).Send(c)
}

// RenderPrompt substitutes {{variable}} tokens in the prompt body with the
// supplied values. Tokens without a value are left untouched.
func (h *Handler) RenderPrompt(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	prompt, ok := h.loadPrompt(c, s)
	if !ok {
		return
	}

	var req dto.RenderPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}

	c.JSON(200, dto.RenderPromptResponse{
		Content:   template.ReplaceVariables(prompt.Content, req.Values),
		Variables: template.ExtractVariables(prompt.Content),
	})
}

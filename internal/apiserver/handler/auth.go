package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/promptstash/promptstash/internal/apiserver/middleware"
	"github.com/promptstash/promptstash/internal/common/dto"
	"github.com/promptstash/promptstash/internal/i18n"
)

const minPasswordLength = 8

// Login authenticates a user and returns a signed token
func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrorEmailPasswordRequired).Send(c)
		return
	}
	if req.Email == "" || req.Password == "" {
		i18n.Error(i18n.ErrorEmailPasswordRequired).Send(c)
		return
	}

	user, err := h.db.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		i18n.Error(i18n.ErrorInvalidCredentials).Send(c)
		return
	}
	if !user.IsActive {
		i18n.Error(i18n.ErrorUserDisabled).Send(c)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		i18n.Error(i18n.ErrorInvalidCredentials).Send(c)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Uint("user_id", user.ID), zap.Error(err))
		i18n.Error(i18n.ErrorTokenGenerationFailure).Send(c)
		return
	}

	i18n.Success(i18n.SuccessLogin).WithPayload(dto.LoginResponse{
		Token: token,
		User:  user,
	}).Send(c)
}

// GetSession returns the authenticated user together with the workspace the
// session is bound to
func (h *Handler) GetSession(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	workspaces := make([]dto.WorkspaceSummary, 0, len(s.memberships))
	for _, m := range s.memberships {
		summary := dto.WorkspaceSummary{
			ID:       m.WorkspaceID,
			Role:     string(m.Role),
			JoinedAt: m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if m.Workspace != nil {
			summary.Name = m.Workspace.Name
			summary.Slug = m.Workspace.Slug
		}
		workspaces = append(workspaces, summary)
	}

	c.JSON(200, dto.SessionResponse{
		User:            s.user,
		ActiveWorkspace: &workspaces[0],
		Workspaces:      workspaces,
	})
}

// ChangePassword updates the authenticated user's password
func (h *Handler) ChangePassword(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		i18n.Error(i18n.ErrUnauthorized).Send(c)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}
	if len(req.NewPassword) < minPasswordLength {
		i18n.ErrorWithParam(i18n.ErrorPasswordTooShort, "Min", minPasswordLength).Send(c)
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		i18n.Error(i18n.ErrUnauthorized).Send(c)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		i18n.Error(i18n.ErrorInvalidOldPassword).Send(c)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}
	user.Password = string(hashed)
	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	i18n.Success(i18n.SuccessPasswordChanged).Send(c)
}

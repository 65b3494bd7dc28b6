package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/promptstash/promptstash/internal/apiserver/cache"
	"github.com/promptstash/promptstash/internal/apiserver/database"
	"github.com/promptstash/promptstash/internal/apiserver/middleware"
	"github.com/promptstash/promptstash/internal/auth/jwt"
	"github.com/promptstash/promptstash/internal/common/cnst"
	"github.com/promptstash/promptstash/internal/common/config"
	"github.com/promptstash/promptstash/internal/i18n"
	"github.com/promptstash/promptstash/internal/storage"
	"github.com/promptstash/promptstash/pkg/metrics"
)

// Handler holds the dependencies shared by all HTTP handlers
type Handler struct {
	db         database.Database
	jwtService *jwt.Service
	store      storage.Store
	cache      cache.Cache
	cacheTTL   time.Duration
	youtube    config.YouTubeConfig
	httpClient *http.Client
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewHandler creates a new Handler
func NewHandler(
	db database.Database,
	jwtService *jwt.Service,
	store storage.Store,
	c cache.Cache,
	cfg *config.APIServerConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Handler {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Handler{
		db:         db,
		jwtService: jwtService,
		store:      store,
		cache:      c,
		cacheTTL:   ttl,
		youtube:    cfg.YouTube,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		metrics:    m,
		logger:     logger,
	}
}

// parseIDParam reads a positive numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// session is the resolved request identity: the authenticated user plus the
// workspace every data access is scoped to.
type session struct {
	user        *database.User
	workspaceID uint
	memberships []*database.WorkspaceMember
}

// resolveSession loads the user behind the validated JWT claims and binds the
// request to the user's earliest workspace membership. Users without any
// membership are rejected.
func (h *Handler) resolveSession(c *gin.Context) (*session, error) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return nil, i18n.ErrUnauthorized
	}

	user, err := h.db.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		return nil, i18n.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, i18n.ErrorUserDisabled
	}

	memberships, err := h.db.ListWorkspaceMemberships(c.Request.Context(), user.ID)
	if err != nil {
		return nil, err
	}
	// Indistinguishable from a missing token: membership state must not
	// leak to unauthorized callers.
	if len(memberships) == 0 {
		return nil, i18n.ErrUnauthorized
	}

	return &session{
		user:        user,
		workspaceID: memberships[0].WorkspaceID,
		memberships: memberships,
	}, nil
}

// logActivity appends an audit trail entry. Failures are logged and never
// surface to the client: the mutation already succeeded.
func (h *Handler) logActivity(c *gin.Context, s *session, action cnst.ActionType, entityType cnst.EntityType, entityID uint, label string) {
	entry := &database.ActivityLog{
		WorkspaceID: s.workspaceID,
		UserID:      s.user.ID,
		Action:      string(action),
		EntityType:  string(entityType),
		EntityID:    entityID,
		EntityLabel: truncateLabel(label),
	}
	if err := h.db.AppendActivity(c.Request.Context(), entry); err != nil {
		h.logger.Warn("failed to append activity log",
			zap.String("action", string(action)),
			zap.String("entity_type", string(entityType)),
			zap.Uint("entity_id", entityID),
			zap.Error(err))
	}
}

// truncateLabel trims long names and content down to an activity log label
// that fits the entity_label column.
func truncateLabel(s string) string {
	const max = 80
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/promptstash/promptstash/internal/common/config"
)

// InitSuperAdmin seeds the configured super admin account together with its
// workspace and membership. The seed is idempotent: an existing account with
// the same email is left untouched.
func InitSuperAdmin(db Database, cfg *config.SuperAdminConfig) error {
	if cfg == nil || cfg.Email == "" {
		return nil
	}
	if cfg.Password == "" {
		return fmt.Errorf("super admin password is required")
	}

	ctx := context.Background()

	if _, err := db.GetUserByEmail(ctx, cfg.Email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash super admin password: %w", err)
	}

	displayName := cfg.DisplayName
	if displayName == "" {
		displayName = "Administrator"
	}
	workspaceName := cfg.Workspace
	if workspaceName == "" {
		workspaceName = "Default"
	}

	return db.Transaction(ctx, func(txCtx context.Context) error {
		user := &User{
			Email:       cfg.Email,
			Password:    string(hashed),
			DisplayName: displayName,
			IsActive:    true,
		}
		if err := db.CreateUser(txCtx, user); err != nil {
			return err
		}

		workspace := &Workspace{
			Name: workspaceName,
			Slug: slugify(workspaceName),
		}
		if err := db.CreateWorkspace(txCtx, workspace); err != nil {
			return err
		}

		return db.AddWorkspaceMember(txCtx, &WorkspaceMember{
			UserID:      user.ID,
			WorkspaceID: workspace.ID,
			Role:        RoleAdmin,
		})
	})
}

// slugify lowers the name and collapses runs of non-alphanumerics to a dash
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

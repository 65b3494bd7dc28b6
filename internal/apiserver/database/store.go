package database

import (
	"context"
	"database/sql"
	"strings"

	"gorm.io/gorm"
)

// store is the shared gorm implementation backing every driver
type store struct {
	db *gorm.DB
}

func newStore(db *gorm.DB) *store {
	return &store{db: db}
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Workspace{},
		&WorkspaceMember{},
		&Category{},
		&Tag{},
		&Tool{},
		&Tweet{},
		&Prompt{},
		&PromptTest{},
		&Attachment{},
		&ActivityLog{},
	)
}

// Close closes the database connection
func (s *store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction runs fn inside a transaction. A nested call reuses the
// transaction already carried by the context.
func (s *store) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}

// searchClause builds a case-insensitive LIKE filter over the given columns
func searchClause(db *gorm.DB, search string, columns ...string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" {
		return db
	}
	pattern := "%" + strings.ToLower(search) + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	return db.Where(strings.Join(clauses, " OR "), args...)
}

// ---- users and workspaces ----

func (s *store) CreateUser(ctx context.Context, user *User) error {
	return conn(ctx, s.db).Create(user).Error
}

func (s *store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := conn(ctx, s.db).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *store) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	err := conn(ctx, s.db).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *store) UpdateUser(ctx context.Context, user *User) error {
	return conn(ctx, s.db).Save(user).Error
}

func (s *store) CreateWorkspace(ctx context.Context, ws *Workspace) error {
	return conn(ctx, s.db).Create(ws).Error
}

func (s *store) AddWorkspaceMember(ctx context.Context, member *WorkspaceMember) error {
	return conn(ctx, s.db).Create(member).Error
}

func (s *store) ListWorkspaceMemberships(ctx context.Context, userID uint) ([]*WorkspaceMember, error) {
	var members []*WorkspaceMember
	err := conn(ctx, s.db).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Preload("Workspace").
		Find(&members).Error
	return members, err
}

// ---- categories ----

func (s *store) ListCategories(ctx context.Context, workspaceID uint, search string) ([]*Category, error) {
	var categories []*Category
	db := conn(ctx, s.db).Where("workspace_id = ?", workspaceID)
	db = searchClause(db, search, "name")
	err := db.Order("created_at desc").Find(&categories).Error
	return categories, err
}

func (s *store) CreateCategory(ctx context.Context, category *Category) error {
	return conn(ctx, s.db).Create(category).Error
}

func (s *store) GetCategoryByID(ctx context.Context, workspaceID, id uint) (*Category, error) {
	var category Category
	err := conn(ctx, s.db).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *store) UpdateCategory(ctx context.Context, category *Category) error {
	return conn(ctx, s.db).Save(category).Error
}

func (s *store) DeleteCategory(ctx context.Context, workspaceID, id uint) error {
	res := conn(ctx, s.db).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Delete(&Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ---- tags ----

func (s *store) ListTags(ctx context.Context, workspaceID uint) ([]*Tag, error) {
	var tags []*Tag
	err := conn(ctx, s.db).
		Where("workspace_id = ?", workspaceID).
		Order("name asc").
		Find(&tags).Error
	return tags, err
}

func (s *store) CreateTag(ctx context.Context, tag *Tag) error {
	return conn(ctx, s.db).Create(tag).Error
}

func (s *store) GetTagsByIDs(ctx context.Context, workspaceID uint, ids []uint) ([]*Tag, error) {
	if len(ids) == 0 {
		return []*Tag{}, nil
	}
	var tags []*Tag
	err := conn(ctx, s.db).
		Where("workspace_id = ? AND id IN ?", workspaceID, ids).
		Find(&tags).Error
	return tags, err
}

// ---- tools ----

func (s *store) ListTools(ctx context.Context, workspaceID uint, search string) ([]*Tool, error) {
	var tools []*Tool
	db := conn(ctx, s.db).
		Where("workspace_id = ? AND is_archived = ?", workspaceID, false)
	db = searchClause(db, search, "name", "description")
	err := db.Order("is_favorite desc").
		Order("created_at desc").
		Preload("Category").
		Preload("Tags").
		Find(&tools).Error
	return tools, err
}

func (s *store) CreateTool(ctx context.Context, tool *Tool) error {
	// Omit("Tags.*") attaches the join rows without rewriting the tag rows
	return conn(ctx, s.db).Omit("Tags.*").Create(tool).Error
}

func (s *store) GetToolByID(ctx context.Context, workspaceID, id uint) (*Tool, error) {
	var tool Tool
	err := conn(ctx, s.db).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Preload("Category").
		Preload("Tags").
		First(&tool).Error
	if err != nil {
		return nil, err
	}
	return &tool, nil
}

func (s *store) UpdateTool(ctx context.Context, tool *Tool, tags []*Tag) error {
	return s.Transaction(ctx, func(txCtx context.Context) error {
		db := conn(txCtx, s.db)
		if err := db.Omit("Tags").Save(tool).Error; err != nil {
			return err
		}
		if tags != nil {
			if err := db.Model(tool).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *store) SetToolArchived(ctx context.Context, workspaceID, id uint, archived bool) error {
	res := conn(ctx, s.db).
		Model(&Tool{}).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Update("is_archived", archived)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *store) DeleteTool(ctx context.Context, workspaceID, id uint) error {
	res := conn(ctx, s.db).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Delete(&Tool{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *store) ToggleToolFavorite(ctx context.Context, workspaceID, id uint) (*Tool, error) {
	var tool *Tool
	err := s.Transaction(ctx, func(txCtx context.Context) error {
		db := conn(txCtx, s.db)
		var current Tool
		if err := db.Where("id = ? AND workspace_id = ?", id, workspaceID).First(&current).Error; err != nil {
			return err
		}
		if err := db.Model(&current).Update("is_favorite", !current.IsFavorite).Error; err != nil {
			return err
		}
		var err error
		tool, err = s.GetToolByID(txCtx, workspaceID, id)
		return err
	})
	return tool, err
}

// ---- tweets ----

func (s *store) ListTweets(ctx context.Context, workspaceID uint, search string) ([]*Tweet, error) {
	var tweets []*Tweet
	db := conn(ctx, s.db).
		Where("workspace_id = ? AND is_archived = ?", workspaceID, false)
	db = searchClause(db, search, "content", "usage_notes")
	err := db.Order("is_favorite desc").
		Order("created_at desc").
		Preload("Category").
		Preload("Tags").
		Find(&tweets).Error
	return tweets, err
}

func (s *store) CreateTweet(ctx context.Context, tweet *Tweet) error {
	return conn(ctx, s.db).Omit("Tags.*").Create(tweet).Error
}

func (s *store) GetTweetByID(ctx context.Context, workspaceID, id uint) (*Tweet, error) {
	var tweet Tweet
	err := conn(ctx, s.db).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Preload("Category").
		Preload("Tags").
		First(&tweet).Error
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (s *store) UpdateTweet(ctx context.Context, tweet *Tweet, tags []*Tag) error {
	return s.Transaction(ctx, func(txCtx context.Context) error {
		db := conn(txCtx, s.db)
		if err := db.Omit("Tags").Save(tweet).Error; err != nil {
			return err
		}
		if tags != nil {
			if err := db.Model(tweet).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *store) SetTweetArchived(ctx context.Context, workspaceID, id uint, archived bool) error {
	res := conn(ctx, s.db).
		Model(&Tweet{}).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Update("is_archived", archived)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *store) DeleteTweet(ctx context.Context, workspaceID, id uint) error {
	res := conn(ctx, s.db).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Delete(&Tweet{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *store) ToggleTweetFavorite(ctx context.Context, workspaceID, id uint) (*Tweet, error) {
	var tweet *Tweet
	err := s.Transaction(ctx, func(txCtx context.Context) error {
		db := conn(txCtx, s.db)
		var current Tweet
		if err := db.Where("id = ? AND workspace_id = ?", id, workspaceID).First(&current).Error; err != nil {
			return err
		}
		if err := db.Model(&current).Update("is_favorite", !current.IsFavorite).Error; err != nil {
			return err
		}
		var err error
		tweet, err = s.GetTweetByID(txCtx, workspaceID, id)
		return err
	})
	return tweet, err
}

// ---- prompts ----

func (s *store) ListPrompts(ctx context.Context, workspaceID uint, search string) ([]*Prompt, error) {
	var prompts []*Prompt
	db := conn(ctx, s.db).Where("workspace_id = ?", workspaceID)
	db = searchClause(db, search, "title", "content")
	err := db.Order("is_favorite desc").
		Order("created_at desc").
		Find(&prompts).Error
	return prompts, err
}

func (s *store) CreatePrompt(ctx context.Context, prompt *Prompt) error {
	return conn(ctx, s.db).Create(prompt).Error
}

func (s *store) GetPromptByID(ctx context.Context, workspaceID, id uint) (*Prompt, error) {
	var prompt Prompt
	err := conn(ctx, s.db).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Preload("Tests", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		First(&prompt).Error
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (s *store) UpdatePrompt(ctx context.Context, prompt *Prompt) error {
	return conn(ctx, s.db).Omit("Tests").Save(prompt).Error
}

func (s *store) DeletePrompt(ctx context.Context, workspaceID, id uint) error {
	return s.Transaction(ctx, func(txCtx context.Context) error {
		db := conn(txCtx, s.db)
		res := db.Where("id = ? AND workspace_id = ?", id, workspaceID).Delete(&Prompt{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return db.Where("prompt_id = ?", id).Delete(&PromptTest{}).Error
	})
}

func (s *store) TogglePromptFavorite(ctx context.Context, workspaceID, id uint) (*Prompt, error) {
	var prompt *Prompt
	err := s.Transaction(ctx, func(txCtx context.Context) error {
		db := conn(txCtx, s.db)
		var current Prompt
		if err := db.Where("id = ? AND workspace_id = ?", id, workspaceID).First(&current).Error; err != nil {
			return err
		}
		if err := db.Model(&current).Update("is_favorite", !current.IsFavorite).Error; err != nil {
			return err
		}
		var err error
		prompt, err = s.GetPromptByID(txCtx, workspaceID, id)
		return err
	})
	return prompt, err
}

func (s *store) ListPromptTests(ctx context.Context, promptID uint) ([]*PromptTest, error) {
	var tests []*PromptTest
	err := conn(ctx, s.db).
		Where("prompt_id = ?", promptID).
		Order("created_at asc").
		Find(&tests).Error
	return tests, err
}

// CreatePromptTest inserts the test and keeps the parent prompt's rating in
// sync. The aggregate runs inside the same transaction as the insert so two
// concurrent rated inserts cannot write a stale average over each other.
func (s *store) CreatePromptTest(ctx context.Context, test *PromptTest) error {
	return s.Transaction(ctx, func(txCtx context.Context) error {
		db := conn(txCtx, s.db)
		if err := db.Create(test).Error; err != nil {
			return err
		}
		if test.Rating == nil {
			return nil
		}
		var avg sql.NullFloat64
		err := db.Model(&PromptTest{}).
			Where("prompt_id = ? AND rating IS NOT NULL", test.PromptID).
			Select("AVG(rating)").
			Scan(&avg).Error
		if err != nil {
			return err
		}
		if !avg.Valid {
			return nil
		}
		return db.Model(&Prompt{}).
			Where("id = ?", test.PromptID).
			Update("rating", avg.Float64).Error
	})
}

// ---- attachments ----

func (s *store) ListAttachments(ctx context.Context, workspaceID uint) ([]*Attachment, error) {
	var attachments []*Attachment
	err := conn(ctx, s.db).
		Where("workspace_id = ?", workspaceID).
		Order("created_at desc").
		Find(&attachments).Error
	return attachments, err
}

func (s *store) CreateAttachment(ctx context.Context, attachment *Attachment) error {
	return conn(ctx, s.db).Create(attachment).Error
}

func (s *store) GetAttachmentByID(ctx context.Context, workspaceID, id uint) (*Attachment, error) {
	var attachment Attachment
	err := conn(ctx, s.db).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		First(&attachment).Error
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (s *store) DeleteAttachment(ctx context.Context, workspaceID, id uint) error {
	res := conn(ctx, s.db).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Delete(&Attachment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ---- activity log ----

func (s *store) AppendActivity(ctx context.Context, entry *ActivityLog) error {
	return conn(ctx, s.db).Create(entry).Error
}

func (s *store) ListActivity(ctx context.Context, workspaceID uint, limit int) ([]*ActivityLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []*ActivityLog
	err := conn(ctx, s.db).
		Where("workspace_id = ?", workspaceID).
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

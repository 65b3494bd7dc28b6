package database

import (
	"context"
)

// Database defines the methods for database operations. Scoped lookups take
// the requester's workspace id and report gorm.ErrRecordNotFound for rows in
// other workspaces, so callers cannot distinguish "missing" from "not yours".
type Database interface {
	// Close closes the database connection.
	Close() error

	// Transaction runs fn inside a transaction carried by the context.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error

	// users and workspaces
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	CreateWorkspace(ctx context.Context, ws *Workspace) error
	AddWorkspaceMember(ctx context.Context, member *WorkspaceMember) error
	// ListWorkspaceMemberships returns the user's memberships ordered by
	// creation time ascending, with workspaces preloaded.
	ListWorkspaceMemberships(ctx context.Context, userID uint) ([]*WorkspaceMember, error)

	// categories
	ListCategories(ctx context.Context, workspaceID uint, search string) ([]*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	GetCategoryByID(ctx context.Context, workspaceID, id uint) (*Category, error)
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, workspaceID, id uint) error

	// tags
	ListTags(ctx context.Context, workspaceID uint) ([]*Tag, error)
	CreateTag(ctx context.Context, tag *Tag) error
	GetTagsByIDs(ctx context.Context, workspaceID uint, ids []uint) ([]*Tag, error)

	// tools
	ListTools(ctx context.Context, workspaceID uint, search string) ([]*Tool, error)
	CreateTool(ctx context.Context, tool *Tool) error
	GetToolByID(ctx context.Context, workspaceID, id uint) (*Tool, error)
	UpdateTool(ctx context.Context, tool *Tool, tags []*Tag) error
	SetToolArchived(ctx context.Context, workspaceID, id uint, archived bool) error
	DeleteTool(ctx context.Context, workspaceID, id uint) error
	ToggleToolFavorite(ctx context.Context, workspaceID, id uint) (*Tool, error)

	// tweets
	ListTweets(ctx context.Context, workspaceID uint, search string) ([]*Tweet, error)
	CreateTweet(ctx context.Context, tweet *Tweet) error
	GetTweetByID(ctx context.Context, workspaceID, id uint) (*Tweet, error)
	UpdateTweet(ctx context.Context, tweet *Tweet, tags []*Tag) error
	SetTweetArchived(ctx context.Context, workspaceID, id uint, archived bool) error
	DeleteTweet(ctx context.Context, workspaceID, id uint) error
	ToggleTweetFavorite(ctx context.Context, workspaceID, id uint) (*Tweet, error)

	// prompts
	ListPrompts(ctx context.Context, workspaceID uint, search string) ([]*Prompt, error)
	CreatePrompt(ctx context.Context, prompt *Prompt) error
	GetPromptByID(ctx context.Context, workspaceID, id uint) (*Prompt, error)
	UpdatePrompt(ctx context.Context, prompt *Prompt) error
	DeletePrompt(ctx context.Context, workspaceID, id uint) error
	TogglePromptFavorite(ctx context.Context, workspaceID, id uint) (*Prompt, error)
	ListPromptTests(ctx context.Context, promptID uint) ([]*PromptTest, error)
	// CreatePromptTest inserts the test and, when it carries a rating,
	// recomputes the parent prompt's average rating in the same transaction.
	CreatePromptTest(ctx context.Context, test *PromptTest) error

	// attachments
	ListAttachments(ctx context.Context, workspaceID uint) ([]*Attachment, error)
	CreateAttachment(ctx context.Context, attachment *Attachment) error
	GetAttachmentByID(ctx context.Context, workspaceID, id uint) (*Attachment, error)
	DeleteAttachment(ctx context.Context, workspaceID, id uint) error

	// activity log (append-only)
	AppendActivity(ctx context.Context, entry *ActivityLog) error
	ListActivity(ctx context.Context, workspaceID uint, limit int) ([]*ActivityLog, error)
}

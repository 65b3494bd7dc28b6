package database

import "time"

// MemberRole represents the role of a workspace member
type MemberRole string

const (
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

// User represents an account identity
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Email       string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password    string    `json:"-" gorm:"not null"` // Password is not exposed in JSON
	DisplayName string    `json:"displayName" gorm:"type:varchar(100)"`
	AvatarURL   string    `json:"avatarUrl,omitempty" gorm:"type:text"`
	IsActive    bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Workspace is the tenant boundary; it owns all domain entities
type Workspace struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Slug      string    `json:"slug" gorm:"type:varchar(100);uniqueIndex"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WorkspaceMember joins users to workspaces with a role. The session binds
// to the earliest-created membership.
type WorkspaceMember struct {
	ID          uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      uint       `json:"userId" gorm:"index;not null"`
	WorkspaceID uint       `json:"workspaceId" gorm:"index;not null"`
	Role        MemberRole `json:"role" gorm:"type:varchar(20);not null;default:'member'"`
	Workspace   *Workspace `json:"workspace,omitempty" gorm:"foreignKey:WorkspaceID"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Category groups tools and tweets inside a workspace
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	WorkspaceID uint      `json:"workspaceId" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Color       string    `json:"color,omitempty" gorm:"type:varchar(20)"`
	Icon        string    `json:"icon,omitempty" gorm:"type:varchar(50)"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Tag labels tools and tweets; associations are many-to-many
type Tag struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	WorkspaceID uint      `json:"workspaceId" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"type:varchar(50);not null"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Tool represents a catalogued tool with usage metadata
type Tool struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	WorkspaceID    uint      `json:"workspaceId" gorm:"index;not null"`
	Name           string    `json:"name" gorm:"type:varchar(200);not null"`
	Description    string    `json:"description" gorm:"type:text"`
	Prerequisites  string    `json:"prerequisites,omitempty" gorm:"type:text"`
	CommonMistakes string    `json:"commonMistakes,omitempty" gorm:"type:text"`
	BestPractices  string    `json:"bestPractices,omitempty" gorm:"type:text"`
	MasteryLevel   string    `json:"masteryLevel,omitempty" gorm:"type:varchar(20)"`
	CategoryID     *uint     `json:"categoryId,omitempty" gorm:"index"`
	Category       *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Tags           []*Tag    `json:"tags" gorm:"many2many:tool_tags"`
	IsFavorite     bool      `json:"isFavorite" gorm:"not null;default:false"`
	IsArchived     bool      `json:"isArchived" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Tweet represents a saved tweet or note
type Tweet struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	WorkspaceID uint      `json:"workspaceId" gorm:"index;not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	SourceURL   string    `json:"sourceUrl,omitempty" gorm:"type:text"`
	Importance  string    `json:"importance,omitempty" gorm:"type:varchar(20)"`
	UsageNotes  string    `json:"usageNotes,omitempty" gorm:"type:text"`
	BenefitType string    `json:"benefitType,omitempty" gorm:"type:varchar(50)"`
	ContentType string    `json:"contentType,omitempty" gorm:"type:varchar(50)"`
	CategoryID  *uint     `json:"categoryId,omitempty" gorm:"index"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Tags        []*Tag    `json:"tags" gorm:"many2many:tweet_tags"`
	IsFavorite  bool      `json:"isFavorite" gorm:"not null;default:false"`
	IsArchived  bool      `json:"isArchived" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Prompt represents a prompt template. Rating is the arithmetic mean of the
// rated test runs and is recomputed whenever a rated test is added.
type Prompt struct {
	ID          uint          `json:"id" gorm:"primaryKey;autoIncrement"`
	WorkspaceID uint          `json:"workspaceId" gorm:"index;not null"`
	Title       string        `json:"title" gorm:"type:varchar(200);not null"`
	Content     string        `json:"content" gorm:"type:text;not null"`
	Rating      float64       `json:"rating" gorm:"not null;default:0"`
	IsFavorite  bool          `json:"isFavorite" gorm:"not null;default:false"`
	Tests       []*PromptTest `json:"tests,omitempty" gorm:"foreignKey:PromptID"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// PromptTest captures one test execution of a prompt
type PromptTest struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	PromptID  uint      `json:"promptId" gorm:"index;not null"`
	Input     string    `json:"input,omitempty" gorm:"type:text"`
	Output    string    `json:"output" gorm:"type:text;not null"`
	IsSuccess bool      `json:"isSuccess" gorm:"not null;default:false"`
	Rating    *int      `json:"rating,omitempty"` // 1..5 when present
	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
	Model     string    `json:"model,omitempty" gorm:"type:varchar(100)"`
	CreatedAt time.Time `json:"createdAt"`
}

// Attachment is uploaded file metadata, optionally linked to one entity
type Attachment struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	WorkspaceID  uint      `json:"workspaceId" gorm:"index;not null"`
	FileName     string    `json:"fileName" gorm:"type:varchar(255);not null"`
	OriginalName string    `json:"originalName" gorm:"type:varchar(255);not null"`
	ContentType  string    `json:"contentType" gorm:"type:varchar(100);not null"`
	Size         int64     `json:"size" gorm:"not null"`
	URL          string    `json:"url" gorm:"type:text"`
	StorageKey   string    `json:"-" gorm:"type:varchar(512);not null"`
	PromptID     *uint     `json:"promptId,omitempty" gorm:"index"`
	TweetID      *uint     `json:"tweetId,omitempty" gorm:"index"`
	ToolID       *uint     `json:"toolId,omitempty" gorm:"index"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ActivityLog is an append-only audit trail entry. The application never
// updates or deletes rows.
type ActivityLog struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	WorkspaceID uint      `json:"workspaceId" gorm:"index;not null"`
	UserID      uint      `json:"userId" gorm:"index;not null"`
	Action      string    `json:"action" gorm:"type:varchar(20);not null"`
	EntityType  string    `json:"entityType" gorm:"type:varchar(30);not null"`
	EntityID    uint      `json:"entityId" gorm:"not null"`
	EntityLabel string    `json:"entityLabel" gorm:"type:varchar(120)"`
	CreatedAt   time.Time `json:"createdAt"`
}

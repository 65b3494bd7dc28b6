package cnst

// ActionType represents the verb recorded in the activity log
type ActionType string

const (
	// ActionCreate represents a create action
	ActionCreate ActionType = "CREATE"
	// ActionUpdate represents an update action
	ActionUpdate ActionType = "UPDATE"
	// ActionDelete represents a delete action
	ActionDelete ActionType = "DELETE"
	// ActionArchive represents an archive (soft delete) action
	ActionArchive ActionType = "ARCHIVE"
)

// EntityType tags the kind of entity an activity log row refers to
type EntityType string

const (
	EntityCategory   EntityType = "category"
	EntityTag        EntityType = "tag"
	EntityTool       EntityType = "tool"
	EntityTweet      EntityType = "tweet"
	EntityPrompt     EntityType = "prompt"
	EntityPromptTest EntityType = "prompt_test"
	EntityAttachment EntityType = "attachment"
)

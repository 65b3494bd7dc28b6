package dto

// CategoryRequest carries the mutable fields of a category
type CategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// TagRequest carries the mutable fields of a tag
type TagRequest struct {
	Name string `json:"name"`
}

// ToolRequest carries the mutable fields of a tool. TagIDs nil leaves the
// tag set unchanged on update; an empty slice clears it.
type ToolRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Prerequisites  string `json:"prerequisites"`
	CommonMistakes string `json:"commonMistakes"`
	BestPractices  string `json:"bestPractices"`
	MasteryLevel   string `json:"masteryLevel"`
	CategoryID     *uint  `json:"categoryId"`
	TagIDs         []uint `json:"tagIds"`
}

// TweetRequest carries the mutable fields of a saved tweet
type TweetRequest struct {
	Content     string `json:"content"`
	SourceURL   string `json:"sourceUrl"`
	Importance  string `json:"importance"`
	UsageNotes  string `json:"usageNotes"`
	BenefitType string `json:"benefitType"`
	ContentType string `json:"contentType"`
	CategoryID  *uint  `json:"categoryId"`
	TagIDs      []uint `json:"tagIds"`
}

// PromptRequest carries the mutable fields of a prompt
type PromptRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PromptTestRequest records one test run of a prompt
type PromptTestRequest struct {
	Input     string `json:"input"`
	Output    string `json:"output"`
	IsSuccess bool   `json:"isSuccess"`
	Rating    *int   `json:"rating"`
	Notes     string `json:"notes"`
	Model     string `json:"model"`
}

// RenderPromptRequest asks for a prompt body with its variables substituted
type RenderPromptRequest struct {
	Values map[string]string `json:"values"`
}

// RenderPromptResponse returns the substituted prompt body
type RenderPromptResponse struct {
	Content   string   `json:"content"`
	Variables []string `json:"variables"`
}

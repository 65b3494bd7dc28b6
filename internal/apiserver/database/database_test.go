package database

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/promptstash/promptstash/internal/common/config"
)

func newTestDB(t *testing.T) *store {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, autoMigrate(gormDB))
	s := newStore(gormDB)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedWorkspace(t *testing.T, s *store, name string) *Workspace {
	t.Helper()
	ws := &Workspace{Name: name, Slug: slugify(name)}
	require.NoError(t, s.CreateWorkspace(context.Background(), ws))
	return ws
}

func TestCategoryWorkspaceScoping(t *testing.T) {
	s := newTestDB(t)
	ctx := context.Background()

	wsA := seedWorkspace(t, s, "Team A")
	wsB := seedWorkspace(t, s, "Team B")

	cat := &Category{WorkspaceID: wsA.ID, Name: "Research", Color: "#ff0000"}
	require.NoError(t, s.CreateCategory(ctx, cat))

	got, err := s.GetCategoryByID(ctx, wsA.ID, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Research", got.Name)

	// The same id resolved through another workspace must look nonexistent
	_, err = s.GetCategoryByID(ctx, wsB.ID, cat.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = s.DeleteCategory(ctx, wsB.ID, cat.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, s.DeleteCategory(ctx, wsA.ID, cat.ID))
	_, err = s.GetCategoryByID(ctx, wsA.ID, cat.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListWorkspaceMembershipsOrder(t *testing.T) {
	s := newTestDB(t)
	ctx := context.Background()

	user := &User{Email: "dev@example.com", Password: "x", DisplayName: "Dev", IsActive: true}
	require.NoError(t, s.CreateUser(ctx, user))

	first := seedWorkspace(t, s, "First")
	second := seedWorkspace(t, s, "Second")

	base := time.Now().Add(-time.Hour)
	require.NoError(t, s.AddWorkspaceMember(ctx, &WorkspaceMember{
		UserID: user.ID, WorkspaceID: second.ID, Role: RoleMember, CreatedAt: base.Add(time.Minute),
	}))
	require.NoError(t, s.AddWorkspaceMember(ctx, &WorkspaceMember{
		UserID: user.ID, WorkspaceID: first.ID, Role: RoleAdmin, CreatedAt: base,
	}))

	members, err := s.ListWorkspaceMemberships(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, first.ID, members[0].WorkspaceID)
	assert.Equal(t, "First", members[0].Workspace.Name)
	assert.Equal(t, second.ID, members[1].WorkspaceID)
}

func TestToolSearchAndArchive(t *testing.T) {
	s := newTestDB(t)
	ctx := context.Background()
	ws := seedWorkspace(t, s, "Tools")

	tools := []*Tool{
		{WorkspaceID: ws.ID, Name: "Postman", Description: "API testing"},
		{WorkspaceID: ws.ID, Name: "Wireshark", Description: "packet capture"},
		{WorkspaceID: ws.ID, Name: "Burp Suite", Description: "API fuzzing"},
	}
	for _, tool := range tools {
		require.NoError(t, s.CreateTool(ctx, tool))
	}

	// Search is case-insensitive and matches name or description
	found, err := s.ListTools(ctx, ws.ID, "api")
	require.NoError(t, err)
	require.Len(t, found, 2)

	require.NoError(t, s.SetToolArchived(ctx, ws.ID, tools[0].ID, true))
	found, err = s.ListTools(ctx, ws.ID, "")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	// Archived rows stay addressable by id
	got, err := s.GetToolByID(ctx, ws.ID, tools[0].ID)
	require.NoError(t, err)
	assert.True(t, got.IsArchived)

	require.NoError(t, s.SetToolArchived(ctx, ws.ID, tools[0].ID, false))
	found, err = s.ListTools(ctx, ws.ID, "")
	require.NoError(t, err)
	assert.Len(t, found, 3)
}

func TestUpdateToolReplacesTags(t *testing.T) {
	s := newTestDB(t)
	ctx := context.Background()
	ws := seedWorkspace(t, s, "Tags")

	tagA := &Tag{WorkspaceID: ws.ID, Name: "cli"}
	tagB := &Tag{WorkspaceID: ws.ID, Name: "gui"}
	require.NoError(t, s.CreateTag(ctx, tagA))
	require.NoError(t, s.CreateTag(ctx, tagB))

	tool := &Tool{WorkspaceID: ws.ID, Name: "ripgrep", Tags: []*Tag{tagA}}
	require.NoError(t, s.CreateTool(ctx, tool))

	got, err := s.GetToolByID(ctx, ws.ID, tool.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "cli", got.Tags[0].Name)

	got.Description = "line-oriented search"
	require.NoError(t, s.UpdateTool(ctx, got, []*Tag{tagB}))

	got, err = s.GetToolByID(ctx, ws.ID, tool.ID)
	require.NoError(t, err)
	assert.Equal(t, "line-oriented search", got.Description)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "gui", got.Tags[0].Name)
}

func TestToggleToolFavorite(t *testing.T) {
	s := newTestDB(t)
	ctx := context.Background()
	ws := seedWorkspace(t, s, "Favorites")

	tool := &Tool{WorkspaceID: ws.ID, Name: "jq"}
	require.NoError(t, s.CreateTool(ctx, tool))

	got, err := s.ToggleToolFavorite(ctx, ws.ID, tool.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFavorite)

	got, err = s.ToggleToolFavorite(ctx, ws.ID, tool.ID)
	require.NoError(t, err)
	assert.False(t, got.IsFavorite)

	_, err = s.ToggleToolFavorite(ctx, ws.ID, tool.ID+100)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListToolsFavoritesFirst(t *testing.T) {
	s := newTestDB(t)
	ctx := context.Background()
	ws := seedWorkspace(t, s, "Order")

	older := &Tool{WorkspaceID: ws.ID, Name: "older", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &Tool{WorkspaceID: ws.ID, Name: "newer"}
	require.NoError(t, s.CreateTool(ctx, older))
	require.NoError(t, s.CreateTool(ctx, newer))

	found, err := s.ListTools(ctx, ws.ID, "")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "newer", found[0].Name)

	// Toggling the older tool to favorite moves it ahead of newer rows
	_, err = s.ToggleToolFavorite(ctx, ws.ID, older.ID)
	require.NoError(t, err)

	found, err = s.ListTools(ctx, ws.ID, "")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "older", found[0].Name)
	assert.True(t, found[0].IsFavorite)
}

func TestCreatePromptTestRecomputesRating(t *testing.T) {
	s := newTestDB(t)
	ctx := context.Background()
	ws := seedWorkspace(t, s, "Prompts")

	prompt := &Prompt{WorkspaceID: ws.ID, Title: "Summarize", Content: "Summarize {{text}}"}
	require.NoError(t, s.CreatePrompt(ctx, prompt))

	rating := func(v int) *int { return &v }

	require.NoError(t, s.CreatePromptTest(ctx, &PromptTest{PromptID: prompt.ID, Input: "a", Rating: rating(4)}))
	got, err := s.GetPromptByID(ctx, ws.ID, prompt.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got.Rating, 1e-9)

	require.NoError(t, s.CreatePromptTest(ctx, &PromptTest{PromptID: prompt.ID, Input: "b", Rating: rating(1)}))
	got, err = s.GetPromptByID(ctx, ws.ID, prompt.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, got.Rating, 1e-9)

	// Unrated runs never move the average
	require.NoError(t, s.CreatePromptTest(ctx, &PromptTest{PromptID: prompt.ID, Input: "c"}))
	got, err = s.GetPromptByID(ctx, ws.ID, prompt.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, got.Rating, 1e-9)

	tests, err := s.ListPromptTests(ctx, prompt.ID)
	require.NoError(t, err)
	assert.Len(t, tests, 3)
}

func TestDeletePromptRemovesTests(t *testing.T) {
	s := newTestDB(t)
	ctx := context.Background()
	ws := seedWorkspace(t, s, "Prompts")

	prompt := &Prompt{WorkspaceID: ws.ID, Title: "Classify", Content: "Classify {{input}}"}
	require.NoError(t, s.CreatePrompt(ctx, prompt))
	require.NoError(t, s.CreatePromptTest(ctx, &PromptTest{PromptID: prompt.ID, Input: "x"}))

	require.NoError(t, s.DeletePrompt(ctx, ws.ID, prompt.ID))

	tests, err := s.ListPromptTests(ctx, prompt.ID)
	require.NoError(t, err)
	assert.Empty(t, tests)

	err = s.DeletePrompt(ctx, ws.ID, prompt.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestActivityLogOrderAndLimit(t *testing.T) {
	s := newTestDB(t)
	ctx := context.Background()
	ws := seedWorkspace(t, s, "Activity")

	for i := 0; i < 5; i++ {
		require.NoError(t, s.AppendActivity(ctx, &ActivityLog{
			WorkspaceID: ws.ID,
			UserID:      1,
			Action:      "CREATE",
			EntityType:  "tool",
			EntityID:    uint(i + 1),
			EntityLabel: "tool",
		}))
	}

	entries, err := s.ListActivity(ctx, ws.ID, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// Newest entry first
	assert.Equal(t, uint(5), entries[0].EntityID)

	entries, err = s.ListActivity(ctx, ws.ID, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestInitSuperAdminIdempotent(t *testing.T) {
	s := newTestDB(t)
	cfg := &config.SuperAdminConfig{
		Email:     "admin@example.com",
		Password:  "changeme-now",
		Workspace: "Head Office",
	}

	require.NoError(t, InitSuperAdmin(s, cfg))
	require.NoError(t, InitSuperAdmin(s, cfg))

	user, err := s.GetUserByEmail(context.Background(), cfg.Email)
	require.NoError(t, err)
	assert.NotEqual(t, cfg.Password, user.Password)

	members, err := s.ListWorkspaceMemberships(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, RoleAdmin, members[0].Role)
	assert.Equal(t, "head-office", members[0].Workspace.Slug)
}

func TestTransactionRollback(t *testing.T) {
	s := newTestDB(t)
	ctx := context.Background()
	ws := seedWorkspace(t, s, "Rollback")

	sentinel := assert.AnError
	err := s.Transaction(ctx, func(txCtx context.Context) error {
		if err := s.CreateCategory(txCtx, &Category{WorkspaceID: ws.ID, Name: "doomed"}); err != nil {
			return err
		}
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	categories, err := s.ListCategories(ctx, ws.ID, "")
	require.NoError(t, err)
	assert.Empty(t, categories)
}

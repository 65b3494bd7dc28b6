package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/promptstash/promptstash/internal/apiserver/database"
	"github.com/promptstash/promptstash/internal/common/cnst"
	"github.com/promptstash/promptstash/internal/common/dto"
	"github.com/promptstash/promptstash/internal/i18n"
	"github.com/promptstash/promptstash/internal/validator"
)

func validateTweet(req *dto.TweetRequest) error {
	return validator.Validate(
		validator.Required("content", req.Content),
		validator.AbsoluteURL("sourceUrl", req.SourceURL),
		validator.OneOf("importance", req.Importance, "low", "medium", "high"),
		validator.PositiveIDs("tagIds", req.TagIDs),
	)
}

// ListTweets returns the workspace's non-archived tweets
func (h *Handler) ListTweets(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	tweets, err := h.db.ListTweets(c.Request.Context(), s.workspaceID, c.Query("search"))
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(200, tweets)
}

// GetTweet returns a single tweet by id
func (h *Handler) GetTweet(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		i18n.Error(i18n.ErrorTweetNotFound).Send(c)
		return
	}

	tweet, err := h.db.GetTweetByID(c.Request.Context(), s.workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			i18n.Error(i18n.ErrorTweetNotFound).Send(c)
			return
		}
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(200, tweet)
}

// CreateTweet saves a tweet in the session workspace
func (h *Handler) CreateTweet(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	var req dto.TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}
	if err := validateTweet(&req); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.checkCategory(ctx, s.workspaceID, req.CategoryID); err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	tags, err := h.resolveTags(ctx, s.workspaceID, req.TagIDs)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	tweet := &database.Tweet{
		WorkspaceID: s.workspaceID,
		Content:     req.Content,
		SourceURL:   req.SourceURL,
		Importance:  req.Importance,
		UsageNotes:  req.UsageNotes,
		BenefitType: req.BenefitType,
		ContentType: req.ContentType,
		CategoryID:  req.CategoryID,
		Tags:        tags,
	}
	if err := h.db.CreateTweet(ctx, tweet); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logActivity(c, s, cnst.ActionCreate, cnst.EntityTweet, tweet.ID, tweet.Content)
	i18n.Created(i18n.SuccessTweetCreated).WithPayload(tweet).Send(c)
}

// UpdateTweet updates a tweet and, when tagIds is present, its tag set
func (h *Handler) UpdateTweet(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		i18n.Error(i18n.ErrorTweetNotFound).Send(c)
		return
	}

	var req dto.TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}
	if err := validateTweet(&req); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	tweet, err := h.db.GetTweetByID(ctx, s.workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			i18n.Error(i18n.ErrorTweetNotFound).Send(c)
			return
		}
		i18n.RespondWithError(c, err)
		return
	}

	if err := h.checkCategory(ctx, s.workspaceID, req.CategoryID); err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	tags, err := h.resolveTags(ctx, s.workspaceID, req.TagIDs)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	tweet.Content = req.Content
	tweet.SourceURL = req.SourceURL
	tweet.Importance = req.Importance
	tweet.UsageNotes = req.UsageNotes
	tweet.BenefitType = req.BenefitType
	tweet.ContentType = req.ContentType
	tweet.CategoryID = req.CategoryID
	if err := h.db.UpdateTweet(ctx, tweet, tags); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	updated, err := h.db.GetTweetByID(ctx, s.workspaceID, id)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logActivity(c, s, cnst.ActionUpdate, cnst.EntityTweet, updated.ID, updated.Content)
	i18n.Success(i18n.SuccessTweetUpdated).WithPayload(updated).Send(c)
}

// ArchiveTweet hides a tweet from list responses without deleting it
func (h *Handler) ArchiveTweet(c *gin.Context) {
	h.setTweetArchived(c, true)
}

// UnarchiveTweet returns an archived tweet to list responses
func (h *Handler) UnarchiveTweet(c *gin.Context) {
	h.setTweetArchived(c, false)
}

func (h *Handler) setTweetArchived(c *gin.Context, archived bool) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		i18n.Error(i18n.ErrorTweetNotFound).Send(c)
		return
	}

	if err := h.db.SetTweetArchived(c.Request.Context(), s.workspaceID, id, archived); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			i18n.Error(i18n.ErrorTweetNotFound).Send(c)
			return
		}
		i18n.RespondWithError(c, err)
		return
	}

	h.logActivity(c, s, cnst.ActionArchive, cnst.EntityTweet, id, "")
	i18n.Success(i18n.SuccessTweetArchived).With("archived", archived).Send(c)
}

// DeleteTweet permanently removes a tweet
func (h *Handler) DeleteTweet(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		i18n.Error(i18n.ErrorTweetNotFound).Send(c)
		return
	}

	tweet, err := h.db.GetTweetByID(c.Request.Context(), s.workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			i18n.Error(i18n.ErrorTweetNotFound).Send(c)
			return
		}
		i18n.RespondWithError(c, err)
		return
	}

	if err := h.db.DeleteTweet(c.Request.Context(), s.workspaceID, id); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logActivity(c, s, cnst.ActionDelete, cnst.EntityTweet, id, tweet.Content)
	i18n.Success(i18n.SuccessTweetDeleted).Send(c)
}

// ToggleTweetFavorite flips the favorite flag on a tweet
func (h *Handler) ToggleTweetFavorite(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		i18n.Error(i18n.ErrorTweetNotFound).Send(c)
		return
	}

	tweet, err := h.db.ToggleTweetFavorite(c.Request.Context(), s.workspaceID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			i18n.Error(i18n.ErrorTweetNotFound).Send(c)
			return
		}
		i18n.RespondWithError(c, err)
		return
	}

	i18n.Success(i18n.SuccessFavoriteToggled).WithPayload(tweet).Send(c)
}

package handler

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/promptstash/promptstash/internal/apiserver/database"
	"github.com/promptstash/promptstash/internal/common/cnst"
	"github.com/promptstash/promptstash/internal/i18n"
)

// maxUploadSize is the inclusive upload limit: a file of exactly this size
// is accepted.
const maxUploadSize = 5 << 20

// allowedUploadTypes is the MIME allow-list for attachment uploads
var allowedUploadTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// ListAttachments returns the workspace's attachments
func (h *Handler) ListAttachments(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	attachments, err := h.db.ListAttachments(c.Request.Context(), s.workspaceID)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}
	c.JSON(200, attachments)
}

// UploadAttachment stores an uploaded file and records its metadata. The
// upload may reference a prompt, tweet or tool via form fields.
func (h *Handler) UploadAttachment(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.metrics.UploadDone("rejected", 0)
		i18n.Error(i18n.ErrorFileMissing).Send(c)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	ext, allowed := allowedUploadTypes[contentType]
	if !allowed {
		h.metrics.UploadDone("rejected", fileHeader.Size)
		i18n.ErrorWithParam(i18n.ErrorFileTypeNotAllowed, "Type", contentType).Send(c)
		return
	}
	if fileHeader.Size > maxUploadSize {
		h.metrics.UploadDone("rejected", fileHeader.Size)
		i18n.ErrorWithParam(i18n.ErrorFileTooLarge, "Max", maxUploadSize).Send(c)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.metrics.UploadDone("error", fileHeader.Size)
		i18n.Error(i18n.ErrorStorageFailure).Send(c)
		return
	}
	defer file.Close()

	key := fmt.Sprintf("%d/%s%s", s.workspaceID, uuid.New().String(), ext)
	url, err := h.store.Put(c.Request.Context(), key, file, fileHeader.Size, contentType)
	if err != nil {
		h.logger.Error("failed to store attachment", zap.String("key", key), zap.Error(err))
		h.metrics.UploadDone("error", fileHeader.Size)
		i18n.Error(i18n.ErrorStorageFailure).Send(c)
		return
	}

	attachment := &database.Attachment{
		WorkspaceID:  s.workspaceID,
		FileName:     filepath.Base(key),
		OriginalName: fileHeader.Filename,
		ContentType:  contentType,
		Size:         fileHeader.Size,
		URL:          url,
		StorageKey:   key,
		PromptID:     formIDField(c, "promptId"),
		TweetID:      formIDField(c, "tweetId"),
		ToolID:       formIDField(c, "toolId"),
	}
	if err := h.db.CreateAttachment(c.Request.Context(), attachment); err != nil {
		// The object is already in storage; drop it so nothing is orphaned
		if rmErr := h.store.Remove(c.Request.Context(), key); rmErr != nil {
			h.logger.Warn("failed to remove orphaned object", zap.String("key", key), zap.Error(rmErr))
		}
		h.metrics.UploadDone("error", fileHeader.Size)
		i18n.RespondWithError(c, err)
		return
	}

	h.metrics.UploadDone("accepted", fileHeader.Size)
	h.logActivity(c, s, cnst.ActionCreate, cnst.EntityAttachment, attachment.ID, attachment.OriginalName)
	i18n.Created(i18n.SuccessAttachmentUploaded).WithPayload(attachment).Send(c)
}

// DeleteAttachment removes the stored object first and only then the
// metadata row, so a failed storage delete never leaves a dangling record.
func (h *Handler) DeleteAttachment(c *gin.Context) {
	s, err := h.resolveSession(c)
	if err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	id, err := strconv.ParseUint(c.Query("id"), 10, 32)
	if err != nil || id == 0 {
		i18n.Error(i18n.ErrorAttachmentIDMissing).Send(c)
		return
	}

	attachment, err := h.db.GetAttachmentByID(c.Request.Context(), s.workspaceID, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			i18n.Error(i18n.ErrorAttachmentNotFound).Send(c)
			return
		}
		i18n.RespondWithError(c, err)
		return
	}

	if err := h.store.Remove(c.Request.Context(), attachment.StorageKey); err != nil {
		h.logger.Error("failed to remove stored object",
			zap.String("key", attachment.StorageKey), zap.Error(err))
		i18n.Error(i18n.ErrorStorageFailure).Send(c)
		return
	}

	if err := h.db.DeleteAttachment(c.Request.Context(), s.workspaceID, uint(id)); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	h.logActivity(c, s, cnst.ActionDelete, cnst.EntityAttachment, uint(id), attachment.OriginalName)
	i18n.Success(i18n.SuccessAttachmentDeleted).With("success", true).Send(c)
}

// formIDField parses an optional positive id form field
func formIDField(c *gin.Context, name string) *uint {
	raw := c.PostForm(name)
	if raw == "" {
		return nil
	}
	var id uint
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil || id == 0 {
		return nil
	}
	return &id
}

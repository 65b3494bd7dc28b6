package handler

import (
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/promptstash/promptstash/internal/i18n"
)

const defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

// GetYouTubePlaylist fetches a playlist's items with the server-side API
// key, caching responses so repeated requests stay inside the upstream
// quota.
func (h *Handler) GetYouTubePlaylist(c *gin.Context) {
	if _, err := h.resolveSession(c); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	playlistID := c.Query("playlistId")
	if playlistID == "" {
		i18n.Error(i18n.ErrorPlaylistIDMissing).Send(c)
		return
	}
	if h.youtube.APIKey == "" {
		i18n.Error(i18n.ErrorYouTubeKeyMissing).Send(c)
		return
	}

	pageToken := c.Query("pageToken")

	// Each page caches under its own key
	cacheKey := "youtube:playlist:" + playlistID
	if pageToken != "" {
		cacheKey += ":" + pageToken
	}
	if cached, err := h.cache.Get(c.Request.Context(), cacheKey); err == nil {
		h.metrics.EnrichmentDone("youtube", "hit")
		c.Data(http.StatusOK, "application/json", cached)
		return
	}

	base := h.youtube.BaseURL
	if base == "" {
		base = defaultYouTubeBaseURL
	}
	query := url.Values{}
	query.Set("part", "snippet")
	query.Set("maxResults", "50")
	query.Set("playlistId", playlistID)
	if pageToken != "" {
		query.Set("pageToken", pageToken)
	}
	query.Set("key", h.youtube.APIKey)
	endpoint := base + "/playlistItems?" + query.Encode()

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, endpoint, nil)
	if err != nil {
		i18n.Error(i18n.ErrorUpstreamFailure).Send(c)
		return
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.logger.Warn("youtube fetch failed", zap.String("playlist_id", playlistID), zap.Error(err))
		h.metrics.EnrichmentDone("youtube", "error")
		i18n.Error(i18n.ErrorUpstreamFailure).Send(c)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		h.metrics.EnrichmentDone("youtube", "error")
		i18n.Error(i18n.ErrorUpstreamFailure).Send(c)
		return
	}
	if resp.StatusCode != http.StatusOK {
		h.metrics.EnrichmentDone("youtube", "error")
		i18n.ErrorWithParam(i18n.ErrorUpstreamFailure, "Status", resp.StatusCode).Send(c)
		return
	}

	if err := h.cache.Set(c.Request.Context(), cacheKey, body, h.cacheTTL); err != nil {
		h.logger.Warn("failed to cache playlist response", zap.String("playlist_id", playlistID), zap.Error(err))
	}

	h.metrics.EnrichmentDone("youtube", "miss")
	c.Data(http.StatusOK, "application/json", body)
}

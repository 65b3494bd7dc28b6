package handler

import (
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/promptstash/promptstash/internal/i18n"
)

// proxyCacheControl instructs clients to cache proxied images for 24 hours
const proxyCacheControl = "public, max-age=86400"

// ProxyImage fetches a remote image server-side and streams it back, so the
// browser never talks to the third-party host directly.
func (h *Handler) ProxyImage(c *gin.Context) {
	if _, err := h.resolveSession(c); err != nil {
		i18n.RespondWithError(c, err)
		return
	}

	raw := c.Query("url")
	if raw == "" {
		i18n.Error(i18n.ErrorProxyURLMissing).Send(c)
		return
	}
	target, err := url.Parse(raw)
	if err != nil || !target.IsAbs() || (target.Scheme != "http" && target.Scheme != "https") {
		i18n.Error(i18n.ErrorProxyURLMissing).Send(c)
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, target.String(), nil)
	if err != nil {
		i18n.Error(i18n.ErrorUpstreamFailure).Send(c)
		return
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.logger.Warn("image proxy fetch failed", zap.String("url", target.String()), zap.Error(err))
		h.metrics.EnrichmentDone("proxy", "error")
		i18n.Error(i18n.ErrorUpstreamFailure).Send(c)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		h.metrics.EnrichmentDone("proxy", "error")
		i18n.ErrorWithParam(i18n.ErrorUpstreamFailure, "Status", resp.StatusCode).Send(c)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h.metrics.EnrichmentDone("proxy", "hit")
	c.Header("Cache-Control", proxyCacheControl)
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		h.logger.Warn("image proxy stream interrupted", zap.Error(err))
	}
}

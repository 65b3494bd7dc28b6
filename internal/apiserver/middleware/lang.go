package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/promptstash/promptstash/internal/common/cnst"
)

// LanguageMiddleware resolves the request language from the X-Lang header,
// falling back to Accept-Language, and stores it in the gin context for the
// localized error responses.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader(cnst.XLang)
		if lang == "" {
			accept := c.GetHeader("Accept-Language")
			if accept != "" {
				lang = strings.TrimSpace(strings.Split(accept, ",")[0])
			}
		}
		if lang == "" {
			lang = cnst.LangDefault
		}
		c.Set(cnst.XLang, lang)
		c.Next()
	}
}

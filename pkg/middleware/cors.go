package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	corsHeaders = []string{CredentialName, "Content-Type"}
	// corsExposed はブラウザのスクリプトから読めるレスポンスヘッダー。
	corsExposed = []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"}
)

// CORS は指定されたオリジンからのクロスオリジンリクエストを許可するGinミドルウェアを返す。
// 認証情報をCookieで運ぶため、オリジンは常に個別に返しワイルドカードは使わない。
//
// プリフライトリクエストは後続のハンドラに渡さずに応答する。
// 許可されていないオリジンからのプリフライトには403を返す。
func CORS(allowedOrigins []string) gin.HandlerFunc {
	originsSet := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originsSet[strings.TrimRight(o, "/")] = struct{}{}
	}
	methods := strings.Join(corsMethods, ", ")
	headers := strings.Join(corsHeaders, ", ")
	exposed := strings.Join(corsExposed, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}
		c.Writer.Header().Add("Vary", "Origin")

		_, allowed := originsSet[origin]
		preflight := c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != ""

		if !allowed {
			if preflight {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Credentials", "true")

		if preflight {
			if !slices.Contains(corsMethods, c.GetHeader("Access-Control-Request-Method")) {
				c.AbortWithStatus(http.StatusMethodNotAllowed)
				return
			}
			c.Header("Access-Control-Allow-Methods", methods)
			c.Header("Access-Control-Allow-Headers", headers)
			c.Header("Access-Control-Max-Age", "86400")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Header("Access-Control-Expose-Headers", exposed)
		c.Next()
	}
}

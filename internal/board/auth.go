package board

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/board/pkg/crypto"
	"github.com/nao1215/board/pkg/middleware"
)

// loginRequest はログインリクエストのJSON構造。
type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// handleLogin はメールアドレスとパスワードを検証してトークンを発行する。
// トークンはレスポンスボディとAuthorization Cookieの両方で返す。
// 失敗理由（ユーザー不在・パスワード不一致・入力不備）は区別しない。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := bindJSON(c, &req); err != nil {
			s.fail(c, invalidInput(msgInvalidLogin, err))
			return
		}

		user, err := s.queries.GetUserByEmail(c.Request.Context(), req.Email)
		if errors.Is(err, sql.ErrNoRows) {
			s.fail(c, invalidInput(msgInvalidLogin, err))
			return
		}
		if err != nil {
			s.fail(c, storeFailure("ログインに失敗しました", err))
			return
		}
		if err := crypto.ComparePassword(user.PasswordHash, req.Password); err != nil {
			s.fail(c, invalidInput(msgInvalidLogin, err))
			return
		}

		token, err := middleware.GenerateJWT(s.cfg.JWTSecret, user.ID, s.cfg.TokenTTL)
		if err != nil {
			s.fail(c, storeFailure("ログインに失敗しました", err))
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.CredentialName, middleware.BearerScheme+" "+token,
			int(s.cfg.TokenTTL.Seconds()), "/", "", s.cfg.CookieSecure, true)

		s.logger.Info("ログインしました", "user_id", user.ID)
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// handleLogout はAuthorization Cookieを削除する。
// 発行済みトークン自体は有効期限まで失効しない。
func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.CredentialName, "", -1, "/", "", s.cfg.CookieSecure, true)
		c.JSON(http.StatusOK, gin.H{"message": "ログアウトしました"})
	}
}

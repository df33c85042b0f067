package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CredentialName は認証情報を運ぶCookie名およびHTTPヘッダー名。
const CredentialName = "Authorization"

// BearerScheme は受け付ける唯一の認証スキーム。
const BearerScheme = "Bearer"

// jwtIssuer はトークンの発行者。
const jwtIssuer = "board"

// unauthenticatedMessage は認証失敗時に返す唯一のメッセージ。
// トークン欠落・不正・ユーザー不在のどれが原因かは区別しない。
const unauthenticatedMessage = "ログイン後に利用できる機能です"

// unavailableMessage は検証器が要求者を解決できなかった場合に返すメッセージ。
const unavailableMessage = "内部サーバーエラーが発生しました"

var (
	// ErrMissingCredential は認証情報が送られていないことを表す。
	ErrMissingCredential = errors.New("認証情報がありません")
	// ErrInvalidScheme はBearer以外のスキームが指定されたことを表す。
	ErrInvalidScheme = errors.New("認証スキームが不正です")
	// ErrMissingSubject はトークンにユーザーIDが含まれていないことを表す。
	ErrMissingSubject = errors.New("トークンにユーザーIDがありません")
	// ErrVerifierUnavailable は認証情報の正否を判断できなかったことを表す。
	// CredentialVerifier はストア障害などでこのエラーをラップして返す。
	ErrVerifierUnavailable = errors.New("認証情報を検証できません")
)

// JWTClaims はJWTトークンのクレーム（ペイロード）を表す。
type JWTClaims struct {
	jwt.RegisteredClaims
	// UserID は認証済みユーザーの一意識別子。
	UserID string `json:"user_id"`
}

// GenerateJWT はユーザーIDからHS256で署名したJWTトークンを生成する。
// ttl経過後にトークンは失効する。
func GenerateJWT(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    jwtIssuer,
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("JWTトークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// ParseJWT はトークンの署名・有効期限・発行者を検証し、クレームを返す。
// HS256以外の署名方式は拒否する。
func ParseJWT(secret, tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(jwtIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("トークンの検証に失敗: %w", err)
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.UserID == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}

// BearerToken は "<scheme> <token>" 形式の認証情報からトークン部分を取り出す。
func BearerToken(credential string) (string, error) {
	if strings.TrimSpace(credential) == "" {
		return "", ErrMissingCredential
	}
	parts := strings.Fields(credential)
	if len(parts) != 2 || parts[0] != BearerScheme {
		return "", ErrInvalidScheme
	}
	return parts[1], nil
}

// Credential はリクエストから認証情報を取り出す。
// Cookieを優先し、なければAuthorizationヘッダーを使う。
func Credential(c *gin.Context) string {
	if v, err := c.Cookie(CredentialName); err == nil && v != "" {
		return v
	}
	return c.GetHeader(CredentialName)
}

// Identity は認証済みリクエストの要求者を表す。
type Identity struct {
	// UserID はユーザーの一意識別子。
	UserID string
	// Email はユーザーのメールアドレス。
	Email string
	// Nickname はユーザーのニックネーム。
	Nickname string
}

// CredentialVerifier は認証情報を検証して要求者を解決する。
type CredentialVerifier interface {
	Verify(ctx context.Context, credential string) (Identity, error)
}

// IdentityHandler は認証ゲートを通過したリクエストを処理するハンドラ。
type IdentityHandler func(c *gin.Context, id Identity)

// RequireIdentity は認証ゲートでハンドラを包む。
// 検証に失敗した場合は401を返してハンドラを呼ばない。
// ErrVerifierUnavailable の場合は500を返す。
// 成功した場合のみ解決済みのIdentityを引数としてハンドラを呼ぶ。
func RequireIdentity(v CredentialVerifier, logger *slog.Logger, next IdentityHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := v.Verify(c.Request.Context(), Credential(c))
		if errors.Is(err, ErrVerifierUnavailable) {
			if logger != nil {
				logger.Error("認証情報の検証中にエラーが発生しました",
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": unavailableMessage,
			})
			return
		}
		if err != nil {
			if logger != nil {
				logger.Warn("認証に失敗しました",
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": unauthenticatedMessage,
			})
			return
		}
		next(c, id)
	}
}

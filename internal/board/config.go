package board

import (
	"time"

	"github.com/nao1215/board/pkg/config"
)

// Config は掲示板サービスの実行時設定。
type Config struct {
	// Port はHTTPサーバーのリッスンポート。
	Port string
	// DatabasePath はSQLiteデータベースファイルのパス。
	DatabasePath string
	// JWTSecret はJWT署名用の秘密鍵。
	JWTSecret string
	// TokenTTL は発行するトークンの有効期間。
	TokenTTL time.Duration
	// AllowedOrigins はCORSを許可するフロントエンドのオリジン。
	AllowedOrigins []string
	// CookieSecure はAuthorization CookieにSecure属性を付けるかどうか。
	CookieSecure bool
	// LoginRateLimit はクライアントIPごとのログイン試行回数の上限。0以下で無制限。
	LoginRateLimit int
	// LoginRateWindow はログイン試行回数を数える期間。
	LoginRateWindow time.Duration
	// TrustedProxies はX-Forwarded-Forを信頼するリバースプロキシのIPまたはCIDR。
	// 空ならどのプロキシも信頼せず、接続元アドレスをクライアントIPとする。
	TrustedProxies []string
	// RedisAddr はレート制限を共有するRedisのアドレス。空ならプロセス内で数える。
	RedisAddr string
	// RedisPassword はRedisのパスワード。
	RedisPassword string
	// RedisDB はRedisのDB番号。
	RedisDB int
	// LogLevel はログレベル（debug / info / warn / error）。
	LogLevel string
}

// LoadConfig は環境変数から設定を読み込む。
func LoadConfig() Config {
	return Config{
		Port:            config.GetString("PORT", "8080"),
		DatabasePath:    config.GetString("DATABASE_PATH", "/data/board.db"),
		JWTSecret:       config.GetString("JWT_SECRET", "dev-secret-key"),
		TokenTTL:        config.GetDuration("TOKEN_TTL", 24*time.Hour),
		AllowedOrigins:  config.GetList("FRONTEND_URLS", []string{"http://localhost:3000"}),
		CookieSecure:    config.GetBool("COOKIE_SECURE", false),
		LoginRateLimit:  config.GetInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: config.GetDuration("LOGIN_RATE_WINDOW", time.Minute),
		TrustedProxies:  config.GetList("TRUSTED_PROXIES", nil),
		RedisAddr:       config.GetString("RATE_LIMIT_REDIS_ADDR", ""),
		RedisPassword:   config.GetString("RATE_LIMIT_REDIS_PASSWORD", ""),
		RedisDB:         config.GetInt("RATE_LIMIT_REDIS_DB", 0),
		LogLevel:        config.GetString("LOG_LEVEL", "info"),
	}
}

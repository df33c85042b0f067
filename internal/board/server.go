package board

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	boarddb "github.com/nao1215/board/internal/board/db"
	"github.com/nao1215/board/pkg/middleware"
)

// shutdownTimeout はグレースフルシャットダウンの待ち時間。
const shutdownTimeout = 10 * time.Second

// Server は掲示板サービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// cfg は実行時設定。
	cfg Config
	// db はSQLiteデータベース接続。トランザクションの開始に使う。
	db *sql.DB
	// queries はクエリ実行オブジェクト。
	queries *boarddb.Queries
	// verifier は認証ゲートが使う認証情報の検証器。
	verifier middleware.CredentialVerifier
	// limiter はログイン試行回数の制限器。
	limiter middleware.RateLimiter
	// logger は構造化ロガー。
	logger *slog.Logger
}

// NewServer は新しい掲示板サーバーを生成する。
// SQLiteデータベースを開いてマイグレーションを適用し、
// RATE_LIMIT_REDIS_ADDR が設定されていればRedisでログイン試行回数を数える。
func NewServer(ctx context.Context, cfg Config, logger *slog.Logger) (*Server, error) {
	sqlDB, err := OpenDB(ctx, cfg.DatabasePath, logger)
	if err != nil {
		return nil, err
	}

	var limiter middleware.RateLimiter
	if cfg.RedisAddr != "" {
		limiter, err = middleware.NewRedisRateLimiter(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		if err != nil {
			logger.Warn("Redisに接続できないためプロセス内でレート制限を行います",
				"addr", cfg.RedisAddr,
				"error", err,
			)
			limiter = nil
		}
	}
	if limiter == nil {
		limiter = middleware.NewMemoryRateLimiter()
	}

	s, err := newServer(cfg, sqlDB, boarddb.New(sqlDB), limiter, logger)
	if err != nil {
		return nil, errors.Join(err, limiter.Close(), sqlDB.Close())
	}
	return s, nil
}

// newServer は依存を受け取ってサーバーを組み立てる。
func newServer(cfg Config, sqlDB *sql.DB, queries *boarddb.Queries, limiter middleware.RateLimiter, logger *slog.Logger) (*Server, error) {
	router := gin.New()
	// ログイン試行回数はクライアントIPで数えるため、信頼するプロキシ以外のX-Forwarded-Forは無視する
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("TRUSTED_PROXIESが不正です: %w", err)
	}
	router.Use(middleware.Recovery(logger))
	if gin.Mode() != gin.TestMode {
		router.Use(gin.Logger())
	}
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	s := &Server{
		router:   router,
		cfg:      cfg,
		db:       sqlDB,
		queries:  queries,
		verifier: NewVerifier(cfg.JWTSecret, queries),
		limiter:  limiter,
		logger:   logger,
	}
	s.setupRoutes()
	return s, nil
}

// Handler はHTTPハンドラを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動し、ctxがキャンセルされるとグレースフルシャットダウンする。
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("サーバーを起動します", "port", s.cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("サーバーを停止します")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Close はデータベース接続とレート制限器を解放する。
func (s *Server) Close() error {
	return errors.Join(s.limiter.Close(), s.db.Close())
}

// gate はハンドラを認証ゲートで包む。
func (s *Server) gate(next middleware.IdentityHandler) gin.HandlerFunc {
	return middleware.RequireIdentity(s.verifier, s.logger, next)
}

// setupRoutes はAPIルーティングを設定する。
// 投稿IDと検索タイトルはワイルドカードの名前を揃える必要があるため、
// どちらも :post で受け取る。
func (s *Server) setupRoutes() {
	users := s.router.Group("/users")
	{
		// 会員登録
		users.POST("", s.handleRegister())
		// ログイン中のユーザー情報
		users.GET("/me", s.gate(s.handleGetMe()))
		// ログイン中のユーザーの操作履歴
		users.GET("/me/activity", s.gate(s.handleListMyActivity()))
	}

	auth := s.router.Group("/auth")
	{
		// ログイン
		auth.POST("", middleware.RateLimit(s.limiter, "login", s.cfg.LoginRateLimit, s.cfg.LoginRateWindow, s.logger), s.handleLogin())
		// ログアウト
		auth.DELETE("", s.handleLogout())
	}

	posts := s.router.Group("/posts")
	{
		// 投稿一覧
		posts.GET("", s.handleListPosts())
		// 投稿作成
		posts.POST("", s.gate(s.handleCreatePost()))
		// タイトル検索
		posts.GET("/:post", s.handleSearchPosts())
		// 投稿更新
		posts.PATCH("/:post", s.gate(s.handleUpdatePost()))
		// 投稿削除
		posts.DELETE("/:post", s.gate(s.handleDeletePost()))

		// コメント一覧
		posts.GET("/:post/comments", s.handleListComments())
		// コメント作成
		posts.POST("/:post/comments", s.gate(s.handleCreateComment()))
		// コメント更新
		posts.PATCH("/:post/comments/:comment", s.gate(s.handleUpdateComment()))
		// コメント削除
		posts.DELETE("/:post/comments/:comment", s.gate(s.handleDeleteComment()))
	}

	// ヘルスチェック
	s.router.GET("/health", s.handleHealth())
}

// handleHealth はサービスとデータベースの状態を返す。
func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.db.PingContext(c.Request.Context()); err != nil {
			s.logger.Error("データベースに接続できません", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "service": "board"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "board"})
	}
}

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisRateLimiter は複数インスタンスで状態を共有するためのRedisバックエンドのRateLimiter。
type redisRateLimiter struct {
	client  *redis.Client
	logger  *slog.Logger
	prefix  string
	timeout time.Duration
}

// NewRedisRateLimiter はRedisに接続してRateLimiterを生成する。
// 接続確認に失敗した場合はエラーを返す。
func NewRedisRateLimiter(ctx context.Context, addr, password string, db int, logger *slog.Logger) (RateLimiter, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("Redisへの接続に失敗: %w", err)
	}

	return &redisRateLimiter{
		client:  client,
		logger:  logger,
		prefix:  "board:ratelimit:",
		timeout: 250 * time.Millisecond,
	}, nil
}

// Allow はINCRとEXPIRE NXを1つのトランザクションで実行して固定ウィンドウのカウンタを進める。
// 有効期限のないキーには必ず期限が付くため、カウンタが残り続けることはない。
// EXPIRE NXはRedis 7.0以降で使える。
// Redisが応答しない場合はリクエストを通す。
func (rl *redisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) RateDecision {
	if limit <= 0 {
		return RateDecision{Allowed: true}
	}
	if window <= 0 {
		window = time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, rl.timeout)
	defer cancel()

	redisKey := rl.prefix + key
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := rl.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, window)
		ttl = pipe.TTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		rl.logError("incr", err)
		return RateDecision{Allowed: true}
	}

	counter := incr.Val()
	remaining := ttl.Val()
	if remaining <= 0 {
		remaining = window
	}
	return RateDecision{
		Allowed:   int(counter) <= limit,
		Count:     int(counter),
		WindowEnd: time.Now().Add(remaining),
	}
}

func (rl *redisRateLimiter) Close() error {
	return rl.client.Close()
}

func (rl *redisRateLimiter) logError(op string, err error) {
	if rl.logger == nil {
		return
	}
	rl.logger.Error("Redisレート制限でエラーが発生しました", "op", op, "error", err)
}

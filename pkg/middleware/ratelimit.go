package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// rateLimiterSweepInterval は期限切れエントリを掃除する間隔。
const rateLimiterSweepInterval = 5 * time.Minute

// RateDecision はレート制限の判定結果。
type RateDecision struct {
	// Allowed はリクエストを通してよいかどうか。
	Allowed bool
	// Count は現在のウィンドウでのリクエスト数。
	Count int
	// WindowEnd は現在のウィンドウが終わる時刻。
	WindowEnd time.Time
}

// RateLimiter はキーごとの固定ウィンドウ方式のレート制限器。
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) RateDecision
	Close() error
}

type rateState struct {
	count     int
	windowEnd time.Time
}

// memoryRateLimiter はプロセス内のマップで状態を持つRateLimiter。
type memoryRateLimiter struct {
	mu      sync.Mutex
	entries map[string]rateState
	stopCh  chan struct{}
	once    sync.Once
	now     func() time.Time
}

// NewMemoryRateLimiter はプロセス内で完結するRateLimiterを生成する。
// 単一インスタンス構成向け。
func NewMemoryRateLimiter() RateLimiter {
	rl := newMemoryRateLimiter(time.Now)
	go rl.sweepLoop()
	return rl
}

func newMemoryRateLimiter(now func() time.Time) *memoryRateLimiter {
	return &memoryRateLimiter{
		entries: make(map[string]rateState),
		stopCh:  make(chan struct{}),
		now:     now,
	}
}

func (rl *memoryRateLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) RateDecision {
	if limit <= 0 {
		return RateDecision{Allowed: true}
	}
	if window <= 0 {
		window = time.Minute
	}
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	state, ok := rl.entries[key]
	if !ok || now.After(state.windowEnd) {
		state = rateState{count: 1, windowEnd: now.Add(window)}
		rl.entries[key] = state
		return RateDecision{Allowed: true, Count: state.count, WindowEnd: state.windowEnd}
	}
	if state.count >= limit {
		return RateDecision{Allowed: false, Count: state.count, WindowEnd: state.windowEnd}
	}
	state.count++
	rl.entries[key] = state
	return RateDecision{Allowed: true, Count: state.count, WindowEnd: state.windowEnd}
}

func (rl *memoryRateLimiter) sweepLoop() {
	ticker := time.NewTicker(rateLimiterSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup(rl.now())
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *memoryRateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, state := range rl.entries {
		if now.After(state.windowEnd) {
			delete(rl.entries, key)
		}
	}
}

func (rl *memoryRateLimiter) Close() error {
	rl.once.Do(func() {
		close(rl.stopCh)
	})
	return nil
}

// RateLimit はクライアントIPごとにリクエスト数を制限するGinミドルウェアを返す。
// routeはキーの名前空間として使い、エンドポイントごとに独立して数える。
func RateLimit(limiter RateLimiter, route string, limit int, window time.Duration, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:ip:%s", route, c.ClientIP())
		decision := limiter.Allow(c.Request.Context(), key, limit, window)

		remaining := max(limit-decision.Count, 0)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !decision.Allowed {
			retryAfter := int(math.Ceil(time.Until(decision.WindowEnd).Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(retryAfter, 1)))
			if logger != nil {
				logger.Warn("レート制限を超過しました", "route", route, "client_ip", c.ClientIP())
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "リクエストが多すぎます。しばらくしてから再度お試しください",
			})
			return
		}
		c.Next()
	}
}

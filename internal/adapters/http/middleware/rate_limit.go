package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Haleralex/branchledger/internal/adapters/http/common"
)

// RateLimitConfig - конфигурация для rate limiting.
type RateLimitConfig struct {
	// Limit - запросов за окно
	Limit int
	// Window - длина окна
	Window time.Duration
	// KeyFunc - ключ лимитирования; по умолчанию IP клиента
	KeyFunc func(*gin.Context) string
	// OnLimitReached - callback при отказе (например, метрика)
	OnLimitReached func(*gin.Context)
}

// DefaultRateLimitConfig - 100 запросов в минуту с одного IP.
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		Limit:   100,
		Window:  time.Minute,
		KeyFunc: ClientIPKey,
	}
}

// ClientIPKey - ключ лимитирования по IP клиента.
func ClientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// RateLimiter - in-memory fixed window counter.
//
// Каждый ключ получает Limit запросов за Window; при исчерпании
// отвечаем 429 с заголовком Retry-After. Устаревшие окна чистит
// фоновая горутина до вызова Close.
type RateLimiter struct {
	config *RateLimitConfig
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window

	stop     chan struct{}
	stopOnce sync.Once
}

// window - счётчик одного ключа.
type window struct {
	remaining int
	start     time.Time
}

// NewRateLimiter создаёт limiter и запускает очистку.
func NewRateLimiter(config *RateLimitConfig) *RateLimiter {
	if config == nil {
		config = DefaultRateLimitConfig()
	}
	if config.KeyFunc == nil {
		config.KeyFunc = ClientIPKey
	}

	rl := &RateLimiter{
		config:  config,
		now:     time.Now,
		windows: make(map[string]*window),
		stop:    make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Allow расходует один запрос ключа. Возвращает разрешён ли запрос,
// остаток в окне и время до сброса окна.
func (rl *RateLimiter) Allow(key string) (bool, int, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.config.Window {
		w = &window{remaining: rl.config.Limit, start: now}
		rl.windows[key] = w
	}

	resetIn := rl.config.Window - now.Sub(w.start)
	if w.remaining <= 0 {
		return false, 0, resetIn
	}
	w.remaining--
	return true, w.remaining, resetIn
}

// Middleware возвращает gin middleware поверх limiter'а.
//
// Headers:
// - X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset (Unix)
// - Retry-After: секунд до сброса (только при 429)
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, resetIn := rl.Allow(rl.config.KeyFunc(c))

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(rl.now().Add(resetIn).Unix(), 10))

		if allowed {
			c.Next()
			return
		}

		retrySeconds := int(resetIn.Seconds())
		if retrySeconds < 1 {
			retrySeconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(retrySeconds))

		if rl.config.OnLimitReached != nil {
			rl.config.OnLimitReached(c)
		}

		common.Abort(c, http.StatusTooManyRequests, &common.APIError{
			Code:       common.ErrCodeTooManyRequests,
			Message:    "Rate limit exceeded, please try again later",
			RetryAfter: retrySeconds,
		})
	}
}

// Close останавливает фоновую очистку. Повторный вызов безопасен.
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.Window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictExpired()
		}
	}
}

// evictExpired удаляет окна, не обновлявшиеся дольше двух Window.
func (rl *RateLimiter) evictExpired() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, w := range rl.windows {
		if now.Sub(w.start) > rl.config.Window*2 {
			delete(rl.windows, key)
		}
	}
}

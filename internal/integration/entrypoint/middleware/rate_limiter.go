package middleware

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/fin-mate/backend/internal/domain/error"
	"github.com/fin-mate/backend/internal/integration/entrypoint/dto"
)

const (
	loginMaxAttempts = 5
	loginWindow      = time.Minute
)

// attemptWindow counts requests from one client until the window expires.
type attemptWindow struct {
	count   int
	expires time.Time
}

// RateLimiter caps the number of requests per client IP inside a fixed
// window. It protects the login endpoint from unbounded retries.
type RateLimiter struct {
	mu       sync.Mutex
	windows  map[string]*attemptWindow
	limit    int
	interval time.Duration
}

// NewRateLimiter creates a limiter tuned for the login endpoint.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		windows:  make(map[string]*attemptWindow),
		limit:    loginMaxAttempts,
		interval: loginWindow,
	}
}

// Middleware returns the gin handler. Requests are keyed by client IP.
// The limit is disabled when ENV=test so suites can log in repeatedly.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		key := c.ClientIP()
		if key == "" {
			key = c.Request.RemoteAddr
		}

		if !rl.allow(key, time.Now()) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || now.After(w.expires) {
		rl.windows[key] = &attemptWindow{count: 1, expires: now.Add(rl.interval)}
		return true
	}
	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

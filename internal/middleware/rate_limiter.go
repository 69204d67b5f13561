package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/rmitchellscott/orangesnap/internal/config"
	"github.com/rmitchellscott/orangesnap/internal/logging"
)

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	limiters sync.Map // ip -> *clientLimiter
	rate     rate.Limit
	burst    int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

// NewIPRateLimiter allows perMinute requests per IP with the given burst.
func NewIPRateLimiter(perMinute, burst int) *IPRateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &IPRateLimiter{
		rate:  rate.Every(time.Minute / time.Duration(perMinute)),
		burst: burst,
	}
}

// NewExtractRateLimiter reads EXTRACT_RATE_PER_MINUTE and EXTRACT_BURST.
func NewExtractRateLimiter() *IPRateLimiter {
	return NewIPRateLimiter(
		config.GetInt("EXTRACT_RATE_PER_MINUTE", 10),
		config.GetInt("EXTRACT_BURST", 5),
	)
}

func (l *IPRateLimiter) get(ip string) *clientLimiter {
	if val, ok := l.limiters.Load(ip); ok {
		return val.(*clientLimiter)
	}
	val, _ := l.limiters.LoadOrStore(ip, &clientLimiter{limiter: rate.NewLimiter(l.rate, l.burst)})
	return val.(*clientLimiter)
}

// Allow consumes one token for ip.
func (l *IPRateLimiter) Allow(ip string) bool {
	cl := l.get(ip)
	cl.mu.Lock()
	cl.lastSeen = time.Now()
	cl.mu.Unlock()
	return cl.limiter.Allow()
}

// Cleanup forgets clients idle for longer than idle.
func (l *IPRateLimiter) Cleanup(idle time.Duration) {
	cutoff := time.Now().Add(-idle)
	l.limiters.Range(func(key, val any) bool {
		cl := val.(*clientLimiter)
		cl.mu.Lock()
		stale := cl.lastSeen.Before(cutoff)
		cl.mu.Unlock()
		if stale {
			l.limiters.Delete(key)
		}
		return true
	})
}

// StartCleanup prunes idle clients every interval until ctx is done.
func (l *IPRateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Cleanup(interval)
			}
		}
	}()
}

// RateLimit rejects requests past the caller's budget with 429.
func (l *IPRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.Allow(ip) {
			logging.WarnWithComponent(logging.ComponentAPI, "Rate limit exceeded", "ip", ip, "path", c.FullPath())
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestSizeLimit rejects declared oversize bodies with 413 and caps the
// body reader for undeclared ones.
func RequestSizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			logging.WarnWithComponent(logging.ComponentAPI, "Request too large", "size", c.Request.ContentLength, "limit", maxBytes, "ip", c.ClientIP())
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":    "Request payload too large",
				"max_size": fmt.Sprintf("%dMB", maxBytes>>20),
			})
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// MaxUploadBytes reads MAX_UPLOAD_SIZE_MB.
func MaxUploadBytes() int64 {
	return int64(config.GetInt("MAX_UPLOAD_SIZE_MB", 10)) << 20
}

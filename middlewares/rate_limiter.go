package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type RateLimiter struct {
	rate      int
	interval  time.Duration
	ips       map[string][]time.Time
	lastPrune time.Time
	mu        sync.Mutex
}

func NewRateLimiter(requests int, intervalSeconds int) *RateLimiter {
	return &RateLimiter{
		rate:      requests,
		interval:  time.Duration(intervalSeconds) * time.Second,
		ips:       make(map[string][]time.Time),
		lastPrune: time.Now(),
	}
}

// prune drops IPs whose windows have fully expired, so the map does not
// keep an entry for every client ever seen. Runs at most once per interval.
func (rl *RateLimiter) prune(now time.Time) {
	cutoff := now.Add(-rl.interval)
	for ip, requests := range rl.ips {
		live := false
		for _, t := range requests {
			if t.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(rl.ips, ip)
		}
	}
	rl.lastPrune = now
}

// NewStrictRateLimiter throttles the admin mutation endpoints harder than
// the general POS traffic.
func NewStrictRateLimiter() gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Every(time.Second), 10)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please wait a moment",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rl.mu.Lock()
		now := time.Now()
		if now.Sub(rl.lastPrune) > rl.interval {
			rl.prune(now)
		}

		requests := rl.ips[ip]
		cutoff := now.Add(-rl.interval)
		valid := make([]time.Time, 0, len(requests))
		for _, t := range requests {
			if t.After(cutoff) {
				valid = append(valid, t)
			}
		}

		if len(valid) >= rl.rate {
			rl.mu.Unlock()
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		rl.ips[ip] = append(valid, now)
		rl.mu.Unlock()

		c.Next()
	}
}

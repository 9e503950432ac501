package middlewares

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newLimitedEngine(rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(rl.RateLimit())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(engine *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitBlocksOverLimitPerIP(t *testing.T) {
	rl := NewRateLimiter(3, 1)
	engine := newLimitedEngine(rl)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(engine, "10.0.0.1"))
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(engine, "10.0.0.1"))

	// a different client is not affected
	assert.Equal(t, http.StatusOK, hit(engine, "10.0.0.2"))
}

func TestRateLimitPrunesIdleClients(t *testing.T) {
	rl := NewRateLimiter(3, 1)
	engine := newLimitedEngine(rl)

	hit(engine, "10.0.0.1")
	hit(engine, "10.0.0.2")

	// age both windows past the interval and make the next request prune
	rl.mu.Lock()
	stale := time.Now().Add(-2 * time.Second)
	for ip := range rl.ips {
		rl.ips[ip] = []time.Time{stale}
	}
	rl.lastPrune = stale
	rl.mu.Unlock()

	assert.Equal(t, http.StatusOK, hit(engine, "10.0.0.3"))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Len(t, rl.ips, 1)
	_, kept := rl.ips["10.0.0.3"]
	assert.True(t, kept)
}

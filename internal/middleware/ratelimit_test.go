package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"thumbnail-backend/internal/middleware"
)

type countingLimiter struct {
	limit int
	seen  map[string]int
	err   error
}

func (l *countingLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	if l.err != nil {
		return false, 0, l.err
	}
	l.seen[key]++
	return l.seen[key] <= l.limit, 30 * time.Second, nil
}

func newRateLimitedRouter(limiter middleware.Limiter, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})
	router.Use(middleware.RateLimit(limiter, zerolog.New(io.Discard)))
	router.POST("/generate", okHandler)
	return router
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	limiter := &countingLimiter{limit: 2, seen: map[string]int{}}
	router := newRateLimitedRouter(limiter, uuid.New())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/generate", nil)
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "30", w.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_CountsPerUser(t *testing.T) {
	limiter := &countingLimiter{limit: 1, seen: map[string]int{}}

	for _, user := range []uuid.UUID{uuid.New(), uuid.New()} {
		router := newRateLimitedRouter(limiter, user)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/generate", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	limiter := &countingLimiter{err: errors.New("connection refused")}
	router := newRateLimitedRouter(limiter, uuid.New())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/generate", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewRedisLimiter_InvalidURL(t *testing.T) {
	_, err := middleware.NewRedisLimiter(context.Background(), "not-a-redis-url", 10, time.Hour)
	assert.Error(t, err)
}

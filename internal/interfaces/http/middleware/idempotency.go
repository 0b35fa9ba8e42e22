package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gem-auction.backend/internal/interfaces/http/response"
	"gem-auction.backend/pkg/logger"
	"gem-auction.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	idempotencyProcessing = "processing"
	codeIdempotency       = "ERR_IDEMPOTENCY_CONFLICT"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// cachedResponse is what gets replayed for a repeated key
type cachedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

func idempotencyStorageKey(c *gin.Context, key string) string {
	userID, _ := GetUserID(c)
	return fmt.Sprintf("idempotency:%s:%s", userID, key)
}

// IdempotencyMiddleware replays the stored response when a client retries a
// request with the same Idempotency-Key. Keys are scoped per user. Requests
// without the header, or arriving while Redis is down, are processed normally.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		storageKey := idempotencyStorageKey(c, key)

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil:
			if val == idempotencyProcessing {
				response.ErrorWithError(c, http.StatusConflict, codeIdempotency, "Request already in progress")
				c.Abort()
				return
			}
			var cached cachedResponse
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr != nil {
				logger.Warn(ctx, "Discarding unreadable idempotency entry", zap.String("key", storageKey), zap.Error(jsonErr))
				_ = redisDel(ctx, storageKey)
				c.Next()
				return
			}
			c.Header("X-Idempotency-Hit", "true")
			c.Data(cached.Status, "application/json; charset=utf-8", []byte(cached.Body))
			c.Abort()
			return
		case !redis.IsNil(err):
			logger.Warn(ctx, "Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, idempotencyProcessing, LockDuration)
		if err != nil || !acquired {
			response.ErrorWithError(c, http.StatusConflict, codeIdempotency, "Request already in progress")
			c.Abort()
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			// let the client retry
			_ = redisDel(ctx, storageKey)
			return
		}
		payload, err := json.Marshal(cachedResponse{Status: status, Body: w.body.String()})
		if err == nil {
			err = redisSet(ctx, storageKey, string(payload), RetentionDuration)
		}
		if err != nil {
			logger.Warn(ctx, "Failed to store idempotent response", zap.String("key", storageKey), zap.Error(err))
		}
	}
}

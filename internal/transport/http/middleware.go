package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionHeader carries the caller's session id. Requests without one get a
// generated id echoed back in the response so the client can keep it.
const SessionHeader = "X-Session-ID"

const sessionKey = "sessionID"

// sessionMiddleware resolves or mints the request's session id.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(sessionKey, id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}

// sessionID returns the request's resolved session id.
func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"crashify360/pkg/response"
)

// HeaderRequestID carries the per-request correlation id.
const HeaderRequestID = "X-Request-ID"

// RequestID assigns a correlation id to every request, honouring one supplied
// by the caller.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// Logger logs one line per request with method, path, status and latency.
func (m Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		m.l.Infof(c.Request.Context(), "%s %s status=%d latency=%s request_id=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			time.Since(start), c.GetString("request_id"))
	}
}

// RateLimit rejects requests beyond the configured rate with 429.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.limiter.Allow() {
			m.l.Warnf(c.Request.Context(), "rate limit exceeded path=%s", c.Request.URL.Path)
			c.AbortWithStatusJSON(429, response.Resp{
				ErrorCode: 429,
				Message:   "too many requests",
			})
			return
		}
		c.Next()
	}
}

// Recovery converts panics into opaque 500 responses.
func (m Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				m.l.Errorf(c.Request.Context(), "panic recovered: %v", r)
				c.AbortWithStatusJSON(500, response.Resp{
					ErrorCode: response.InternalServerErrorCode,
					Message:   response.DefaultErrorMessage,
				})
			}
		}()
		c.Next()
	}
}

package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userIDKey    = "userId"
	requestIDKey = "requestId"

	requestIDHeader = "X-Request-Id"
)

func (h *Handler) userIDMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message": "invalid Authorization header format",
		})
		return
	}

	userID, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"message": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(userIDKey, userID)
	c.Next()
}

// userID reads the identity the token middleware stored in the context.
func userID(c *gin.Context) int {
	id, _ := c.Get(userIDKey)
	v, _ := id.(int)
	return v
}

// requestIDMiddleware tags every request with a UUID (honoring an inbound
// X-Request-Id) and emits one access-log line per request.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDKey, id)
	c.Header(requestIDHeader, id)

	start := time.Now()
	c.Next()

	if h.log != nil {
		h.log.Infow("request_completed",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

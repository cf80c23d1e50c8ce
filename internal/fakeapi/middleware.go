package fakeapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobintake/internal/logging"
	"github.com/gin-gonic/gin"
)

const headerRequestID = "X-Request-ID"

var multipartOverhead = int64(8 * 1024)

// SizeLimit caps the request body. Reading past the limit fails with
// *http.MaxBytesError, which handlers answer with 413.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes+multipartOverhead)
		c.Next()
	}
}

// RequireBearer rejects requests whose Authorization header does not carry
// token. An empty token disables the check.
func RequireBearer(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || got != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
			return
		}
		c.Next()
	}
}

// Latency delays every request, modelling a slow upstream.
func Latency(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d > 0 {
			select {
			case <-time.After(d):
			case <-c.Request.Context().Done():
			}
		}
		c.Next()
	}
}

func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"request_id", c.GetHeader(headerRequestID),
			"duration", time.Since(start),
		)
	}
}

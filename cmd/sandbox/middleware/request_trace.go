package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tour-planner/internal/logger"
)

const (
	headerRequestID = "X-Request-Id"
	headerSpanID    = "X-Span-Id"
)

// RequestTrace 는 플래너가 보낸 X-Request-Id / X-Span-Id 를 응답 헤더와 로그에 그대로 싣는다.
// 헤더가 없으면 새 Request ID 를 만든다.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := req.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		spanID := req.Header.Get(headerSpanID)
		c.Writer.Header().Set(headerRequestID, requestID)
		if spanID != "" {
			c.Writer.Header().Set(headerSpanID, spanID)
		}

		var bodySnippet string
		if req.Body != nil && req.ContentLength != 0 && req.Method == http.MethodPost {
			if bodyBytes, err := io.ReadAll(req.Body); err == nil {
				const maxBodyLog = 1024
				if len(bodyBytes) > maxBodyLog {
					bodySnippet = string(bodyBytes[:maxBodyLog])
				} else {
					bodySnippet = string(bodyBytes)
				}
				// gin 핸들러에서 다시 읽을 수 있도록 Body 를 복원한다.
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			}
		}

		c.Next()

		fields := logger.Fields{
			"method":      req.Method,
			"path":        req.URL.Path,
			"query":       req.URL.RawQuery,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  requestID,
			"span_id":     spanID,
		}
		if userID := UserID(c); userID != "" {
			fields["user_id"] = userID
		}
		if bodySnippet != "" {
			fields["body"] = bodySnippet
		}
		logger.InfoWithFields("completed request", fields)
	}
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tour-planner/cmd/sandbox/auth"
	"tour-planner/dto"
	"tour-planner/internal/logger"
)

const ContextKeyUserID = "user_id"

var (
	ErrMissingHeader = errors.New("missing_authorization_header")
	ErrInvalidFormat = errors.New("invalid_authorization_header")
	ErrEmptyToken    = errors.New("empty_token")
)

// BearerAuth 는 Authorization 헤더의 JWT 를 검증하고 사용자 ID 를 컨텍스트에 저장한다.
func BearerAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		userID, err := jwtManager.Parse(token)
		if err != nil {
			logger.WarnWithFields("token parse error", logger.Fields{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			abortUnauthorized(c, err)
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// UserID 는 BearerAuth 가 저장한 사용자 ID 를 꺼낸다.
func UserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

// bearerToken 은 "Bearer <token>" 형식만 받는다. 스킴은 대소문자를 구분하지 않는다.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingHeader
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", ErrInvalidFormat
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}

func abortUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.StatusResponse{Success: false, Message: err.Error()})
}

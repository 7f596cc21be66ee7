package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultIssuer = "tour-planner-sandbox"

// DevSecret 는 SANDBOX_JWT_SECRET 이 비어 있을 때 쓰는 로컬 개발용 시크릿이다.
const DevSecret = "sandbox-dev-secret"

var ErrMissingUserID = errors.New("token_missing_user_id")

// JWTManager 는 HS256 단일 시크릿으로 샌드박스 토큰을 발급/검증한다.
// 토큰의 userId 클레임은 플래너가 크레딧 요청 본문에 그대로 싣는다.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewJWTManager(secret string) *JWTManager {
	if secret == "" {
		secret = DevSecret
	}
	return &JWTManager{
		secret: []byte(secret),
		issuer: defaultIssuer,
		ttl:    30 * 24 * time.Hour,
	}
}

func (m *JWTManager) Sign(userID string) (string, error) {
	if userID == "" {
		return "", ErrMissingUserID
	}
	claims := jwt.MapClaims{
		"userId": userID,
		"sub":    userID,
		"iss":    m.issuer,
		"exp":    time.Now().Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse 는 서명과 만료를 검증하고 사용자 ID 를 돌려준다.
func (m *JWTManager) Parse(tokenString string) (string, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	userID, _ := claims["userId"].(string)
	if userID == "" {
		userID, _ = claims["sub"].(string)
	}
	if userID == "" {
		return "", ErrMissingUserID
	}
	return userID, nil
}

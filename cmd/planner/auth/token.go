package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("no_token")
	ErrInvalidToken = errors.New("invalid_token")
	ErrNoUserID     = errors.New("token_missing_user_id")
)

// TokenSource 는 요청마다 bearer 토큰을 제공한다.
// 웹 클라이언트의 local storage 를 대신하는 주입 가능한 의존성이다.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource 는 고정된 토큰을 돌려준다. 빈 문자열이면 ErrNoToken.
type StaticTokenSource string

func (s StaticTokenSource) Token(context.Context) (string, error) {
	token := strings.TrimSpace(string(s))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// EnvTokenSource 는 환경변수에서 토큰을 읽는다.
type EnvTokenSource struct {
	Key string
}

func (s EnvTokenSource) Token(context.Context) (string, error) {
	if s.Key == "" {
		return "", ErrNoToken
	}
	token := strings.TrimSpace(os.Getenv(s.Key))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// FileTokenSource 는 파일에 저장된 토큰을 매 호출마다 다시 읽는다.
// 다른 프로세스가 로그인으로 파일을 갱신해도 바로 반영된다.
type FileTokenSource struct {
	Path string
}

func (s FileTokenSource) Token(context.Context) (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Save 는 토큰을 파일에 기록한다. 디렉터리가 없으면 만든다.
func (s FileTokenSource) Save(token string) error {
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token dir: %w", err)
		}
	}
	return os.WriteFile(s.Path, []byte(strings.TrimSpace(token)+"\n"), 0o600)
}

// ChainTokenSource 는 순서대로 시도해 처음 얻은 토큰을 돌려준다.
type ChainTokenSource []TokenSource

func (c ChainTokenSource) Token(ctx context.Context) (string, error) {
	for _, src := range c {
		token, err := src.Token(ctx)
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, ErrNoToken) {
			return "", err
		}
	}
	return "", ErrNoToken
}

// userIDClaims 는 백엔드 토큰에서 사용자 ID 로 쓰일 수 있는 클레임 이름이다. 앞쪽이 우선한다.
var userIDClaims = []string{"userId", "id", "_id", "sub"}

// UserIDFromToken 은 서명 검증 없이 JWT 페이로드에서 사용자 ID 를 읽는다.
// 검증은 백엔드 몫이고 클라이언트는 요청 본문을 채우는 용도로만 쓴다.
func UserIDFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	for _, key := range userIDClaims {
		if v, ok := claims[key].(string); ok && strings.TrimSpace(v) != "" {
			return v, nil
		}
	}
	return "", ErrNoUserID
}

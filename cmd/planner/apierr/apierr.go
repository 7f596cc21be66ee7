// Package apierr 는 백엔드 호출 실패를 닫힌 종류(Kind) 집합으로 분류한다.
// 분류는 HTTP 클라이언트 경계에서 한 번만 수행하고, 호출부는 Kind 만 보고 분기한다.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthorized
	KindInsufficientCredits
	KindRateLimited
	KindServerError
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindInsufficientCredits:
		return "insufficient_credits"
	case KindRateLimited:
		return "rate_limited"
	case KindServerError:
		return "server_error"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

const insufficientCreditsMarker = "insufficient credits"

var (
	// ErrMissingToken 은 토큰 저장소에 bearer 토큰이 없을 때 사용한다.
	ErrMissingToken = errors.New("missing_token")
	// ErrUnreachable 은 응답을 받지 못한 전송 계층 실패를 나타낸다.
	ErrUnreachable = errors.New("backend_unreachable")
)

// Error 는 분류가 끝난 백엔드 호출 실패다.
type Error struct {
	Kind       Kind
	StatusCode int
	// Field 는 KindValidation 일 때 문제가 된 필드 이름이다. 비어 있을 수 있다.
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "api_error"
	}
	msg := fmt.Sprintf("api error kind=%s status=%d", e.Kind, e.StatusCode)
	if e.Message != "" {
		msg += " message=" + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// UserMessage 는 대화 기록에 그대로 보여줄 문장을 반환한다.
func (e *Error) UserMessage() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindUnauthorized:
		if errors.Is(e.Cause, ErrMissingToken) {
			return "You are not logged in. Please log in to plan your trip."
		}
		return "Your session has expired. Please log in again."
	case KindInsufficientCredits:
		return "You don't have enough credits to generate an itinerary. Request more credits to continue."
	case KindRateLimited:
		return "Too many requests. Please wait a moment and try again."
	case KindServerError:
		return "The server ran into a problem. Please try again later."
	case KindValidation:
		detail := e.Message
		if detail == "" {
			detail = "the request was rejected"
		}
		if e.Field != "" {
			return fmt.Sprintf("Invalid %s: %s", e.Field, detail)
		}
		return "Invalid request: " + detail
	default:
		if errors.Is(e.Cause, ErrUnreachable) {
			return "Unable to reach the server. Please check your connection and try again."
		}
		if e.Message != "" {
			return e.Message
		}
		return "Something went wrong. Please try again."
	}
}

// errorBody 는 백엔드가 돌려주는 에러 본문의 공통 형태다.
type errorBody struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Field   string `json:"field"`
}

// Classify 는 2xx 가 아닌 응답의 상태 코드와 본문으로 Error 를 만든다.
func Classify(statusCode int, body []byte) *Error {
	var parsed errorBody
	message := ""
	if err := json.Unmarshal(body, &parsed); err == nil {
		message = parsed.Message
		if message == "" {
			message = parsed.Error
		}
	} else {
		message = strings.TrimSpace(string(body))
	}

	e := &Error{StatusCode: statusCode, Message: message}
	switch {
	case statusCode == http.StatusUnauthorized:
		e.Kind = KindUnauthorized
	case statusCode == http.StatusForbidden && containsFold(message, insufficientCreditsMarker):
		e.Kind = KindInsufficientCredits
	case statusCode == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
	case statusCode >= http.StatusInternalServerError:
		e.Kind = KindServerError
	case statusCode == http.StatusBadRequest, statusCode == http.StatusUnprocessableEntity:
		e.Kind = KindValidation
		e.Field = parsed.Field
	default:
		e.Kind = KindUnknown
	}
	return e
}

// Unsuccessful 은 2xx 응답이지만 success=false 인 경우를 분류한다.
func Unsuccessful(statusCode int, message string) *Error {
	return &Error{Kind: KindUnknown, StatusCode: statusCode, Message: message}
}

// MissingToken 은 토큰 없이 요청하려 할 때의 Error 를 만든다.
func MissingToken() *Error {
	return &Error{Kind: KindUnauthorized, Cause: ErrMissingToken}
}

// Transport 는 응답 없이 실패한 호출을 감싼다.
func Transport(err error) *Error {
	return &Error{Kind: KindUnknown, Cause: fmt.Errorf("%w: %w", ErrUnreachable, err)}
}

// KindOf 는 err 체인에서 Error 를 찾아 Kind 를 반환한다. 없으면 KindUnknown 이다.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// UserMessageOf 는 임의의 error 를 사용자 문장으로 바꾼다.
func UserMessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	return "Something went wrong. Please try again."
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

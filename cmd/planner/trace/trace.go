package trace

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// 컨텍스트에 저장되는 키 타입은 외부에서 직접 사용하지 못하게 unexported로 둔다.
type ctxKey string

const ctxKeyTrace ctxKey = "trace_info"

// Info는 하나의 대화 세션(flow)에 대한 트레이싱 정보를 담는다.
// - SessionID: flow 인스턴스 단위로 고유
// - spanSeq: 동일 SessionID 내에서 각 outbound 호출마다 1,2,3,... 순차 증가
type Info struct {
	SessionID string
	spanSeq   int64
}

// GenerateID는 트레이싱에 사용할 랜덤 ID를 생성한다.
func GenerateID() string {
	return uuid.NewString()
}

// WithSession은 Session ID와 초기 Span 값(보통 0)을 컨텍스트에 저장한 새 컨텍스트를 반환한다.
func WithSession(ctx context.Context, sessionID string, initialSpan int64) context.Context {
	info := &Info{SessionID: sessionID, spanSeq: initialSpan}
	return context.WithValue(ctx, ctxKeyTrace, info)
}

func infoFromContext(ctx context.Context) *Info {
	if ctx == nil {
		return nil
	}
	v, _ := ctx.Value(ctxKeyTrace).(*Info)
	return v
}

// SessionIDFromContext는 컨텍스트에서 Session ID를 조회한다.
func SessionIDFromContext(ctx context.Context) string {
	info := infoFromContext(ctx)
	if info == nil {
		return ""
	}
	return info.SessionID
}

// NextSpanID는 동일한 SessionID 내에서 spanSeq를 1 증가시키고, (sessionID, spanID 문자열)를 반환한다.
func NextSpanID(ctx context.Context) (string, string) {
	info := infoFromContext(ctx)
	if info == nil {
		return GenerateID(), "1"
	}
	val := atomic.AddInt64(&info.spanSeq, 1)
	if val <= 0 {
		val = 1
	}
	return info.SessionID, strconv.FormatInt(val, 10)
}

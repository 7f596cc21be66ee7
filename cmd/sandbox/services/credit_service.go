package services

import (
	"errors"
	"sync"
)

var ErrInsufficientCredits = errors.New("insufficient credits")

// CreditService 는 사용자별 일정 생성 크레딧 잔액을 메모리에 관리한다.
// 처음 보는 사용자는 initial 만큼의 잔액으로 시작한다.
type CreditService struct {
	mu       sync.Mutex
	initial  int
	grant    int
	balances map[string]int
}

func NewCreditService(initial, grant int) *CreditService {
	return &CreditService{
		initial:  initial,
		grant:    grant,
		balances: map[string]int{},
	}
}

func (s *CreditService) balanceLocked(userID string) int {
	b, ok := s.balances[userID]
	if !ok {
		b = s.initial
		s.balances[userID] = b
	}
	return b
}

func (s *CreditService) Balance(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balanceLocked(userID)
}

// Consume 는 크레딧 1 을 차감하고 남은 잔액을 돌려준다.
func (s *CreditService) Consume(userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.balanceLocked(userID)
	if b <= 0 {
		return 0, ErrInsufficientCredits
	}
	s.balances[userID] = b - 1
	return b - 1, nil
}

// Refund 는 생성 실패 시 차감한 크레딧을 되돌린다.
func (s *CreditService) Refund(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[userID] = s.balanceLocked(userID) + 1
}

// Grant 는 크레딧 요청을 바로 승인해 grant 만큼 더한다.
func (s *CreditService) Grant(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.balanceLocked(userID) + s.grant
	s.balances[userID] = b
	return b
}

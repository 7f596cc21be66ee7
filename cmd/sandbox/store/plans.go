package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"tour-planner/models"
	"tour-planner/repositories"
)

// ErrPlanNotFound 는 메모리/Mongo 저장소가 같이 쓰는 sentinel 이다.
var ErrPlanNotFound = repositories.ErrTravelPlanNotFound

var _ PlanStore = (*repositories.TravelPlanRepository)(nil)

// PlanStore 는 생성된 일정을 보관한다.
type PlanStore interface {
	// Insert 는 PlanID 가 비어 있으면 새 uuid 를 부여하고 저장된 plan 을 돌려준다.
	Insert(ctx context.Context, plan models.TravelPlan) (models.TravelPlan, error)
	Get(ctx context.Context, planID string) (models.TravelPlan, error)
	ListByUser(ctx context.Context, userID string) ([]models.TravelPlan, error)
}

func prepare(plan models.TravelPlan) models.TravelPlan {
	if plan.PlanID == "" {
		plan.PlanID = uuid.NewString()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}
	return plan
}

type MemoryPlanStore struct {
	mu    sync.RWMutex
	plans map[string]models.TravelPlan
	order []string
}

func NewMemoryPlanStore() *MemoryPlanStore {
	return &MemoryPlanStore{plans: map[string]models.TravelPlan{}}
}

func (s *MemoryPlanStore) Insert(_ context.Context, plan models.TravelPlan) (models.TravelPlan, error) {
	plan = prepare(plan)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.plans[plan.PlanID]; !exists {
		s.order = append(s.order, plan.PlanID)
	}
	s.plans[plan.PlanID] = plan
	return plan, nil
}

func (s *MemoryPlanStore) Get(_ context.Context, planID string) (models.TravelPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plans[planID]
	if !ok {
		return models.TravelPlan{}, ErrPlanNotFound
	}
	return plan, nil
}

// ListByUser 는 최신 일정이 먼저 오도록 돌려준다.
func (s *MemoryPlanStore) ListByUser(_ context.Context, userID string) ([]models.TravelPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.TravelPlan, 0)
	for i := len(s.order) - 1; i >= 0; i-- {
		if p := s.plans[s.order[i]]; p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

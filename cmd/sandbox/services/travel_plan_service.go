package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"tour-planner/cmd/sandbox/store"
	"tour-planner/cmd/sandbox/writer"
	"tour-planner/dto"
	"tour-planner/internal/logger"
	"tour-planner/models"
)

// TravelPlanError 는 핸들러가 그대로 응답으로 옮기는 서비스 에러다.
type TravelPlanError struct {
	StatusCode int
	Message    string
	Field      string
	Cause      error
}

func (e *TravelPlanError) Error() string {
	if e == nil {
		return "travel_plan_failed"
	}
	return e.Message
}

type TravelPlanService struct {
	catalog *store.Catalog
	credits *CreditService
	plans   store.PlanStore
	writer  writer.Writer
}

func NewTravelPlanService(catalog *store.Catalog, credits *CreditService, plans store.PlanStore, w writer.Writer) *TravelPlanService {
	return &TravelPlanService{catalog: catalog, credits: credits, plans: plans, writer: w}
}

// Generate 는 크레딧을 차감하고 일정을 작성해 저장한다. 작성이나 저장에 실패하면 크레딧을 되돌린다.
func (s *TravelPlanService) Generate(ctx context.Context, userID string, req dto.TravelPlanRequest) (dto.TravelPlanData, *TravelPlanError) {
	cityName := strings.TrimSpace(req.CityName)
	if cityName == "" {
		return dto.TravelPlanData{}, &TravelPlanError{StatusCode: http.StatusBadRequest, Message: "cityName is required", Field: "cityName"}
	}
	if len(req.Answers) > len(req.Questions) && len(req.Questions) > 0 {
		return dto.TravelPlanData{}, &TravelPlanError{StatusCode: http.StatusBadRequest, Message: "more answers than questions", Field: "answers"}
	}

	remaining, err := s.credits.Consume(userID)
	if err != nil {
		return dto.TravelPlanData{}, &TravelPlanError{
			StatusCode: http.StatusForbidden,
			Message:    "Insufficient credits. Request more credits to generate a new plan.",
			Cause:      err,
		}
	}

	start := time.Now()
	itinerary, err := s.writer.Write(ctx, writer.Request{
		CityName:  cityName,
		Questions: req.Questions,
		Answers:   req.Answers,
	})
	if err != nil {
		s.credits.Refund(userID)
		logger.ErrorWithFields("itinerary writer failed", logger.Fields{
			"user_id": userID,
			"city":    cityName,
			"writer":  s.writer.Name(),
			"error":   err.Error(),
		})
		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusServiceUnavailable
		}
		return dto.TravelPlanData{}, &TravelPlanError{StatusCode: status, Message: "failed to generate itinerary", Cause: err}
	}

	plan, err := s.plans.Insert(ctx, models.TravelPlan{
		UserID:    userID,
		CityName:  cityName,
		Answers:   req.Answers,
		Itinerary: itinerary,
	})
	if err != nil {
		s.credits.Refund(userID)
		return dto.TravelPlanData{}, &TravelPlanError{StatusCode: http.StatusInternalServerError, Message: "failed to save travel plan", Cause: err}
	}

	logger.InfoWithFields("travel plan generated", logger.Fields{
		"user_id":           userID,
		"plan_id":           plan.PlanID,
		"city":              cityName,
		"writer":            s.writer.Name(),
		"duration_ms":       time.Since(start).Milliseconds(),
		"remaining_credits": remaining,
	})
	return dto.TravelPlanData{Itinerary: plan.Itinerary, PlanID: plan.PlanID}, nil
}

func (s *TravelPlanService) Get(ctx context.Context, userID, planID string) (models.TravelPlan, error) {
	plan, err := s.plans.Get(ctx, planID)
	if err != nil {
		return models.TravelPlan{}, err
	}
	if plan.UserID != userID {
		return models.TravelPlan{}, store.ErrPlanNotFound
	}
	return plan, nil
}

func (s *TravelPlanService) ListByUser(ctx context.Context, userID string) ([]models.TravelPlan, error) {
	return s.plans.ListByUser(ctx, userID)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tour-planner/cmd/sandbox/middleware"
	"tour-planner/cmd/sandbox/services"
	"tour-planner/cmd/sandbox/store"
	"tour-planner/dto"
	"tour-planner/internal/logger"
	"tour-planner/models"
)

func fail(c *gin.Context, status int, message, field string) {
	c.AbortWithStatusJSON(status, dto.StatusResponse{Success: false, Message: message, Field: field})
}

// QuestionSource 는 *store.Catalog 가 구현한다.
type QuestionSource interface {
	QuestionsForCity(cityID string) ([]models.Question, error)
}

// HealthHandler godoc
// @Summary      헬스 체크
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func HealthHandler(writerName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "writer": writerName})
	}
}

// ListCitiesHandler godoc
// @Summary      도시 목록
// @Description  order 오름차순 도시 목록
// @Tags         predefine
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.Envelope[[]models.City]
// @Failure      401  {object}  dto.StatusResponse
// @Router       /api/predefine/cities [get]
func ListCitiesHandler(catalog *store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.OK(catalog.ListCities()))
	}
}

// ListQuestionsHandler godoc
// @Summary      도시별 질문 목록
// @Description  도시 전용 질문과 공통 질문. inactive 질문도 포함되며 정렬되지 않는다.
// @Tags         predefine
// @Security     BearerAuth
// @Produce      json
// @Param        cityId  path      string  true  "city id"
// @Success      200     {object}  dto.Envelope[[]models.Question]
// @Failure      401     {object}  dto.StatusResponse
// @Failure      404     {object}  dto.StatusResponse
// @Failure      500     {object}  dto.StatusResponse
// @Router       /api/predefine/questions/city/{cityId} [get]
func ListQuestionsHandler(catalog QuestionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		questions, err := catalog.QuestionsForCity(c.Param("cityId"))
		if errors.Is(err, store.ErrCityNotFound) {
			fail(c, http.StatusNotFound, "city not found", "cityId")
			return
		}
		if err != nil {
			logger.ErrorWithFields("list questions failed", logger.Fields{
				"city_id": c.Param("cityId"),
				"error":   err.Error(),
			})
			fail(c, http.StatusInternalServerError, "failed to load questions", "")
			return
		}
		c.JSON(http.StatusOK, dto.OK(questions))
	}
}

// GuidesByCityHandler godoc
// @Summary      도시별 가이드 검색
// @Description  비활성 가이드도 포함된다.
// @Tags         search
// @Security     BearerAuth
// @Produce      json
// @Param        city  query     string  true  "city name"
// @Success      200   {object}  dto.Envelope[[]models.Guide]
// @Failure      400   {object}  dto.StatusResponse
// @Failure      401   {object}  dto.StatusResponse
// @Router       /api/search/guides/city [get]
func GuidesByCityHandler(catalog *store.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		city := strings.TrimSpace(c.Query("city"))
		if city == "" {
			fail(c, http.StatusBadRequest, "city is required", "city")
			return
		}
		c.JSON(http.StatusOK, dto.OK(catalog.GuidesForCity(city)))
	}
}

// GenerateTravelPlanHandler godoc
// @Summary      일정 생성
// @Description  크레딧 1 을 차감하고 일정을 생성한다.
// @Tags         travelPlan
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TravelPlanRequest  true  "city, questions, answers"
// @Success      200   {object}  dto.Envelope[dto.TravelPlanData]
// @Failure      400   {object}  dto.StatusResponse
// @Failure      401   {object}  dto.StatusResponse
// @Failure      403   {object}  dto.StatusResponse  "Insufficient credits"
// @Failure      500   {object}  dto.StatusResponse
// @Router       /api/travelPlan [post]
func GenerateTravelPlanHandler(svc *services.TravelPlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.TravelPlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid request body", "cityName")
			return
		}

		plan, planErr := svc.Generate(c.Request.Context(), middleware.UserID(c), req)
		if planErr != nil {
			fail(c, planErr.StatusCode, planErr.Message, planErr.Field)
			return
		}
		c.JSON(http.StatusOK, dto.OK(plan))
	}
}

// GetTravelPlanHandler godoc
// @Summary      일정 조회
// @Tags         travelPlan
// @Security     BearerAuth
// @Produce      json
// @Param        planId  path      string  true  "plan id"
// @Success      200     {object}  dto.Envelope[models.TravelPlan]
// @Failure      401     {object}  dto.StatusResponse
// @Failure      404     {object}  dto.StatusResponse
// @Router       /api/travelPlan/{planId} [get]
func GetTravelPlanHandler(svc *services.TravelPlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		plan, err := svc.Get(c.Request.Context(), middleware.UserID(c), c.Param("planId"))
		if errors.Is(err, store.ErrPlanNotFound) {
			fail(c, http.StatusNotFound, "plan not found", "planId")
			return
		}
		if err != nil {
			fail(c, http.StatusInternalServerError, "failed to load plan", "")
			return
		}
		c.JSON(http.StatusOK, dto.OK(plan))
	}
}

// ListTravelPlansHandler godoc
// @Summary      내 일정 목록
// @Description  최신 일정이 먼저 온다.
// @Tags         travelPlan
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.Envelope[[]models.TravelPlan]
// @Failure      401  {object}  dto.StatusResponse
// @Router       /api/travelPlan [get]
func ListTravelPlansHandler(svc *services.TravelPlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		plans, err := svc.ListByUser(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			fail(c, http.StatusInternalServerError, "failed to load plans", "")
			return
		}
		if plans == nil {
			plans = []models.TravelPlan{}
		}
		c.JSON(http.StatusOK, dto.OK(plans))
	}
}

// RequestCreditsHandler godoc
// @Summary      크레딧 요청
// @Description  샌드박스는 요청을 바로 승인한다. userId 는 토큰의 사용자와 같아야 한다.
// @Tags         credit
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreditRequest  true  "user id"
// @Success      200   {object}  dto.StatusResponse
// @Failure      400   {object}  dto.StatusResponse
// @Failure      401   {object}  dto.StatusResponse
// @Failure      403   {object}  dto.StatusResponse
// @Router       /api/credit/request [post]
func RequestCreditsHandler(credits *services.CreditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "userId is required", "userId")
			return
		}
		if req.UserID != middleware.UserID(c) {
			fail(c, http.StatusForbidden, "userId does not match the signed-in user", "userId")
			return
		}

		balance := credits.Grant(req.UserID)
		c.JSON(http.StatusOK, dto.StatusResponse{
			Success: true,
			Message: "Credit request approved. Balance: " + strconv.Itoa(balance),
		})
	}
}

// CreditBalanceHandler godoc
// @Summary      크레딧 잔액
// @Tags         credit
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.Envelope[dto.CreditBalance]
// @Failure      401  {object}  dto.StatusResponse
// @Router       /api/credit [get]
func CreditBalanceHandler(credits *services.CreditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		c.JSON(http.StatusOK, dto.OK(dto.CreditBalance{UserID: userID, Remaining: credits.Balance(userID)}))
	}
}

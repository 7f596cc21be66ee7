package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tour-planner/cmd/sandbox/auth"
	_ "tour-planner/cmd/sandbox/docs"
	"tour-planner/cmd/sandbox/handlers"
	"tour-planner/cmd/sandbox/middleware"
	"tour-planner/cmd/sandbox/services"
	"tour-planner/cmd/sandbox/store"
	"tour-planner/cmd/sandbox/writer"
)

type Deps struct {
	Catalog *store.Catalog
	Credits *services.CreditService
	Plans   store.PlanStore
	Writer  writer.Writer
	JWT     *auth.JWTManager
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace())

	// Health check
	r.GET("/health", handlers.HealthHandler(deps.Writer.Name()))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	plansSvc := services.NewTravelPlanService(deps.Catalog, deps.Credits, deps.Plans, deps.Writer)

	api := r.Group("/api", middleware.BearerAuth(deps.JWT))
	{
		api.GET("/predefine/cities", handlers.ListCitiesHandler(deps.Catalog))
		api.GET("/predefine/questions/city/:cityId", handlers.ListQuestionsHandler(deps.Catalog))
		api.GET("/search/guides/city", handlers.GuidesByCityHandler(deps.Catalog))

		api.POST("/travelPlan", handlers.GenerateTravelPlanHandler(plansSvc))
		api.GET("/travelPlan", handlers.ListTravelPlansHandler(plansSvc))
		api.GET("/travelPlan/:planId", handlers.GetTravelPlanHandler(plansSvc))

		api.GET("/credit", handlers.CreditBalanceHandler(deps.Credits))
		api.POST("/credit/request", handlers.RequestCreditsHandler(deps.Credits))
	}

	return r
}

// WithCORS 는 브라우저 클라이언트에서도 샌드박스를 호출할 수 있도록 CORS 를 연다.
func WithCORS(h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id", "X-Span-Id"},
		ExposedHeaders: []string{"X-Request-Id", "X-Span-Id"},
		MaxAge:         600,
	}).Handler(h)
}

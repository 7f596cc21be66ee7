package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"tour-planner/cmd/sandbox/auth"
	"tour-planner/cmd/sandbox/router"
	"tour-planner/cmd/sandbox/services"
	"tour-planner/cmd/sandbox/store"
	"tour-planner/cmd/sandbox/writer"
	"tour-planner/config"
	"tour-planner/db"
	"tour-planner/internal/logger"
	"tour-planner/repositories"
)

// @title           Tour Planner Sandbox API
// @version         1.0
// @description     Local stand-in for the marketplace travel planner endpoints
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	var (
		configPath = flag.String("config", "", "path to config.yaml (default: searched upward from the working directory)")
		printToken = flag.Bool("print-token", false, "print a signed bearer token for -user and exit")
		userID     = flag.String("user", "traveler-1", "user id for -print-token")
	)
	flag.Parse()

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		config.SetConfig(cfg)
	} else {
		config.InitApp()
	}
	cfg := config.GetConfig()
	logger.InitFromEnv("LOG_LEVEL", cfg.Logging.Level, os.Stdout)

	jwtManager := auth.NewJWTManager(cfg.Sandbox.JWTSecret)
	if *printToken {
		token, err := jwtManager.Sign(*userID)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}
	if cfg.Sandbox.JWTSecret == "" {
		logger.Log.Warn("SANDBOX_JWT_SECRET is empty; using the built-in development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fixtures := cfg.Sandbox.FixturesPath
	if fixtures != "" && !filepath.IsAbs(fixtures) {
		if base := config.GetBasePath(); base != "" {
			fixtures = filepath.Join(base, fixtures)
		}
	}
	catalog, err := store.LoadCatalog(fixtures)
	if err != nil {
		logger.Log.Errorf("failed to load fixtures: %v", err)
		os.Exit(1)
	}

	var plans store.PlanStore = store.NewMemoryPlanStore()
	if cfg.Sandbox.MongoURI != "" {
		if err := db.Init(ctx, cfg.Sandbox.MongoURI, cfg.Sandbox.MongoDBName); err != nil {
			logger.Log.Errorf("failed to initialize MongoDB: %v", err)
			os.Exit(1)
		}
		defer db.Close(context.Background())
		plans = repositories.NewTravelPlanRepository(db.Database())
	}

	var w writer.Writer = writer.TemplateWriter{}
	if cfg.Sandbox.GeminiAPIKey != "" {
		gw, err := writer.NewGeminiWriter(ctx, cfg.Sandbox.GeminiAPIKey, cfg.Sandbox.GeminiModel)
		if err != nil {
			logger.Log.Errorf("failed to create gemini client: %v", err)
			os.Exit(1)
		}
		w = gw
	}

	engine := router.New(router.Deps{
		Catalog: catalog,
		Credits: services.NewCreditService(cfg.Sandbox.InitialCredits, cfg.Sandbox.CreditGrant),
		Plans:   plans,
		Writer:  w,
		JWT:     jwtManager,
	})

	srv := &http.Server{
		Addr:              cfg.Sandbox.Addr,
		Handler:           router.WithCORS(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.InfoWithFields("sandbox listening", logger.Fields{
		"addr":         cfg.Sandbox.Addr,
		"writer":       w.Name(),
		"mongo":        cfg.Sandbox.MongoURI != "",
		"cities":       len(catalog.Cities),
		"init_credits": cfg.Sandbox.InitialCredits,
	})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"company-dashboard/internal/buildinfo"
	"company-dashboard/internal/config"
	apphttp "company-dashboard/internal/http"
	"company-dashboard/internal/repository/sqlite"
	"company-dashboard/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := userRepo.Seed(ctx); err != nil {
		logger.Fatalf("seed users: %v", err)
	}

	userService := service.NewUserService(userRepo)
	authService, err := service.NewAuthService(cfg.Auth.Username, cfg.Auth.Password)
	if err != nil {
		logger.Fatalf("init auth: %v", err)
	}

	build := buildinfo.Resolve(cfg.Build.ID, cfg.Build.Commit)
	logger.Infof("build %q, database %s", build, cfg.Database.Path)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, authService, logger, apphttp.Config{
		Build:         build,
		DBPath:        cfg.Database.Path,
		StaticDir:     cfg.Server.StaticDir,
		SecureCookies: cfg.Production(),
		NewsFeedURL:   cfg.News.FeedURL,
		NewsSource:    cfg.News.Source,
		ForecastURL:   cfg.Weather.ForecastURL,
		GeocodeURL:    cfg.Weather.GeocodeURL,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.ListenAddr(),
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	database "github.com/MateAKD/Carta_Menu_Backend/config"
	controllers "github.com/MateAKD/Carta_Menu_Backend/controllers"
	"github.com/MateAKD/Carta_Menu_Backend/logger"
	middleware "github.com/MateAKD/Carta_Menu_Backend/middlewares"
	routes "github.com/MateAKD/Carta_Menu_Backend/routes"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const cleanupRunTimeout = 2 * time.Minute

// startDeletedReaper reaps aged soft-deleted products on the configured
// interval. Disabled when CLEANUP_INTERVAL_HOURS is zero or negative.
func startDeletedReaper(ctx context.Context, cfg *database.Config) {
	if cfg.CleanupIntervalHours <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(time.Duration(cfg.CleanupIntervalHours) * time.Hour)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, cleanupRunTimeout)
			report, err := controllers.RunCleanup(runCtx, cfg.CleanupRetentionDays, false, "system")
			cancel()
			if err != nil {
				logger.L().Warn("deleted reaper: cleanup pass failed", zap.Error(err))
				return
			}
			if report.Count > 0 {
				logger.L().Info("deleted reaper: removed aged soft-deletes",
					zap.Int("count", report.Count),
					zap.Int("retentionDays", report.RetentionDays))
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}

func main() {
	// Load environment variables; a missing .env is fine outside development
	_ = godotenv.Load()

	cfg := database.Load()
	log := logger.Init(cfg.AppEnv)
	defer log.Sync()

	router := mux.NewRouter()

	// Public Routes (No Authentication)
	routes.PublicMenuRoutes(router)

	// Apply Authentication Middleware to Protected Routes
	securedRoutes := router.PathPrefix("/").Subrouter()
	securedRoutes.Use(middleware.Authentication)
	routes.MenuProtectedRoutes(securedRoutes)
	routes.CategoryProtectedRoutes(securedRoutes)
	routes.AdminProtectedRoutes(securedRoutes)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startDeletedReaper(ctx, cfg)

	handler := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(router)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown was not clean", zap.Error(err))
	}
}

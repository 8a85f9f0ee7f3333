package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/healthtrack/healthtrack-go/internal/config"
	"github.com/healthtrack/healthtrack-go/internal/handler"
	"github.com/healthtrack/healthtrack-go/internal/middleware"
	"github.com/healthtrack/healthtrack-go/internal/repository"
	"github.com/healthtrack/healthtrack-go/internal/service"
	"github.com/healthtrack/healthtrack-go/internal/sheet"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	// Sheet client: Google when credentials are configured, otherwise an
	// in-process sheet so the API still runs locally.
	var sheetClient sheet.Client
	if cfg.GoogleCredentials != "" && cfg.SpreadsheetID != "" {
		gc, err := sheet.NewGoogle(ctx, []byte(cfg.GoogleCredentials), cfg.SpreadsheetID)
		if err != nil {
			slog.Error("google sheets init failed", "error", err)
			os.Exit(1)
		}
		sheetClient = gc
	} else {
		slog.Warn("missing Google Sheets credentials or spreadsheet id — using in-memory sheet")
		sheetClient = sheet.NewMemory()
	}

	var userStore repository.UserStore
	switch cfg.UserStore {
	case "sheet":
		userStore = repository.NewSheetUserStore(sheetClient, cfg.UserRange)
	default:
		db, err := repository.NewDB(cfg.DatabaseDSN)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		userStore = repository.NewMySQLUserStore(db)
	}

	authService := service.NewAuthService(userStore, cfg.JWTSecret, cfg.JWTExpiry)
	authHandler := handler.NewAuthHandler(authService)

	logStore := repository.NewSheetLogStore(sheetClient, cfg.LogRange)
	logService := service.NewLogService(logStore)
	logHandler := handler.NewLogHandler(logService)

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/api/v1/auth/register", authHandler.HandleRegister)
	r.Post("/api/v1/auth/login", authHandler.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))
		r.Get("/api/v1/auth/me", authHandler.HandleMe)

		r.Post("/api/v1/logs", logHandler.HandleSubmit)
		r.Get("/api/v1/logs", logHandler.HandleList)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "user_store", cfg.UserStore)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

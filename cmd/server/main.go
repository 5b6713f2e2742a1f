package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"feednbounce-backend/internal/config"
	"feednbounce-backend/internal/database"
	"feednbounce-backend/internal/feedback"
	"feednbounce-backend/internal/handlers"
	"feednbounce-backend/internal/logger"
	customMiddleware "feednbounce-backend/internal/middleware"
	"feednbounce-backend/internal/slack"
	"feednbounce-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("feednbounce-backend", "info")
		bootLog.Fatal().Err(err).Msg("loading config")
	}

	log := logger.New("feednbounce-backend", cfg.LogLevel)

	// Primary backend is optional: without it every call lands on the
	// file fallback, matching the original deployment story.
	var primary store.Store
	var health store.HealthChecker
	if cfg.MongoURI != "" {
		db, err := database.Connect(cfg.MongoURI, cfg.DBName)
		if err != nil {
			log.Warn().Err(err).Msg("MongoDB unreachable, using file storage")
		} else {
			log.Info().Msg("connected to MongoDB")
			mongoStore := store.NewMongoStore(db)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := mongoStore.EnsureIndexes(ctx); err != nil {
				log.Warn().Err(err).Msg("creating indexes")
			}
			cancel()

			primary = mongoStore
			health = db
		}
	} else {
		log.Warn().Msg("MONGODB_URI not set, using file storage")
	}

	st := store.NewFailover(primary, health, store.NewFileStore(cfg.DataFile), log)

	notifier := slack.NewMockSlack(log)
	svc := feedback.NewService(st, notifier, log)
	agg := feedback.NewAggregator(st, log)

	authHandler := handlers.NewAuthHandler(st, cfg.JWTSecret, cfg.ResendAPIKey, cfg.FromEmail, log)
	feedbackHandler := handlers.NewFeedbackHandler(svc, log)
	adminHandler := handlers.NewAdminHandler(agg, log)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"feednbounce-backend"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/feedback/guest", feedbackHandler.SubmitGuestFeedback)

		// Registered-user routes (JWT required)
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.JWTAuth(cfg.JWTSecret))

			r.Post("/feedback", feedbackHandler.SubmitFeedback)
			r.Get("/feedback/history", feedbackHandler.History)
		})

		// Admin routes (JWT + admin role)
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.JWTAuth(cfg.JWTSecret))
			r.Use(customMiddleware.RequireAdmin)

			r.Get("/admin/stats", adminHandler.GetStats)
			r.Get("/admin/sentiments", adminHandler.GetSentiments)
			r.Get("/admin/feedbacks", adminHandler.GetFeedbacks)
		})
	})

	log.Info().Str("port", cfg.Port).Msg("🚀 FeedNBounce backend starting")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

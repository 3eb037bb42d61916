package main

import (
	"log"
	"net/http"
	"time"

	"github.com/bmitracker/backend/internal/config"
	"github.com/bmitracker/backend/internal/db"
	"github.com/bmitracker/backend/internal/handler"
	"github.com/bmitracker/backend/internal/middleware"
	"github.com/bmitracker/backend/internal/repository"
	"github.com/bmitracker/backend/internal/service"
	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable must be set")
	}

	database, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	accountRepo := repository.NewAccountRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	measurementRepo := repository.NewMeasurementRepository(database)
	legacyRepo := repository.NewLegacyMeasurementRepository(database, service.Classify)
	resetTokenRepo := repository.NewResetTokenRepository(database)
	goalRepo := repository.NewGoalRepository(database)

	// History reads try the current table first and fall back to the
	// retired schema for accounts that were never backfilled.
	measurementSources := repository.NewMeasurementSourceChain(measurementRepo, legacyRepo)

	emailService := service.NewEmailService(cfg.ResendAPIKey, cfg.EmailFrom)

	authHandler := handler.NewAuthHandler(cfg.JWTSecret, accountRepo, resetTokenRepo, emailService)
	profileHandler := handler.NewProfileHandler(profileRepo)
	measurementHandler := handler.NewMeasurementHandler(measurementRepo, measurementSources, profileRepo, goalRepo)
	goalHandler := handler.NewGoalHandler(goalRepo, profileRepo)

	// Rate limiters
	loginRL := middleware.NewRateLimiter(5, 15*time.Minute)
	forgotPasswordRL := middleware.NewRateLimiter(3, 60*time.Minute)

	r := mux.NewRouter()

	// Global middleware: CORS → Security Headers → MaxBytesReader
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
			next.ServeHTTP(w, r)
		})
	})

	r.HandleFunc("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet, http.MethodOptions)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.Use(middleware.APIKeyMiddleware(cfg.APIKey))

	api.Handle("/auth/register", http.HandlerFunc(authHandler.Register)).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/auth/login", loginRL.Middleware(http.HandlerFunc(authHandler.Login))).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/auth/forgot-password", forgotPasswordRL.Middleware(http.HandlerFunc(authHandler.ForgotPassword))).Methods(http.MethodPost, http.MethodOptions)
	api.Handle("/auth/reset-password", http.HandlerFunc(authHandler.ResetPassword)).Methods(http.MethodPost, http.MethodOptions)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	protected.HandleFunc("/me/profile", profileHandler.Get).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/me/profile", profileHandler.Update).Methods(http.MethodPatch, http.MethodOptions)
	protected.HandleFunc("/me/measurements", measurementHandler.Create).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/me/measurements", measurementHandler.List).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/me/measurements/{id}", measurementHandler.Update).Methods(http.MethodPut, http.MethodOptions)
	protected.HandleFunc("/me/measurements/{id}", measurementHandler.Delete).Methods(http.MethodDelete, http.MethodOptions)
	protected.HandleFunc("/me/goal", goalHandler.Set).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/me/goal", goalHandler.Get).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/me/goal/complete", goalHandler.Complete).Methods(http.MethodPost, http.MethodOptions)
	protected.HandleFunc("/me/goal/abandon", goalHandler.Abandon).Methods(http.MethodPost, http.MethodOptions)

	addr := ":" + cfg.Port
	log.Printf("server starting on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

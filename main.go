package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/smarttax/backend/src/config"
	"github.com/username/smarttax/backend/src/database"
	"github.com/username/smarttax/backend/src/handlers"
	"github.com/username/smarttax/backend/src/logger"
	"github.com/username/smarttax/backend/src/model"
	"github.com/username/smarttax/backend/src/processors"
	"github.com/username/smarttax/backend/src/security"
	"github.com/username/smarttax/backend/src/services"
	"golang.org/x/time/rate"
)

func rateLimitMiddleware(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000": true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Requested-With, Cookie, If-None-Match")
			w.Header().Set("Access-Control-Expose-Headers", "X-CSRF-Token, ETag")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			logger.L.Debug("Handling OPTIONS preflight request", "path", r.URL.Path, "origin", origin)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// sessionCleanupLoop drops wizard sessions idle past the configured window.
func sessionCleanupLoop(maxIdle time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		n, err := model.DeleteIdleWizardSessions(database.DB, time.Now().Add(-maxIdle))
		if err != nil {
			logger.L.Error("Failed to clean up idle wizard sessions", "error", err)
			continue
		}
		if n > 0 {
			logger.L.Info("Cleaned up idle wizard sessions", "count", n)
		}
	}
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Smarttax backend server starting...")

	if len(config.Cfg.SessionSecret) < 32 {
		logger.L.Error("SESSION_SECRET configuration invalid. Must be at least 32 bytes.")
		os.Exit(1)
	}
	if len(config.Cfg.CSRFAuthKey) < 32 {
		logger.L.Error("CSRF_AUTH_KEY must be at least 32 bytes long.")
		os.Exit(1)
	}

	logger.L.Info("Initializing data loaders...")
	if err := processors.LoadTaxTables(config.Cfg.TaxTablePath); err != nil {
		logger.L.Error("Failed to load tax tables, using built-in defaults", "error", err)
	}

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	logger.L.Info("Database initialized successfully.")

	logger.L.Info("Initializing result cache...")
	resultCache := cache.New(15*time.Minute, 30*time.Minute)
	logger.L.Info("Result cache initialized.")

	logger.L.Info("Initializing services and handlers...")
	authService := security.NewAuthService(config.Cfg.SessionSecret)
	taxProcessor := processors.NewTaxProcessor()

	wizardService := services.NewWizardService(database.DB, taxProcessor, resultCache)

	wizardHandler := handlers.NewWizardHandler(wizardService, authService)
	calculationHandler := handlers.NewCalculationHandler(taxProcessor)

	go sessionCleanupLoop(config.Cfg.SessionMaxIdle)

	logger.L.Info("Configuring routes...")
	rootMux := http.NewServeMux()
	apiRouter := http.NewServeMux()

	// Public GET routes (no CSRF needed for these GETs)
	apiRouter.HandleFunc("GET /api/auth/csrf", handlers.GetCSRFToken)

	csrfProtection := handlers.CSRFMiddleware()
	applyCsrfAndAuth := func(handler http.HandlerFunc) http.Handler {
		return csrfProtection(wizardHandler.AuthMiddleware(handler))
	}

	// Session creation issues the token, so it only gets CSRF protection.
	apiRouter.Handle("POST /api/wizard/session", csrfProtection(http.HandlerFunc(wizardHandler.HandleCreateSession)))

	apiRouter.Handle("GET /api/wizard/state", applyCsrfAndAuth(wizardHandler.HandleGetState))
	apiRouter.Handle("PUT /api/wizard/section/{section}", applyCsrfAndAuth(wizardHandler.HandleUpdateSection))
	apiRouter.Handle("POST /api/wizard/next", applyCsrfAndAuth(wizardHandler.HandleNextStep))
	apiRouter.Handle("POST /api/wizard/prev", applyCsrfAndAuth(wizardHandler.HandlePrevStep))
	apiRouter.Handle("POST /api/wizard/reset", applyCsrfAndAuth(wizardHandler.HandleReset))
	apiRouter.Handle("POST /api/wizard/goto", applyCsrfAndAuth(wizardHandler.HandleGoToStep))
	apiRouter.Handle("GET /api/wizard/scenario", applyCsrfAndAuth(wizardHandler.HandleGetScenario))
	apiRouter.Handle("POST /api/wizard/calculate", applyCsrfAndAuth(wizardHandler.HandleCalculate))

	// Stateless endpoints: no session, CSRF only.
	apiRouter.Handle("POST /api/calculate", csrfProtection(http.HandlerFunc(calculationHandler.HandleCalculate)))
	apiRouter.Handle("POST /api/scenario/match", csrfProtection(http.HandlerFunc(calculationHandler.HandleScenarioMatch)))

	rootMux.Handle("/api/", apiRouter)

	rootMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "SMARTTAX Backend is running"})
		} else {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				logger.L.Warn("Root level path not found", "method", r.Method, "path", r.URL.Path)
				http.NotFound(w, r)
			}
		}
	})

	logger.L.Info("Applying global middleware...")
	limiter := rate.NewLimiter(rate.Every(config.Cfg.RateLimitInterval), config.Cfg.RateLimitBurst)
	finalHandler := enableCORS(rateLimitMiddleware(limiter, rootMux))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}

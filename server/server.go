package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"NoLabelPanel/cache"
	"NoLabelPanel/config"
	"NoLabelPanel/core/auth"
	"NoLabelPanel/core/moderation"
	"NoLabelPanel/logger"
	"NoLabelPanel/repository"
	"NoLabelPanel/supabase"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	if cfg.SupabaseURL == "" || cfg.SupabaseAnonKey == "" {
		logger.Fatal("[Server] SUPABASE_URL and SUPABASE_ANON_KEY must be set")
	}

	if err := cache.ConnectRedis(cfg); err != nil {
		logger.Fatal("[Server] failed to connect to Redis", logger.ErrorField(err))
	}
	defer cache.CloseRedis()

	client := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	catalogRepo := repository.NewSupabaseCatalogRepository(client)
	moderatorRepo := repository.NewSupabaseModeratorRepository(client)

	gate := auth.NewGate(client, moderatorRepo)
	engine := moderation.NewEngine(catalogRepo)
	apiHandler := NewAPIHandler(gate, engine, catalogRepo, cfg)

	router := mux.NewRouter()

	// CORS: the panel UI is served from its own origin.
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Session endpoints
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/logout", apiHandler.AuthMiddleware(apiHandler.LogoutHandler)).Methods(http.MethodPost)

	// Moderation endpoints
	router.HandleFunc("/api/tracks", apiHandler.AuthMiddleware(apiHandler.GetTracksHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/stats", apiHandler.AuthMiddleware(apiHandler.GetStatsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/tracks/{id}/approve", apiHandler.AuthMiddleware(apiHandler.ApproveTrackHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/tracks/{id}", apiHandler.AuthMiddleware(apiHandler.RejectTrackHandler)).Methods(http.MethodDelete)

	// Preview player state
	router.HandleFunc("/api/player", apiHandler.AuthMiddleware(apiHandler.GetPlayerHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/player", apiHandler.AuthMiddleware(apiHandler.UpdatePlayerHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/player", apiHandler.AuthMiddleware(apiHandler.StopPlayerHandler)).Methods(http.MethodDelete)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("[Server] moderation panel listening", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("[Server] failed to start", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("[Server] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("[Server] forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("[Server] stopped")
}

package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moodfm/cache"
	"moodfm/config"
	"moodfm/core/gemini"
	"moodfm/core/player"
	"moodfm/core/recommend"
	"moodfm/core/spotify"
	"moodfm/db"
	"moodfm/logger"
	"moodfm/repository"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogPath,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     14,
		Compress:   true,
	})

	// Retune log level when .env changes, without a restart.
	if stop, err := config.WatchLogLevel(".env", logger.SetLevel); err == nil {
		defer stop()
	} else {
		logger.Debug("[Server] .env watch unavailable", logger.ErrorField(err))
	}

	if err := db.ConnectDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.DB.Close()

	if err := db.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := db.ConnectGormDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database with GORM: %v", err)
	}
	defer db.CloseGormDB()

	if err := db.ConnectRedis(cfg); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer db.CloseRedis()
	logger.Info("[Server] connected to Redis")

	favoriteRepo := repository.NewFavoriteRepository()

	// Warm the favorite cache from the most recent records.
	if recent, err := favoriteRepo.Recent(50); err == nil {
		cache.WarmUpFavorites(context.Background(), recent)
	} else {
		logger.Warn("[Server] favorite cache warm-up skipped", logger.ErrorField(err))
	}

	geminiClient := gemini.NewClient(gemini.Config{
		BaseURL: cfg.GeminiAPIURL,
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.UpstreamTimeout,
	})
	spotifyClient := spotify.NewClient(cfg.SpotifyAPIURL, cfg.UpstreamTimeout)
	resolver := spotify.NewResolver(spotifyClient, spotify.DefaultResolveWorkers)
	pipeline := recommend.NewPipeline(geminiClient, resolver)

	remote := player.NewHTTPRemote(cfg.SpotifyAPIURL, cfg.UpstreamTimeout)
	session := player.NewSession(remote)

	apiHandler := NewAPIHandler(pipeline, favoriteRepo, session, cfg)

	router := mux.NewRouter()
	router.Use(corsMiddleware)

	// Session minting is the only route outside auth.
	router.HandleFunc("/api/session", apiHandler.CreateSessionHandler).Methods(http.MethodPost, http.MethodOptions)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(apiHandler.AuthMiddleware)

	api.HandleFunc("/recommendations", apiHandler.RecommendationsHandler).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/recommendations/text", apiHandler.RecommendationsTextHandler).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/recommendations/refresh", apiHandler.RefreshRecommendationsHandler).Methods(http.MethodPost, http.MethodOptions)

	api.HandleFunc("/favorites", apiHandler.ListFavoritesHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/favorites/{trackId}", apiHandler.SaveFavoriteHandler).Methods(http.MethodPut, http.MethodOptions)
	api.HandleFunc("/favorites/{trackId}", apiHandler.DeleteFavoriteHandler).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/favorites/{trackId}/status", apiHandler.FavoriteStatusHandler).Methods(http.MethodGet, http.MethodOptions)

	api.HandleFunc("/player/connect", apiHandler.ConnectHandler).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/player/disconnect", apiHandler.DisconnectHandler).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/player/play", apiHandler.PlayHandler).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/player/pause", apiHandler.PauseHandler).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/player/resume", apiHandler.ResumeHandler).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/player/seek", apiHandler.SeekHandler).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/player/state", apiHandler.PlayerStateHandler).Methods(http.MethodGet, http.MethodOptions)

	// The websocket endpoint authenticates via query token, not header.
	router.HandleFunc("/ws/player", apiHandler.PlayerStreamHandler)

	httpServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout: 30 * time.Second,
		// Recommendation requests block on the model upstream, which is
		// allowed up to the full upstream timeout before giving up.
		WriteTimeout: cfg.UpstreamTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("[Server] listening", logger.String("addr", cfg.ServerAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("[Server] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("[Server] shutdown error", logger.ErrorField(err))
	}
}

// corsMiddleware allows the mobile/web clients to call the API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

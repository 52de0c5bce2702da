package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/afriframe/studio-api/internal/config"
	"github.com/afriframe/studio-api/internal/domain/auth"
	"github.com/afriframe/studio-api/internal/domain/availability"
	"github.com/afriframe/studio-api/internal/domain/booking"
	"github.com/afriframe/studio-api/internal/domain/catalog"
	"github.com/afriframe/studio-api/internal/domain/gallery"
	"github.com/afriframe/studio-api/internal/domain/realtime"
	"github.com/afriframe/studio-api/internal/domain/user"
	"github.com/afriframe/studio-api/internal/middleware"
	"github.com/afriframe/studio-api/internal/pkg/database"
	"github.com/afriframe/studio-api/internal/pkg/imaging"
	"github.com/afriframe/studio-api/internal/pkg/jwt"
	"github.com/afriframe/studio-api/internal/pkg/response"
	"github.com/afriframe/studio-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Afriframe Studio API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	r2Storage, err := storage.NewR2Storage(storage.R2Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		AccessKeySecret: cfg.R2AccessKeySecret,
		BucketName:      cfg.R2BucketName,
		PublicURL:       cfg.R2PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create R2 storage")
	}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	refreshRepo := auth.NewRefreshTokenRepository(db)
	catalogRepo := catalog.NewRepository(db)
	availabilityRepo := availability.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	galleryRepo := gallery.NewRepository(db)

	// ---------- Realtime hub ----------
	hub := realtime.NewHub(redis)
	go hub.Run()
	defer hub.Close()

	// ---------- Services ----------
	authService := auth.NewService(userRepo, refreshRepo, jwtService, cfg.AdminSignupOpen)
	bookingService := booking.NewService(bookingRepo, hub)
	galleryService := gallery.NewService(galleryRepo, r2Storage, imaging.NewProcessor(imaging.DefaultConfig()))

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogRepo)
	availabilityHandler := availability.NewHandler(availabilityRepo)
	bookingHandler := booking.NewHandler(bookingService)
	galleryHandler := gallery.NewHandler(galleryService)
	realtimeHandler := realtime.NewHandler(hub, cfg.AllowedOrigins)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint (before Compress). Browsers cannot set headers on
	// WebSocket handshakes, so the token rides a query param.
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		authMiddleware(http.HandlerFunc(realtimeHandler.WebSocket)).ServeHTTP(w, r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Mount("/auth", authHandler.Routes(authMiddleware))
		r.Mount("/services", catalogHandler.Routes())
		r.Mount("/availability", availabilityHandler.Routes())
		r.Mount("/bookings", bookingHandler.Routes())
		r.Mount("/gallery", galleryHandler.Routes())
		r.Get("/explore", galleryHandler.Explore)

		r.Route("/admin", func(r chi.Router) {
			r.Mount("/services", catalogHandler.AdminRoutes(authMiddleware))
			r.Mount("/availability", availabilityHandler.AdminRoutes(authMiddleware))
			r.Mount("/bookings", bookingHandler.AdminRoutes(authMiddleware))
			r.Mount("/gallery", galleryHandler.AdminRoutes(authMiddleware))
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}

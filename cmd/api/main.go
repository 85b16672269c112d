package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/affordablebilliards/billiards_api/internal/cache"
	"github.com/affordablebilliards/billiards_api/internal/config"
	"github.com/affordablebilliards/billiards_api/internal/database"
	"github.com/affordablebilliards/billiards_api/internal/handler"
	"github.com/affordablebilliards/billiards_api/internal/middleware"
	"github.com/affordablebilliards/billiards_api/internal/repository"
	"github.com/affordablebilliards/billiards_api/internal/service"
	"github.com/affordablebilliards/billiards_api/internal/sse"
	"github.com/affordablebilliards/billiards_api/internal/storage"
	"github.com/affordablebilliards/billiards_api/internal/store"
	"github.com/affordablebilliards/billiards_api/internal/utils"
	"github.com/affordablebilliards/billiards_api/internal/web"
)

// main is the entrypoint for the Affordable Billiards site and admin API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger and session signing
	setupLogger(cfg.Env)
	utils.InitJWT(cfg.JWTSecret, cfg.Session.TTL)
	log.Info().Str("env", cfg.Env).Str("store", cfg.Store.Driver).Str("storage", cfg.Storage.Driver).Msg("starting billiards api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Firebase app, shared by Firestore and Storage when either is selected
	var fbApp *firebase.App
	if cfg.Store.Driver == config.StoreFirestore || cfg.Storage.Driver == config.StorageFirebase {
		fbApp, err = database.NewFirebaseApp(ctx, &cfg.Firebase)
		if err != nil {
			log.Warn().Err(err).Msg("firebase initialization failed - dependent backends will be unavailable")
		}
	}

	// 4. Document store. A failed backend degrades to Unavailable so the
	// public pages keep rendering.
	docs := openStore(ctx, cfg, fbApp)
	defer docs.Close()

	// 5. Object storage
	objects := openStorage(ctx, cfg, fbApp)

	// 6. Login lockout guard
	var guard service.LoginGuard
	if cfg.Redis.Host != "" {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis connection failed - falling back to in-memory lockout")
		} else {
			defer redisClient.Close()
			guard = cache.NewRedisLoginGuard(redisClient, cfg.Login.MaxAttempts, cfg.Login.Lockout)
			log.Info().Msg("redis connected successfully")
		}
	}
	if guard == nil {
		guard = cache.NewMemoryLoginGuard(cfg.Login.MaxAttempts, cfg.Login.Lockout)
	}

	// 7. Repositories
	tableRepo := repository.NewTableRepository(docs)
	reviewRepo := repository.NewReviewRepository(docs)
	rfqRepo := repository.NewRFQRepository(docs)
	blogRepo := repository.NewBlogRepository(docs)
	adminRepo := repository.NewAdminUserRepository(docs)

	// 8. Services
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub)

	tableSvc := service.NewTableService(tableRepo)
	reviewSvc := service.NewReviewService(reviewRepo, notifier)
	rfqSvc := service.NewRFQService(rfqRepo, notifier)
	blogSvc := service.NewBlogService(blogRepo)
	uploadSvc := service.NewUploadService(objects)
	authSvc := service.NewAuthService(adminRepo, guard)
	dashboardSvc := service.NewDashboardService(tableSvc, reviewSvc, rfqSvc)

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		seedCtx, seedCancel := context.WithTimeout(ctx, 10*time.Second)
		created, err := authSvc.EnsureAdmin(seedCtx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
		seedCancel()
		switch {
		case err != nil:
			log.Warn().Err(err).Str("email", cfg.Admin.Email).Msg("admin bootstrap failed")
		case created:
			log.Info().Str("email", cfg.Admin.Email).Msg("admin account created")
		}
	}

	// 9. Handlers
	pages, err := web.New(cfg.Site)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse page templates")
	}

	failOpen := cfg.API.ListFailOpen
	handlers := &handler.Handlers{
		Health:    handler.NewHealthHandler(docs, uploadSvc, authSvc),
		Auth:      handler.NewAuthHandler(authSvc, cfg.Session),
		Table:     handler.NewTableHandler(tableSvc, failOpen),
		Review:    handler.NewReviewHandler(reviewSvc, uploadSvc, failOpen),
		RFQ:       handler.NewRFQHandler(rfqSvc, failOpen),
		Blog:      handler.NewBlogHandler(blogSvc, failOpen),
		Upload:    handler.NewUploadHandler(uploadSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		SSE:       handler.NewSSEHandler(hub),
		Site:      handler.NewSiteHandler(pages, tableSvc, reviewSvc, rfqSvc, blogSvc, uploadSvc),
	}

	// 10. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := handler.NewEngine(cfg.API)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid TRUSTED_PROXIES")
	}
	handler.RegisterRoutes(router, handlers, middleware.NewJWTMiddleware(cfg.Session.CookieName))

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	cancel()

	// 13. Shutdown HTTP server with timeout. SSE streams end with their
	// request contexts.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// openStore builds the configured document store or an Unavailable store
// carrying the reason it could not be opened.
func openStore(ctx context.Context, cfg *config.Config, app *firebase.App) store.Store {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		log.Warn().Msg("using in-memory store - data is lost on restart")
		return store.NewMemory()

	case config.StorePostgres:
		db, err := database.Connect(&cfg.DB)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			return store.NewUnavailable(err)
		}
		if err := database.Migrate(db.DB, cfg.DB.MigrationsPath); err != nil {
			log.Error().Err(err).Msg("migration failed")
			db.Close()
			return store.NewUnavailable(err)
		}
		log.Info().Msg("migrations completed successfully")
		return store.NewPostgres(db)

	default:
		if app == nil {
			return store.NewUnavailable(errors.New("firebase not configured"))
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			log.Error().Err(err).Msg("firestore client failed")
			return store.NewUnavailable(err)
		}
		log.Info().Msg("firestore connected")
		return store.NewFirestore(client)
	}
}

// openStorage builds the configured object storage. A nil result disables
// uploads.
func openStorage(ctx context.Context, cfg *config.Config, app *firebase.App) storage.ObjectStorage {
	switch cfg.Storage.Driver {
	case config.StorageNone:
		return nil

	case config.StorageS3:
		s3, err := storage.NewS3(ctx, &cfg.S3)
		if err != nil {
			log.Warn().Err(err).Msg("S3 initialization failed - uploads will be disabled")
			return nil
		}
		return s3

	default:
		if app == nil {
			log.Warn().Msg("firebase not configured - uploads will be disabled")
			return nil
		}
		client, err := app.Storage(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("firebase storage initialization failed - uploads will be disabled")
			return nil
		}
		bucket, err := client.DefaultBucket()
		if err != nil {
			log.Warn().Err(err).Msg("firebase storage bucket not configured - uploads will be disabled")
			return nil
		}
		return storage.NewFirebase(bucket, cfg.Firebase.StorageBucket)
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/vidshare/internal/application/comment"
	"github.com/baechuer/vidshare/internal/application/engagement"
	"github.com/baechuer/vidshare/internal/application/playlist"
	"github.com/baechuer/vidshare/internal/application/tweet"
	"github.com/baechuer/vidshare/internal/application/user"
	"github.com/baechuer/vidshare/internal/application/video"
	"github.com/baechuer/vidshare/internal/audit"
	"github.com/baechuer/vidshare/internal/config"
	"github.com/baechuer/vidshare/internal/infrastructure/caching/redis"
	"github.com/baechuer/vidshare/internal/infrastructure/db/postgres"
	"github.com/baechuer/vidshare/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/vidshare/internal/infrastructure/storage"
	"github.com/baechuer/vidshare/internal/logger"
	"github.com/baechuer/vidshare/internal/security"
	"github.com/baechuer/vidshare/internal/transport/http/handlers"
	"github.com/baechuer/vidshare/internal/transport/http/middleware"
	"github.com/baechuer/vidshare/internal/transport/http/router"
)

// sysClock is the wall clock in UTC.
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// App holds every long-lived dependency so main can close them in order.
type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB

	Redis     *redis.Client
	Publisher *rabbitmq.Publisher
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, postgres.Options{
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()

	if cfg.DBMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			zlog.Fatal().Err(err).Msg("db migrate failed")
		}
		zlog.Info().Msg("migrations applied")
	}

	app, err := NewApp(ctx, cfg, db)
	if err != nil {
		zlog.Fatal().Err(err).Msg("app wiring failed")
	}
	defer app.Close()

	errCh := make(chan error, 1)
	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Str("env", cfg.AppEnv).Msg("listening")
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			zlog.Error().Err(err).Msg("server crashed")
		}
	case <-ctx.Done():
		zlog.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("graceful shutdown failed")
	}
	zlog.Info().Msg("server stopped")
}

func NewApp(ctx context.Context, cfg *config.Config, db *sql.DB) (*App, error) {
	app := &App{Config: cfg, DB: db}

	// 1) Infrastructure
	var limiter middleware.RateLimiter
	if cfg.RedisURL != "" {
		rc, err := redis.NewFromURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		if err := rc.Ping(ctx); err != nil {
			zlog.Warn().Err(err).Msg("redis ping failed; limiter will fail open until it recovers")
		}
		app.Redis = rc
		limiter = redis.NewFixedWindowLimiter(rc)
	} else {
		zlog.Warn().Msg("REDIS_URL empty: using in-process rate limiting")
	}

	var pub video.EventPublisher = video.NoopPublisher{}
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.Publisher = p
		pub = p
		zlog.Info().Str("exchange", cfg.RabbitExchange).Msg("rabbit publisher ready")
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: domain events will not be published")
	}

	var assets video.AssetStore = storage.NoopAssetStore{}
	if cfg.AssetStoreEnabled() {
		s3, err := storage.NewS3AssetStore(ctx, storage.Options{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			UsePathStyle:    cfg.S3UsePathStyle,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
		if err != nil {
			app.Close()
			return nil, err
		}
		assets = s3
	} else {
		zlog.Warn().Msg("S3_BUCKET empty: asset deletion is a no-op")
	}

	// 2) Application
	clock := sysClock{}
	auditLog := audit.New(zlog.Logger)

	videoSvc := video.New(postgres.NewVideoRepo(db), assets, pub, clock, auditLog)
	engagementSvc := engagement.New(postgres.NewRelationStore(db), clock, auditLog)
	commentSvc := comment.New(postgres.NewCommentRepo(db), clock, auditLog)
	tweetSvc := tweet.New(postgres.NewTweetRepo(db), assets, clock, auditLog)
	playlistSvc := playlist.New(postgres.NewPlaylistRepo(db), clock, auditLog)
	userSvc := user.New(postgres.NewUserRepo(db), assets, clock, auditLog)

	// 3) Transport
	checks := map[string]handlers.PingFunc{"postgres": db.PingContext}
	if app.Redis != nil {
		checks["redis"] = app.Redis.Ping
	}
	h := router.Handlers{
		Videos:        handlers.NewVideosHandler(videoSvc),
		Comments:      handlers.NewCommentsHandler(commentSvc),
		Tweets:        handlers.NewTweetsHandler(tweetSvc),
		Likes:         handlers.NewLikesHandler(engagementSvc),
		Subscriptions: handlers.NewSubscriptionsHandler(engagementSvc),
		Playlists:     handlers.NewPlaylistsHandler(playlistSvc),
		Users:         handlers.NewUsersHandler(userSvc),
		Dashboard:     handlers.NewDashboardHandler(videoSvc),
		Health:        handlers.NewHealthHandler(checks),
	}
	auth := middleware.NewAuth(security.NewHS256Verifier(cfg.JWTSecret, cfg.JWTIssuer))

	// 4) Server
	app.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(h, auth, limiter, cfg),
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}
	return app, nil
}

// Close releases broker and cache connections. The DB is owned by main.
func (a *App) Close() {
	if a.Publisher != nil {
		_ = a.Publisher.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/MicahParks/keyfunc"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rahulserver/task-management-backend/internal/adapter/auth"
	"github.com/rahulserver/task-management-backend/internal/adapter/cache"
	dbadapter "github.com/rahulserver/task-management-backend/internal/adapter/db"
	httpadapter "github.com/rahulserver/task-management-backend/internal/adapter/http"
	"github.com/rahulserver/task-management-backend/internal/adapter/http/handlers"
	httpmiddleware "github.com/rahulserver/task-management-backend/internal/adapter/http/middleware"
	"github.com/rahulserver/task-management-backend/internal/adapter/media"
	appservice "github.com/rahulserver/task-management-backend/internal/app/service"
	"github.com/rahulserver/task-management-backend/internal/config"
	"github.com/rahulserver/task-management-backend/internal/core/ports"
	"github.com/rahulserver/task-management-backend/pkg/translator"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := dbadapter.ConnectDB(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to mysql", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close mysql connection", zap.Error(err))
		}
	}()

	var postRepository ports.PostRepository = dbadapter.NewPostRepository(db)
	redisClient := connectRedis(ctx, cfg.RedisURL)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("failed to close redis connection", zap.Error(err))
			}
		}()
		postRepository = cache.NewPostCache(postRepository, redisClient, cfg.PostCacheTTL)
	}

	jwks, verifier, err := newVerifier(cfg)
	if err != nil {
		logger.Fatal("failed to configure authentication", zap.Error(err))
	}
	if jwks != nil {
		defer jwks.EndBackground()
	}

	mediaStore, err := media.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		logger.Fatal("failed to configure media store", zap.Error(err))
	}

	taskService := appservice.NewTaskService(dbadapter.NewTaskRepository(db))
	postService := appservice.NewPostService(postRepository, mediaStore)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.RequestID(), httpmiddleware.GinZapMiddleware(logger))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Strings("proxies", cfg.TrustedProxies), zap.Error(err))
	}
	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health: handlers.NewHealthHandler(db, redisClient),
		Tasks:  handlers.NewTaskHandler(taskService),
		Posts:  handlers.NewPostHandler(postService),
	}, verifier)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server", zap.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown did not complete", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// connectRedis returns nil when no URL is configured or the server cannot be
// reached; posts are then served straight from mysql.
func connectRedis(ctx context.Context, url string) *redis.Client {
	if url == "" {
		zap.L().Info("redis not configured, post cache disabled")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		zap.L().Warn("invalid REDIS_URL, post cache disabled", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		zap.L().Warn("redis unreachable, post cache disabled", zap.String("addr", opts.Addr), zap.Error(err))
		_ = client.Close()
		return nil
	}
	return client
}

func newVerifier(cfg *config.Config) (*keyfunc.JWKS, *auth.JWTVerifier, error) {
	opts := auth.Options{
		HS256Secret: cfg.AuthHS256Secret,
		Audience:    cfg.AuthAudience,
		Issuer:      cfg.AuthIssuer,
	}

	var jwks *keyfunc.JWKS
	if opts.HS256Secret == "" && cfg.AuthJWKSURL != "" {
		var err error
		jwks, err = auth.NewJWKS(cfg.AuthJWKSURL)
		if err != nil {
			return nil, nil, err
		}
		opts.JWKS = jwks
	}

	verifier, err := auth.NewJWTVerifier(opts)
	if err != nil {
		if jwks != nil {
			jwks.EndBackground()
		}
		return nil, nil, err
	}
	return jwks, verifier, nil
}

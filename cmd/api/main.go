package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	v1 "github.com/gaurav031/Feelify-sub000/cmd/api/router/v1"
	apimw "github.com/gaurav031/Feelify-sub000/internal/api/middleware"
	"github.com/gaurav031/Feelify-sub000/internal/config"
	"github.com/gaurav031/Feelify-sub000/internal/infrastructure/auth"
	cacheadapter "github.com/gaurav031/Feelify-sub000/internal/infrastructure/cache/adapter"
	"github.com/gaurav031/Feelify-sub000/internal/infrastructure/database"
	mediaadapter "github.com/gaurav031/Feelify-sub000/internal/infrastructure/media/adapter"
	queueadapter "github.com/gaurav031/Feelify-sub000/internal/infrastructure/queue/adapter"
	"github.com/gaurav031/Feelify-sub000/internal/infrastructure/realtime"
	messaginghttp "github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/presentation/http"
	notificationhttp "github.com/gaurav031/Feelify-sub000/internal/pkg/notification/presentation/http"

	messagingadapter "github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/persistence/repository/adapter"
	messagingusecase "github.com/gaurav031/Feelify-sub000/internal/pkg/messaging/application/usecase"
	notificationadapter "github.com/gaurav031/Feelify-sub000/internal/pkg/notification/persistence/repository/adapter"
	notificationtask "github.com/gaurav031/Feelify-sub000/internal/pkg/notification/application/task"
	notificationusecase "github.com/gaurav031/Feelify-sub000/internal/pkg/notification/application/usecase"
	useradapter "github.com/gaurav031/Feelify-sub000/internal/repository/adapter"
)

func main() {
	cfg := config.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDevelopment() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	cache, err := cacheadapter.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer cache.Close()

	queueClient, err := queueadapter.NewAsynqClient(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create queue client")
	}
	defer queueClient.Close()

	queueServer, err := queueadapter.NewAsynqServer(cfg.RedisURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create queue server")
	}

	uploader, err := mediaadapter.NewDiskUploader(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare media dir")
	}

	registry := realtime.NewRegistry(logger)
	authManager := auth.NewManager(cfg.JWTSecret, 24*time.Hour)

	users := useradapter.NewCachedUserDirectory(useradapter.NewPgUserDirectory(pool), cache)
	messagingRepo := messagingadapter.NewPgMessagingRepository(pool)
	notificationRepo := notificationadapter.NewPgNotificationRepository(pool)

	messagingUCs := messaginghttp.UseCases{
		SendMessage:       messagingusecase.NewSendMessageUseCase(messagingRepo, users, uploader, registry),
		MarkSeen:          messagingusecase.NewMarkSeenUseCase(messagingRepo, registry),
		ListConversations: messagingusecase.NewListConversationsUseCase(messagingRepo, users),
		ListMessages:      messagingusecase.NewListMessagesUseCase(messagingRepo),
	}
	notificationUCs := notificationhttp.UseCases{
		List:     notificationusecase.NewListNotificationsUseCase(notificationRepo, users),
		MarkRead: notificationusecase.NewMarkReadUseCase(notificationRepo),
	}

	// The fan-out worker runs in this process so it can push through the
	// in-memory registry after persisting.
	notifyUC := notificationusecase.NewNotifyUseCase(notificationRepo, registry)
	notificationtask.RegisterNotifyTask(queueServer, notifyUC)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	go func() {
		if err := queueServer.Run(workerCtx); err != nil {
			logger.Error().Err(err).Msg("queue server stopped")
		}
	}()

	r := gin.New()
	r.Use(gin.Recovery(), apimw.Logger(logger), apimw.Metrics())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if mediaPath, ok := cfg.LocalMediaPath(); ok {
		r.Static(mediaPath, cfg.MediaDir)
	} else {
		logger.Info().Str("media_base_url", cfg.MediaBaseURL).Msg("media base url is not a local path; static media route disabled")
	}

	v1.RegisterRoutes(r, v1.Deps{
		Messaging:     messagingUCs,
		Notifications: notificationUCs,
		Registry:      registry,
		Queue:         queueClient,
		Auth:          authManager,
		Logger:        logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	stopWorker()
	registry.Shutdown()
}

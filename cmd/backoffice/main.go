package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/kamiour/backoffice/internal/application/auth"
	"github.com/kamiour/backoffice/internal/application/catalog"
	"github.com/kamiour/backoffice/internal/application/ports"
	"github.com/kamiour/backoffice/internal/config"
	httprouter "github.com/kamiour/backoffice/internal/infrastructure/http"
	"github.com/kamiour/backoffice/internal/infrastructure/http/handlers"
	"github.com/kamiour/backoffice/internal/infrastructure/http/middleware"
	"github.com/kamiour/backoffice/internal/infrastructure/persistence/postgres"
	redisstore "github.com/kamiour/backoffice/internal/infrastructure/persistence/redis"
	"github.com/kamiour/backoffice/internal/infrastructure/queue"
	"github.com/kamiour/backoffice/internal/infrastructure/security"
	"github.com/kamiour/backoffice/internal/infrastructure/storage"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	redisOpt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("parse REDIS_URL")
	}
	redisClient := redis.NewClient(redisOpt)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("ping redis")
	}

	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	userStore := postgres.NewUserStore(pool)
	productStore := postgres.NewProductStore(pool)
	sessionStore := redisstore.NewSessionStore(redisClient, cfg.Auth.SessionTTL)
	imageStore := storage.NewLocalImageStore(cfg.Images.Dir)

	var mailer ports.MailNotifier
	var asynqWorker *queue.Worker
	if cfg.Mail.QueueDisabled {
		mailer = queue.NewNoopMailer()
	} else {
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		enqueuer, err := queue.NewMailEnqueuer(asynqOpt, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create mail enqueuer")
		}
		defer enqueuer.Close()
		mailer = enqueuer
		asynqWorker = queue.NewWorker(asynqOpt, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	}

	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	signupUC := auth.NewSignup(userStore, hasher, mailer, cfg.Mail.From, log)
	loginUC := auth.NewLogin(userStore, hasher, sessionStore, log)
	logoutUC := auth.NewLogout(sessionStore, log)
	requestResetUC := auth.NewRequestReset(userStore, mailer, cfg.Auth.ResetBaseURL, cfg.Mail.From, cfg.Auth.ResetTokenExpiry, log)
	validateResetUC := auth.NewValidateReset(userStore)
	resetPasswordUC := auth.NewResetPassword(userStore, hasher)

	createProductUC := catalog.NewCreateProduct(productStore)
	updateProductUC := catalog.NewUpdateProduct(productStore, imageStore, log)
	deleteProductUC := catalog.NewDeleteProduct(productStore, imageStore, log)
	listProductsUC := catalog.NewListProducts(productStore)

	authHandler := handlers.NewAuthHandler(signupUC, loginUC, logoutUC, requestResetUC, validateResetUC, resetPasswordUC, cfg.Auth.SessionTTL, cfg.Server.StoreTimeout, !cfg.Server.DevMode, log)
	productsHandler := handlers.NewProductsHandler(createProductUC, updateProductUC, deleteProductUC, listProductsUC, cfg.Server.StoreTimeout, log)

	requireSession := middleware.NewSessionValidator(sessionStore).Handler
	secureMiddleware := middleware.SecureHeaders(cfg.Server.DevMode)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:     authHandler,
		ProductsHandler: productsHandler,
		HealthHandler:   healthHandler,
		RequireSession:  requireSession,
		Log:             log,
		Secure:          secureMiddleware,
		Metrics:         true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}

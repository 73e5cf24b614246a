package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/studentdiscount/marketplace-api/internal/api"
	"github.com/studentdiscount/marketplace-api/internal/core/ports"
	"github.com/studentdiscount/marketplace-api/internal/core/service"
	"github.com/studentdiscount/marketplace-api/internal/infrastructure/config"
	"github.com/studentdiscount/marketplace-api/internal/infrastructure/db/memory"
	mongostore "github.com/studentdiscount/marketplace-api/internal/infrastructure/db/mongo"
	redisstore "github.com/studentdiscount/marketplace-api/internal/infrastructure/db/redis"
	"github.com/studentdiscount/marketplace-api/internal/infrastructure/queue"
	"github.com/studentdiscount/marketplace-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		userRepo    ports.UserRepository
		productRepo ports.ProductRepository
		adminRepo   ports.AdminRepository
		auditRepo   ports.AuditRecorder
		mongoDB     *mongodriver.Database
		rdb         *goredis.Client
	)

	switch cfg.StorageDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, cfg.Mongo)
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()

		users := mongostore.NewUserRepository(db)
		products := mongostore.NewProductRepository(db)
		admins := mongostore.NewAdminRepository(db)
		for name, ensure := range map[string]func(context.Context) error{
			"users":    users.EnsureIndexes,
			"products": products.EnsureIndexes,
			"admins":   admins.EnsureIndexes,
		} {
			if err := ensure(ctx); err != nil {
				log.Warn().Err(err).Str("collection", name).Msg("index creation failed")
			}
		}

		userRepo = users
		productRepo = products
		adminRepo = admins
		auditRepo = mongostore.NewAuditRepository(db)
		mongoDB = db
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo storage driver")

	default:
		store := memory.NewSeededStore()
		userRepo = memory.NewUserRepository(store)
		productRepo = memory.NewProductRepository(store)
		log.Info().Msg("using seeded in-memory storage driver")
	}

	var otpStore ports.OTPStore
	if cfg.Redis.Addr != "" {
		client, err := redisstore.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer client.Close()
		rdb = client
		otpStore = redisstore.NewOTPStore(client, cfg.OTPCode, cfg.OTPTTL)
	} else {
		otpStore = memory.NewOTPStore(cfg.OTPCode, cfg.OTPTTL)
	}

	var audit ports.AuditEmitter
	if auditRepo != nil {
		dispatcher := queue.NewDispatcher(0, auditRepo, log)
		dispatcher.Start(ctx)
		audit = dispatcher
	}

	authService := service.NewAuthService(userRepo, adminRepo, otpStore, audit, cfg.JWTSecret, cfg.TokenTTL, cfg.OTPCode, log)
	userService := service.NewUserService(userRepo, audit, log)
	productService := service.NewProductService(productRepo, audit, log)

	e := api.NewRouter(api.Deps{
		AuthService:    authService,
		UserService:    userService,
		ProductService: productService,
		Mongo:          mongoDB,
		Redis:          rdb,
		JWTSecret:      cfg.JWTSecret,
		Logger:         log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("marketplace api listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}

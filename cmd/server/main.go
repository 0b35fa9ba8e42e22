package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gem-auction.backend/internal/config"
	"gem-auction.backend/internal/domain/ports"
	"gem-auction.backend/internal/infrastructure/jobs"
	"gem-auction.backend/internal/infrastructure/metrics"
	"gem-auction.backend/internal/infrastructure/models"
	"gem-auction.backend/internal/infrastructure/notification"
	"gem-auction.backend/internal/infrastructure/repositories"
	"gem-auction.backend/internal/infrastructure/storage"
	"gem-auction.backend/internal/interfaces/http/handlers"
	"gem-auction.backend/internal/interfaces/http/middleware"
	"gem-auction.backend/internal/usecases"
	"gem-auction.backend/pkg/jwt"
	"gem-auction.backend/pkg/logger"
	"gem-auction.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	metricsNamespace = "gem_auction"
	shutdownTimeout  = 10 * time.Second
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newFileStore = func(cfg config.UploadConfig) (ports.FileStore, string, error) {
		if cfg.Driver == "cloudinary" {
			store, err := storage.NewCloudinaryFileStore(cfg.CloudinaryURL, cfg.MaxFileBytes)
			if err != nil {
				return nil, "", err
			}
			return store, "", nil
		}
		store, err := storage.NewLocalFileStore(cfg.Dir, cfg.MaxFileBytes)
		if err != nil {
			return nil, "", err
		}
		return store, store.Dir(), nil
	}
	runServer = func(ctx context.Context, r *gin.Engine, port string) error {
		srv := &http.Server{Addr: ":" + port, Handler: r}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
	getStdDB = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(context.Background(), "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(context.Background(), "Connected to PostgreSQL via GORM")
		if cfg.Database.AutoMigrate {
			if err := db.AutoMigrate(models.All()...); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
		}
	}

	files, uploadDir, err := newFileStore(cfg.Upload)
	if err != nil {
		return fmt.Errorf("failed to initialize file store: %w", err)
	}

	m := metrics.Registry(metricsNamespace)
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	userRepo := repositories.NewUserRepository(db)
	payoutRepo := repositories.NewPayoutRepository(db)
	gemRepo := repositories.NewGemstoneRepository(db)
	auctionRepo := repositories.NewAuctionRepository(db)
	bidRepo := repositories.NewBidRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	onlinePaymentRepo := repositories.NewOnlinePaymentRepository(db)
	faqRepo := repositories.NewFAQRepository(db)
	uow := repositories.NewUnitOfWork(db)

	notifier := usecases.NewNotifier(
		notification.NewSMTPSender(cfg.SMTP),
		notification.NewSMSChain(cfg.SMS, m),
		m,
	)

	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	userUsecase := usecases.NewUserUsecase(userRepo)
	verificationUsecase := usecases.NewVerificationUsecase(userRepo, payoutRepo, uow, files)
	gemstoneUsecase := usecases.NewGemstoneUsecase(gemRepo, userRepo, files)
	auctionUsecase := usecases.NewAuctionUsecase(auctionRepo, bidRepo, gemRepo, userRepo, uow, notifier, m)
	bidUsecase := usecases.NewBidUsecase(bidRepo, gemRepo, userRepo)
	paymentUsecase := usecases.NewPaymentUsecase(paymentRepo, files, notifier, m)
	onlinePaymentUsecase := usecases.NewOnlinePaymentUsecase(
		onlinePaymentRepo,
		uow,
		notifier,
		redis.NewCooldown("otp-resend"),
		cfg.OTP,
		m,
	)
	faqUsecase := usecases.NewFAQUsecase(faqRepo)

	deps := routeDeps{
		authHandler:          handlers.NewAuthHandler(authUsecase, userUsecase, cfg.Server.CookieSecure),
		userHandler:          handlers.NewUserHandler(userUsecase),
		verificationHandler:  handlers.NewVerificationHandler(verificationUsecase),
		gemstoneHandler:      handlers.NewGemstoneHandler(gemstoneUsecase),
		auctionHandler:       handlers.NewAuctionHandler(auctionUsecase),
		bidHandler:           handlers.NewBidHandler(bidUsecase, auctionUsecase),
		paymentHandler:       handlers.NewPaymentHandler(paymentUsecase),
		onlinePaymentHandler: handlers.NewOnlinePaymentHandler(onlinePaymentUsecase),
		faqHandler:           handlers.NewFAQHandler(faqUsecase),
		authMiddleware:       middleware.AccountAuthMiddleware(jwtService, userRepo),
		optionalAuth:         middleware.OptionalAuth(jwtService),
		idempotency:          middleware.IdempotencyMiddleware(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	settlementJob := jobs.NewAuctionSettlementJob(auctionUsecase, cfg.Auction.SettlementInterval, m)
	go settlementJob.Start(ctx)

	r := newRouter(cfg, m, uploadDir, deps)

	logger.Info(ctx, "Gem auction backend starting",
		zap.String("port", cfg.Server.Port),
		zap.Int("routes", len(r.Routes())),
	)

	if err := runServer(ctx, r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info(context.Background(), "Server stopped")
	return nil
}

func newRouter(cfg *config.Config, m *metrics.Metrics, uploadDir string, deps routeDeps) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = handlers.MaxMultipartMemory
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(m))

	applyCORSMiddleware(r, cfg.Server.CORSOrigin)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerUploadsRoute(r, uploadDir)
	registerAPIRoutes(r, deps)
	registerGemstoneAliasRoutes(r, deps)
	return r
}

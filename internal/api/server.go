package api

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/temped/temped-api/config"
	"github.com/temped/temped-api/infra/queue"
	"github.com/temped/temped-api/internal/api/rest/handlers"
	"github.com/temped/temped-api/internal/api/rest/middleware"
	"github.com/temped/temped-api/internal/domain"
	"github.com/temped/temped-api/internal/helper"
	"github.com/temped/temped-api/internal/helper/utils"
	"github.com/temped/temped-api/internal/interfaces"
	"github.com/temped/temped-api/internal/repository"
	"github.com/temped/temped-api/internal/services"
	"github.com/temped/temped-api/pkg/cloudinary"
	"github.com/temped/temped-api/pkg/s3store"
)

// multipart uploads carry up to 10 MB of file plus form overhead
const bodyLimit = 12 << 20

// same lock id on every instance so only one of them migrates at a time
const migrateLockID int64 = 20260222

func StartServer(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("database connection: %w", err)
	}
	log.Info("database connected")

	if err := migrate(ctx, db); err != nil {
		return err
	}
	log.Info("migration successful")

	// ---------- Infra ----------
	storage, err := newStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("storage init: %w", err)
	}
	log.Info("storage ready", zap.String("driver", cfg.StorageDriver))

	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		log,
	)
	defer kafkaProducer.Close()
	if kafkaProducer == nil {
		log.Warn("KAFKA_BROKER not set, events will not be published")
	}

	limiter, closeLimiter, err := newLimiter(cfg, log)
	if err != nil {
		return fmt.Errorf("rate limiter init: %w", err)
	}
	defer closeLimiter()

	authHelper := helper.SetupAuth(cfg.AccessSecret, cfg.TokenTTL)

	// ---------- Repositories ----------
	profileRepo := repository.NewProfileRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	userRoleRepo := repository.NewUserRoleRepository(db)
	consentRepo := repository.NewConsentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)
	jobRepo := repository.NewJobRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)

	if err := roleRepo.Seed(ctx, domain.RoleCodes); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}

	// ---------- Services ----------
	authSvc := services.NewAuthService(profileRepo, roleRepo, userRoleRepo, consentRepo, authHelper, kafkaProducer, log)
	teacherSvc := services.NewTeacherService(teacherRepo, documentRepo, storage, log)
	documentSvc := services.NewDocumentService(documentRepo, teacherRepo, profileRepo, storage, kafkaProducer, log)
	schoolSvc := services.NewSchoolService(schoolRepo, storage, log)
	jobSvc := services.NewJobService(jobRepo, schoolRepo, teacherRepo, log)
	applicationSvc := services.NewApplicationService(applicationRepo, jobRepo, teacherRepo, schoolRepo, profileRepo, kafkaProducer, log)
	testimonialSvc := services.NewTestimonialService(testimonialRepo, profileRepo, schoolRepo, log)

	// ---------- HTTP ----------
	app := fiber.New(fiber.Config{
		BodyLimit:    bodyLimit,
		ErrorHandler: errorHandler(log),
	})

	rm := middleware.NewRequestMiddleware(log)
	app.Use(rm.RecoverPanic())
	app.Use(rm.LogRequest())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	guards := handlers.Guards{
		Auth:       middleware.AuthMiddleware(authHelper),
		Admin:      middleware.RequireRole(authSvc, domain.RoleAdmin),
		LoginLimit: middleware.RateLimit(limiter, "login", cfg.LoginRateLimit, time.Minute),
	}

	api := app.Group("/api")
	handlers.NewAuthHandler(authSvc, log, cfg.IsProduction()).SetupRoutes(api, guards)
	handlers.NewTeacherHandler(teacherSvc, log).SetupRoutes(api, guards)
	handlers.NewDocumentHandler(documentSvc, log).SetupRoutes(api, guards)
	handlers.NewSchoolHandler(schoolSvc, jobSvc, log).SetupRoutes(api, guards)
	handlers.NewJobHandler(jobSvc, applicationSvc, log).SetupRoutes(api, guards)
	handlers.NewTestimonialHandler(testimonialSvc, log).SetupRoutes(api, guards)

	// ---------- Listen ----------
	errc := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.ServerPort))
		errc <- app.Listen(cfg.ServerPort)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}

func migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		return fmt.Errorf("migration lock: %w", err)
	}
	defer db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID)

	if err := db.WithContext(ctx).AutoMigrate(
		&domain.Profile{},
		&domain.Role{},
		&domain.UserRole{},
		&domain.UserConsent{},
		&domain.Teacher{},
		&domain.TeacherExperience{},
		&domain.TeacherDocument{},
		&domain.School{},
		&domain.Job{},
		&domain.Application{},
		&domain.Testimonial{},
		&domain.AuditLog{},
	); err != nil {
		return fmt.Errorf("migration: %w", err)
	}
	return nil
}

func newStorage(ctx context.Context, cfg config.Config) (interfaces.Storage, error) {
	switch cfg.StorageDriver {
	case "s3":
		return s3store.Load(ctx, cfg.AWSRegion, cfg.AWSEndpointURL, cfg.S3BucketPrefix, cfg.SignedURLTTL)
	case "cloudinary", "":
		cld, err := cloudinary.New(cfg.CloudinaryUrl)
		if err != nil {
			return nil, err
		}
		return cloudinary.NewStorage(cld, cfg.S3BucketPrefix), nil
	}
	return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
}

// newLimiter prefers redis so limits hold across instances.
func newLimiter(cfg config.Config, log *zap.Logger) (middleware.Limiter, func(), error) {
	if cfg.RedisURL == "" {
		return middleware.NewRateLimiter(), func() {}, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)
	return middleware.NewRedisLimiter(client, log), func() { _ = client.Close() }, nil
}

func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if fe, ok := err.(*fiber.Error); ok {
			return utils.ResponseError(c, fe.Code, fe.Message)
		}
		return utils.ResponseServiceError(c, log, err)
	}
}

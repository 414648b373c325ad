package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusdesk/support-api/internal/config"
	"github.com/campusdesk/support-api/internal/database"
	"github.com/campusdesk/support-api/internal/handler"
	"github.com/campusdesk/support-api/internal/middleware"
	"github.com/campusdesk/support-api/internal/models"
	"github.com/campusdesk/support-api/internal/repository"
	"github.com/campusdesk/support-api/internal/router"
	"github.com/campusdesk/support-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Request{},
		&models.Escalation{},
		&models.AdminNote{},
		&models.FAQ{},
		&models.Announcement{},
		&models.ActivityLog{},
		&models.UserProfile{},
		&models.UserRole{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	requestRepo := repository.NewRequestRepository(db)
	escalationRepo := repository.NewEscalationRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	faqRepo := repository.NewFAQRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	userRepo := repository.NewUserRepository(db)

	activityService := service.NewActivityService(activityRepo, cfg.ActivityLogLimit, logger)
	requestService := service.NewRequestService(requestRepo, validate, activityService, logger)
	escalationService := service.NewEscalationService(escalationRepo, requestRepo, cfg.EscalationCooldown, logger)
	noteService := service.NewNoteService(noteRepo, requestRepo, activityService, logger)
	faqService := service.NewFAQService(faqRepo, validate, activityService, redisClient, cfg.ContentCacheTTL, logger)
	announcementService := service.NewAnnouncementService(announcementRepo, validate, activityService, redisClient, cfg.ContentCacheTTL, logger)
	userService := service.NewUserService(userRepo, activityService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		RequestHandler:           handler.NewRequestHandler(requestService, escalationService, noteService, logger),
		AdminRequestHandler:      handler.NewAdminRequestHandler(requestService, noteService, logger),
		FAQHandler:               handler.NewFAQHandler(faqService, logger),
		AdminFAQHandler:          handler.NewAdminFAQHandler(faqService, logger),
		AnnouncementHandler:      handler.NewAnnouncementHandler(announcementService, logger),
		AdminAnnouncementHandler: handler.NewAdminAnnouncementHandler(announcementService, logger),
		AdminActivityHandler:     handler.NewAdminActivityHandler(activityService, logger),
		AdminUserHandler:         handler.NewAdminUserHandler(userService, logger),
		JWTMiddleware:            middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

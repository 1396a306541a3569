package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/temped/temped-api/config"
	"github.com/temped/temped-api/infra/queue"
	"github.com/temped/temped-api/internal/api/rest/handlers"
	"github.com/temped/temped-api/internal/services"
	"github.com/temped/temped-api/pkg/logger"
)

func main() {
	// ---------- Load Config ----------
	cfg := config.LoadConfig()

	zl, err := logger.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer zl.Sync()

	if cfg.KafkaBroker == "" {
		zl.Fatal("KAFKA_BROKER is required")
	}
	zl.Info("mailer starting",
		zap.String("broker", cfg.KafkaBroker),
		zap.String("topic", cfg.KafkaTopic),
		zap.String("group_id", cfg.KafkaGroupID),
	)

	// ---------- Init Service ----------
	mailService, err := services.NewMailService(services.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		FromName: cfg.MailFromName,
	}, zl)
	if err != nil {
		zl.Fatal("mail service init", zap.Error(err))
	}

	// ---------- Init Handler ----------
	handler := handlers.NewMailHandler(mailService, cfg.AppBaseURL, zl)

	// ---------- Init Kafka Consumer ----------
	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		handler,
		zl,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---------- Start Listening ----------
	zl.Info("listening for events")
	if err := consumer.Listen(ctx); err != nil {
		zl.Error("consumer stopped", zap.Error(err))
	}
}

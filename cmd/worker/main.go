package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"crmdesk/internal/application/ticket/usecases"
	"crmdesk/internal/infrastructure/cache"
	"crmdesk/internal/infrastructure/config"
	"crmdesk/internal/infrastructure/database"
	"crmdesk/internal/infrastructure/email"
	"crmdesk/internal/infrastructure/notification"
	"crmdesk/internal/infrastructure/pubsub"
	"crmdesk/internal/infrastructure/repository"
	"crmdesk/internal/infrastructure/scheduler"
	"crmdesk/internal/infrastructure/storage"
	"crmdesk/internal/infrastructure/template"
	"crmdesk/internal/shared/biztime"
	"crmdesk/internal/shared/db"
	"crmdesk/internal/shared/logger"
)

// The worker runs the archival sweep on a schedule. Several workers may run
// at once; the Redis lease inside the sweep keeps passes single-flight.
func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting archival sweep worker", "environment", env)

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		log.Fatalw("failed to initialize business timezone", "error", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalw("failed to connect to redis", "error", err)
	}
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

	blobStore, err := storage.NewLocalBlobStore(cfg.Ticket.AttachmentDir)
	if err != nil {
		log.Fatalw("failed to initialize blob store", "error", err)
	}

	ticketRepo := repository.NewTicketRepository(database.Get())
	messageRepo := repository.NewTicketMessageRepository(database.Get())
	attachmentRepo := repository.NewTicketAttachmentRepository(database.Get())
	changeLogRepo := repository.NewTicketChangeLogRepository(database.Get())
	txManager := db.NewTransactionManager(database.Get())

	eventBus := pubsub.NewRedisTicketEventBus(redisClient, log)
	emailService := email.NewSMTPEmailService(email.SMTPConfig{
		Host:        cfg.Email.Host,
		Port:        cfg.Email.Port,
		Username:    cfg.Email.Username,
		Password:    cfg.Email.Password,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		BaseURL:     cfg.Server.BaseURL,
	})
	templates := template.NewTicketTemplateLoader(cfg.Email.TemplatePath, log)
	notifier := notification.NewDispatcher(
		emailService, templates, eventBus, cfg.Email.Recipients, cfg.Email.Enabled, log,
	)

	sweepLock := cache.NewSweepLockStore(redisClient)

	sweepUC := usecases.NewArchiveSweepUseCase(
		ticketRepo,
		messageRepo,
		changeLogRepo,
		attachmentRepo,
		txManager,
		blobStore,
		sweepLock,
		notifier,
		usecases.RetentionPolicy{
			ResolvedRetention: cfg.Ticket.ResolvedRetention(),
			ClosedRetention:   cfg.Ticket.ClosedRetention(),
			PurgeRetention:    cfg.Ticket.PurgeRetention(),
		},
		eventBus.InstanceID(),
		log,
	)

	manager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		log.Fatalw("failed to create scheduler", "error", err)
	}
	if err := manager.RegisterSweepJob(sweepUC, cfg.Ticket.SweepInterval()); err != nil {
		log.Fatalw("failed to register sweep job", "error", err)
	}
	manager.Start()

	log.Infow("archival sweep worker started", "interval", cfg.Ticket.SweepInterval())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Infow("received signal, shutting down", "signal", sig)

	if err := manager.Stop(); err != nil {
		log.Errorw("failed to stop scheduler", "error", err)
	}

	log.Infow("archival sweep worker stopped")
}

package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"crmdesk/internal/application/ticket/usecases"
	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/infrastructure/auth"
	"crmdesk/internal/infrastructure/config"
	"crmdesk/internal/infrastructure/email"
	"crmdesk/internal/infrastructure/notification"
	"crmdesk/internal/infrastructure/permission"
	"crmdesk/internal/infrastructure/pubsub"
	"crmdesk/internal/infrastructure/repository"
	"crmdesk/internal/infrastructure/services"
	"crmdesk/internal/infrastructure/storage"
	"crmdesk/internal/infrastructure/template"
	tickethandlers "crmdesk/internal/interfaces/http/handlers/ticket"
	"crmdesk/internal/interfaces/http/middleware"
	"crmdesk/internal/shared/db"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/services/markdown"
)

// Container wires the desk's repositories, use cases, handlers, and
// middleware together and owns their shared infrastructure handles.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	eventBus  *pubsub.RedisTicketEventBus
	blobStore storage.BlobStore

	ticketHandler        *tickethandlers.TicketHandler
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter
}

func NewContainer(database *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	redisClient, err := initRedis(cfg, log)
	if err != nil {
		return nil, err
	}

	blobStore, err := storage.NewLocalBlobStore(cfg.Ticket.AttachmentDir)
	if err != nil {
		return nil, err
	}

	ticketRepo := repository.NewTicketRepository(database)
	messageRepo := repository.NewTicketMessageRepository(database)
	attachmentRepo := repository.NewTicketAttachmentRepository(database)
	changeLogRepo := repository.NewTicketChangeLogRepository(database)

	txManager := db.NewTransactionManager(database)
	numberGen := services.NewTicketNumberGenerator(database)
	renderer := markdown.NewMarkdownService()

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

	attachmentPolicy := ticketPolicyFromConfig(cfg)

	handler := tickethandlers.NewTicketHandler(tickethandlers.TicketHandlerConfig{
		CreateTicketUC:      usecases.NewCreateTicketUseCase(ticketRepo, numberGen, notifier, log),
		AssignTicketUC:      usecases.NewAssignTicketUseCase(ticketRepo, log),
		ChangeStatusUC:      usecases.NewChangeStatusUseCase(ticketRepo, messageRepo, changeLogRepo, txManager, notifier, log),
		ChangePriorityUC:    usecases.NewChangePriorityUseCase(ticketRepo, changeLogRepo, txManager, notifier, log),
		ChangeCategoryUC:    usecases.NewChangeCategoryUseCase(ticketRepo, changeLogRepo, txManager, notifier, log),
		CloseTicketUC:       usecases.NewCloseTicketUseCase(ticketRepo, messageRepo, changeLogRepo, txManager, notifier, log),
		RestoreTicketUC:     usecases.NewRestoreTicketUseCase(ticketRepo, messageRepo, changeLogRepo, txManager, notifier, log),
		BulkDeleteUC:        usecases.NewBulkDeleteUseCase(ticketRepo, messageRepo, changeLogRepo, txManager, notifier, log),
		GetTicketUC:         usecases.NewGetTicketUseCase(ticketRepo, messageRepo, log),
		ListTicketsUC:       usecases.NewListTicketsUseCase(ticketRepo, log),
		GetChangeLogUC:      usecases.NewGetChangeLogUseCase(ticketRepo, changeLogRepo, log),
		PostMessageUC:       usecases.NewPostMessageUseCase(ticketRepo, messageRepo, notifier, log),
		ListMessagesUC:      usecases.NewListMessagesUseCase(ticketRepo, messageRepo, attachmentRepo, renderer, log),
		MarkReadUC:          usecases.NewMarkReadUseCase(ticketRepo, log),
		UploadAttachmentsUC: usecases.NewUploadAttachmentsUseCase(ticketRepo, messageRepo, attachmentRepo, blobStore, attachmentPolicy, log),
		DeleteAttachmentUC:  usecases.NewDeleteAttachmentUseCase(attachmentRepo, blobStore, log),
	})

	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	enforcer, err := permission.NewEnforcer(database, "configs/rbac_model.conf", log)
	if err != nil {
		return nil, err
	}

	return &Container{
		engine:               gin.New(),
		db:                   database,
		cfg:                  cfg,
		log:                  log,
		redis:                redisClient,
		eventBus:             eventBus,
		blobStore:            blobStore,
		ticketHandler:        handler,
		authMiddleware:       middleware.NewAuthMiddleware(jwtSvc, log),
		permissionMiddleware: middleware.NewPermissionMiddleware(enforcer, log),
		rateLimiter:          middleware.NewRateLimiter(redisClient, 300, 1*time.Minute),
	}, nil
}

// Shutdown releases the container's infrastructure handles.
func (c *Container) Shutdown(ctx context.Context) {
	if err := c.redis.Close(); err != nil {
		c.log.Warnw("failed to close redis client", "error", err)
	}
}

func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	log.Infow("redis connection established")

	return redisClient, nil
}

func ticketPolicyFromConfig(cfg *config.Config) ticket.AttachmentPolicy {
	return ticket.AttachmentPolicy{
		MaxPerMessage:     cfg.Ticket.MaxAttachmentsPerMessage,
		MaxSizeBytes:      cfg.Ticket.MaxAttachmentSizeBytes,
		BlockedExtensions: cfg.Ticket.BlockedExtensions,
	}
}

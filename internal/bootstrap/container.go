// FILE: internal/bootstrap/container.go
package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-charstudio-be/internal/config"
	"ai-charstudio-be/internal/controller"
	"ai-charstudio-be/internal/pkg/logger"
	"ai-charstudio-be/internal/pkg/mailer"
	"ai-charstudio-be/internal/repository/unitofwork"
	"ai-charstudio-be/internal/service"
	"ai-charstudio-be/pkg/genai"
	"ai-charstudio-be/pkg/identity"
	"ai-charstudio-be/pkg/imagegen"
	"ai-charstudio-be/pkg/ledger"
	"ai-charstudio-be/pkg/ratelimit"

	pktNats "ai-charstudio-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const creditAuditTopic = "credit.audit"

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	AnalyzeController  controller.IAnalyzeController
	GenerateController controller.IGenerateController
	PaymentController  controller.IPaymentController
	ProjectController  controller.IProjectController

	// Background services
	ConsumerService service.IConsumerService

	// Shared infrastructure
	Logger         logger.ILogger
	EventPublisher *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Logger
	appLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Unit of Work factory
	uowFactory := unitofwork.NewRepositoryFactory(db)

	// NATS event publisher (optional at runtime, nil-safe in services)
	eventPublisher, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		eventPublisher = nil
	}

	// In-process pubsub for the credit audit trail
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	publisherService := service.NewPublisherService(pubSub, creditAuditTopic)
	consumerService := service.NewConsumerService(pubSub, creditAuditTopic, uowFactory)

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	limiter := ratelimit.NewRedisLimiter(rdb, appLogger, 20, time.Minute)

	// Identity verification
	verifier := identity.NewVerifier(cfg.Auth.VerificationKey)

	// Generative AI client and the image fallback cascade
	aiClient := genai.NewClient(cfg.Keys.GoogleGemini)
	pipeline := imagegen.NewDefaultPipeline(appLogger,
		imagegen.NewPrimaryStrategy(aiClient),
		imagegen.NewSVGStrategy(aiClient),
	)

	// Credit ledger
	creditLedger := ledger.New(uowFactory, appLogger)

	// Mailer
	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Email, cfg.SMTP.Password, cfg.SMTP.Email)
	}

	// Services
	userService := service.NewUserService(uowFactory)
	analyzeService := service.NewAnalyzeService(aiClient)
	generationService := service.NewGenerationService(uowFactory, creditLedger, pipeline, publisherService, eventPublisher, appLogger)
	paymentService := service.NewPaymentService(cfg, uowFactory, creditLedger, publisherService, eventPublisher, emailService)
	projectService := service.NewProjectService(uowFactory)

	return &Container{
		AuthController:     controller.NewAuthController(userService, verifier),
		AnalyzeController:  controller.NewAnalyzeController(analyzeService, verifier),
		GenerateController: controller.NewGenerateController(generationService, verifier, limiter),
		PaymentController:  controller.NewPaymentController(paymentService, verifier),
		ProjectController:  controller.NewProjectController(projectService, verifier),

		ConsumerService: consumerService,

		Logger:         appLogger,
		EventPublisher: eventPublisher,
	}
}

package provider

import (
	"github.com/mediantar/mediantar/internal/cache"
	"github.com/mediantar/mediantar/internal/config"
	"github.com/mediantar/mediantar/internal/logger"
	"github.com/mediantar/mediantar/internal/models"
	"github.com/mediantar/mediantar/internal/pricing"
	"github.com/mediantar/mediantar/internal/queue"
	"github.com/mediantar/mediantar/internal/repository"
	"github.com/mediantar/mediantar/internal/service"
)

// Container dependency injection container
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Calculator  *pricing.Calculator

	// Repositories
	UserRepo     repository.UserRepository
	CustomerRepo repository.CustomerRepository
	CourierRepo  repository.CourierRepository
	DeliveryRepo repository.DeliveryRepository
	TemplateRepo repository.TemplateRepository

	// Services
	AuthService     *service.AuthService
	CustomerService *service.CustomerService
	CourierService  *service.CourierService
	DeliveryService *service.DeliveryService
	ReportService   *service.ReportService
	TemplateService *service.TemplateService
	ImportService   *service.ImportService
}

// NewContainer builds the container
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}
	if queueClient == nil {
		queueClient, _ = queue.NewClient(nil)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Calculator: pricing.NewCalculator(pricing.Tariff{
			BaseFee:       cfg.Pricing.BaseFee,
			RatePerKm:     cfg.Pricing.RatePerKm,
			RoundingStep:  cfg.Pricing.RoundingStep,
			DetourFactor:  cfg.Pricing.DetourFactor,
			MinDistanceKm: cfg.Pricing.MinDistanceKm,
		}),
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.CourierRepo = repository.NewCourierRepository(db)
	c.DeliveryRepo = repository.NewDeliveryRepository(db)
	c.TemplateRepo = repository.NewTemplateRepository(db)
}

func (c *Container) initServices() {
	db := models.DB
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.CustomerService = service.NewCustomerService(c.CustomerRepo, c.DeliveryRepo, c.Calculator)
	c.CourierService = service.NewCourierService(db, c.CourierRepo, c.UserRepo, c.DeliveryRepo, c.AuthService)
	c.DeliveryService = service.NewDeliveryService(db, c.DeliveryRepo, c.CustomerRepo, c.CourierRepo, c.QueueClient)
	c.ReportService = service.NewReportService(c.Config, c.DeliveryRepo, c.CourierRepo)
	c.TemplateService = service.NewTemplateService(c.TemplateRepo)
	c.ImportService = service.NewImportService(c.CustomerService, c.Calculator)
}

package provider

import (
	"github.com/pianao-store/internal/authz"
	"github.com/pianao-store/internal/cache"
	"github.com/pianao-store/internal/config"
	"github.com/pianao-store/internal/logger"
	"github.com/pianao-store/internal/models"
	"github.com/pianao-store/internal/queue"
	"github.com/pianao-store/internal/repository"
	"github.com/pianao-store/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Store       cache.Store

	// Repositories
	AdminRepo        repository.AdminRepository
	UserRepo         repository.UserRepository
	ProductRepo      repository.ProductRepository
	CartRepo         repository.CartRepository
	OrderRepo        repository.OrderRepository
	ProfileRepo      repository.ProfileRepository
	UserSettingsRepo repository.UserSettingsRepository
	NotificationRepo repository.NotificationRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	UserAuthService     *service.UserAuthService
	EmailService        *service.EmailService
	ProductService      *service.ProductService
	CartService         *service.CartService
	ProfileService      *service.ProfileService
	UserSettingsService *service.UserSettingsService
	NotificationService *service.NotificationService
	OrderService        *service.OrderService
	CheckoutService     *service.CheckoutService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := NewContainerWith(cfg, models.DB, cache.NewStore(), queueClient)

	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	return c
}

// NewContainerWith 使用给定的数据库、存储与队列组装容器（测试与工具命令复用）
func NewContainerWith(cfg *config.Config, db *gorm.DB, store cache.Store, queueClient *queue.Client) *Container {
	if store == nil {
		store = cache.NewMemoryStore()
	}
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Store:       store,
	}
	c.initRepositories(db)
	c.initServices()
	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ProfileRepo = repository.NewProfileRepository(db)
	c.UserSettingsRepo = repository.NewUserSettingsRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.Config, c.ProductRepo, c.Store)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, service.NewGuestCartStore(c.Store, c.Config.Cart.GuestTTL()))
	c.ProfileService = service.NewProfileService(c.ProfileRepo)
	c.UserSettingsService = service.NewUserSettingsService(c.UserSettingsRepo)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo)
	c.OrderService = service.NewOrderService(
		c.Config,
		c.OrderRepo,
		c.CartRepo,
		c.UserRepo,
		c.ProfileRepo,
		c.EmailService,
		c.QueueClient,
	)
	c.CheckoutService = service.NewCheckoutService(c.Store, c.Config.Checkout.StateTTL(), c.CartService, c.ProfileService, c.OrderService)
}

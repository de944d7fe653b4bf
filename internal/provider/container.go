package provider

import (
	"github.com/gearmart-next/internal/cache"
	"github.com/gearmart-next/internal/config"
	"github.com/gearmart-next/internal/logger"
	"github.com/gearmart-next/internal/models"
	"github.com/gearmart-next/internal/queue"
	"github.com/gearmart-next/internal/repository"
	"github.com/gearmart-next/internal/service"

	"github.com/shopspring/decimal"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo      repository.UserRepository
	CategoryRepo  repository.CategoryRepository
	ProductRepo   repository.ProductRepository
	CartRepo      repository.CartRepository
	OrderRepo     repository.OrderRepository
	DiscountRepo  repository.DiscountRepository
	WarrantyRepo  repository.WarrantyRepository
	InventoryRepo repository.InventoryRepository
	DashboardRepo repository.DashboardRepository

	// Services
	UserAuthService      *service.UserAuthService
	ProductService       *service.ProductService
	CategoryService      *service.CategoryService
	CartService          *service.CartService
	DiscountService      *service.DiscountService
	DiscountAdminService *service.DiscountAdminService
	WarrantyService      *service.WarrantyService
	OrderService         *service.OrderService
	InventoryService     *service.InventoryService
	DashboardService     *service.DashboardService
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

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.DiscountRepo = repository.NewDiscountRepository(db)
	c.WarrantyRepo = repository.NewWarrantyRepository(db)
	c.InventoryRepo = repository.NewInventoryRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.DiscountService = service.NewDiscountService(c.DiscountRepo)
	c.DiscountAdminService = service.NewDiscountAdminService(c.DiscountRepo)
	c.WarrantyService = service.NewWarrantyService(c.WarrantyRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CartRepo, c.UserRepo, c.DiscountRepo, c.DiscountService, c.WarrantyService, checkoutPolicyFromConfig(c.Config))
	c.InventoryService = service.NewInventoryService(c.InventoryRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.Config.Shop.DashboardCacheTTLSeconds)
}

func checkoutPolicyFromConfig(cfg *config.Config) service.CheckoutPolicy {
	policy := service.DefaultCheckoutPolicy()
	if cfg == nil {
		return policy
	}
	if cfg.Shop.FreeShippingThreshold > 0 {
		policy.FreeShippingThreshold = decimal.NewFromFloat(cfg.Shop.FreeShippingThreshold)
	}
	if cfg.Shop.ShippingFee > 0 {
		policy.ShippingFee = decimal.NewFromFloat(cfg.Shop.ShippingFee)
	}
	if cfg.Shop.TaxRate > 0 {
		policy.TaxRate = decimal.NewFromFloat(cfg.Shop.TaxRate)
	}
	return policy
}

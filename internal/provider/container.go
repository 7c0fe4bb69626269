package provider

import (
	"errors"
	"time"

	"github.com/handmade-next/internal/authz"
	"github.com/handmade-next/internal/cache"
	"github.com/handmade-next/internal/config"
	"github.com/handmade-next/internal/logger"
	"github.com/handmade-next/internal/queue"
	"github.com/handmade-next/internal/repository"
	"github.com/handmade-next/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config       *config.Config
	DB           *gorm.DB
	QueueClient  *queue.Client
	ProductCache *cache.ProductCache

	// Repositories
	CategoryRepo        repository.CategoryRepository
	VariationRepo       repository.VariationRepository
	VariationOptionRepo repository.VariationOptionRepository
	ProductRepo         repository.ProductRepository
	ProductItemRepo     repository.ProductItemRepository
	OrderRepo           repository.OrderRepository

	// Services
	AuthzService     *authz.Service
	TokenService     *service.TokenService
	Materializer     *service.ProductConfigurationMaterializer
	CategoryService  *service.CategoryService
	VariationService *service.VariationService
	ProductService   *service.ProductService
	OrderService     *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config, db *gorm.DB) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if db == nil {
		return nil, errors.New("db is nil")
	}

	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		return nil, err
	}

	c := &Container{
		Config:       cfg,
		DB:           db,
		QueueClient:  queueClient,
		ProductCache: cache.NewProductCache(time.Duration(cfg.Cache.ProductTTLSeconds) * time.Second),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

// Close 释放外部连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}

func (c *Container) initRepositories() {
	db := c.DB
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.VariationRepo = repository.NewVariationRepository(db)
	c.VariationOptionRepo = repository.NewVariationOptionRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.ProductItemRepo = repository.NewProductItemRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}

	c.TokenService = service.NewTokenService(c.Config.JWT)
	c.Materializer = service.NewProductConfigurationMaterializer(c.ProductItemRepo, c.VariationOptionRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.VariationService = service.NewVariationService(c.CategoryRepo, c.VariationRepo, c.VariationOptionRepo)
	c.ProductService = service.NewProductService(
		c.ProductRepo,
		c.CategoryRepo,
		c.VariationRepo,
		c.VariationOptionRepo,
		c.Materializer,
		c.ProductCache,
		c.QueueClient,
	)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.ProductRepo,
		c.ProductItemRepo,
		c.ProductService,
		c.QueueClient,
		c.Config.Order.PaymentExpireMinutes,
	)
	return nil
}

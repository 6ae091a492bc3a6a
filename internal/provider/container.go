package provider

import (
	"fmt"

	"github.com/complaint-desk/internal/authz"
	"github.com/complaint-desk/internal/cache"
	"github.com/complaint-desk/internal/config"
	"github.com/complaint-desk/internal/logger"
	"github.com/complaint-desk/internal/models"
	"github.com/complaint-desk/internal/queue"
	"github.com/complaint-desk/internal/repository"
	"github.com/complaint-desk/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo     repository.AdminRepository
	ComplaintRepo repository.ComplaintRepository

	// Services
	AuthzService          *authz.Service
	SessionService        *service.SessionService
	AuthService           *service.AuthService
	AdminDirectoryService *service.AdminDirectoryService
	EmailService          *service.EmailService
	EmailNotifier         *service.EmailNotifier
	Notifier              service.Notifier
	ComplaintService      *service.ComplaintService
}

// NewContainer 使用全局数据库初始化容器
func NewContainer(cfg *config.Config) (*Container, error) {
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
	return Build(cfg, models.DB, queueClient)
}

// Build 基于给定数据库与队列客户端组装依赖
func Build(cfg *config.Config, db *gorm.DB, queueClient *queue.Client) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if db == nil {
		return nil, fmt.Errorf("database is not initialized")
	}
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	if err := c.initServices(db); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.ComplaintRepo = repository.NewComplaintRepository(db)
}

func (c *Container) initServices(db *gorm.DB) error {
	authzService, err := authz.NewService(db)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		return err
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}

	sessions, err := service.NewSessionService(c.Config.JWT.SecretKey, nil)
	if err != nil {
		logger.Errorw("provider_init_session_failed", "error", err)
		return err
	}
	c.SessionService = sessions
	c.AuthService = service.NewAuthService(c.AdminRepo, sessions, c.Config.Admin.RegisterSecret)
	c.AdminDirectoryService = service.NewAdminDirectoryService(c.AdminRepo)
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.EmailNotifier = service.NewEmailNotifier(c.AdminDirectoryService, c.EmailService)
	c.Notifier = service.NewNotifier(c.QueueClient, c.AdminDirectoryService, c.EmailService)
	c.ComplaintService = service.NewComplaintService(c.ComplaintRepo, c.Notifier)
	return nil
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

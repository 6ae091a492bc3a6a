package service

import (
	"context"
	"time"

	"github.com/complaint-desk/internal/cache"
	"github.com/complaint-desk/internal/logger"
	"github.com/complaint-desk/internal/repository"
)

const (
	adminEmailsCacheKey = "admin:emails"
	adminEmailsCacheTTL = 5 * time.Minute
)

// AdminDirectoryService 管理员通讯录
type AdminDirectoryService struct {
	adminRepo repository.AdminRepository
}

// NewAdminDirectoryService 创建管理员通讯录服务
func NewAdminDirectoryService(adminRepo repository.AdminRepository) *AdminDirectoryService {
	return &AdminDirectoryService{adminRepo: adminRepo}
}

// ListAdminEmails 返回全部管理员邮箱，不含其他字段
func (s *AdminDirectoryService) ListAdminEmails() ([]string, error) {
	ctx := context.Background()
	var cached []string
	hit, err := cache.GetJSON(ctx, adminEmailsCacheKey, &cached)
	if err != nil {
		logger.Warnw("admin_emails_cache_read_failed", "error", err)
	} else if hit {
		return cached, nil
	}

	emails, err := s.adminRepo.ListEmails()
	if err != nil {
		return nil, wrapDependency("list admin emails", err)
	}
	if emails == nil {
		emails = []string{}
	}
	if err := cache.SetJSON(ctx, adminEmailsCacheKey, emails, adminEmailsCacheTTL); err != nil {
		logger.Warnw("admin_emails_cache_write_failed", "error", err)
	}
	return emails, nil
}

// InvalidateAdminEmails 清除通讯录缓存
func InvalidateAdminEmails() {
	if err := cache.Del(context.Background(), adminEmailsCacheKey); err != nil {
		logger.Warnw("admin_emails_cache_invalidate_failed", "error", err)
	}
}

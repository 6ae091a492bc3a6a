package repository

import (
	"errors"

	"github.com/complaint-desk/internal/models"

	"gorm.io/gorm"
)

// AdminRepository 管理员数据访问接口
type AdminRepository interface {
	GetByEmail(email string) (*models.Admin, error)
	Create(admin *models.Admin) error
	ListEmails() ([]string, error)
}

// GormAdminRepository GORM 实现
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository 创建管理员仓库
func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// GetByEmail 根据邮箱获取管理员，不存在时返回 nil
func (r *GormAdminRepository) GetByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.Where("email = ?", models.NormalizeEmail(email)).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// Create 创建管理员，邮箱重复时返回 ErrDuplicate
func (r *GormAdminRepository) Create(admin *models.Admin) error {
	admin.Email = models.NormalizeEmail(admin.Email)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Admin{}).Where("email = ?", admin.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}
		return tx.Create(admin).Error
	})
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// ListEmails 仅查询管理员邮箱列
func (r *GormAdminRepository) ListEmails() ([]string, error) {
	emails := make([]string, 0)
	if err := r.db.Model(&models.Admin{}).Order("id ASC").Pluck("email", &emails).Error; err != nil {
		return nil, err
	}
	return emails, nil
}

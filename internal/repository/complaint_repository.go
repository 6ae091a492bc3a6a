package repository

import (
	"errors"
	"strings"

	"github.com/complaint-desk/internal/models"

	"gorm.io/gorm"
)

// q 仅按标题模糊匹配
var complaintSearchColumns = []string{"title"}

// ComplaintRepository 投诉数据访问接口
type ComplaintRepository interface {
	Create(complaint *models.Complaint) error
	GetByID(id uint) (*models.Complaint, error)
	List(filter ComplaintListFilter) ([]models.ComplaintSummary, int64, error)
	UpdateStatus(id uint, status models.ComplaintStatus) (bool, error)
}

// GormComplaintRepository GORM 实现
type GormComplaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository 创建投诉仓库
func NewComplaintRepository(db *gorm.DB) *GormComplaintRepository {
	return &GormComplaintRepository{db: db}
}

// Create 创建投诉
func (r *GormComplaintRepository) Create(complaint *models.Complaint) error {
	return r.db.Create(complaint).Error
}

// GetByID 根据 ID 获取投诉，不存在时返回 nil
func (r *GormComplaintRepository) GetByID(id uint) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := r.db.First(&complaint, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &complaint, nil
}

// List 分页查询投诉摘要（按提交时间倒序）
func (r *GormComplaintRepository) List(filter ComplaintListFilter) ([]models.ComplaintSummary, int64, error) {
	query := r.db.Model(&models.Complaint{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildLikeCondition(dbDialectName(r.db), complaintSearchColumns)
		query = query.Where(condition, repeatLikeArgs(containsPattern(search), argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]models.ComplaintSummary, 0)
	err := applyPagination(query, filter).
		Select("id", "title", "category", "priority", "status", "created_at").
		Order("created_at DESC").
		Order("id DESC").
		Scan(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UpdateStatus 覆盖投诉状态，返回记录是否存在
func (r *GormComplaintRepository) UpdateStatus(id uint, status models.ComplaintStatus) (bool, error) {
	result := r.db.Model(&models.Complaint{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}
	// 状态未变化时部分驱动返回 0 行，需再确认记录是否存在
	var count int64
	if err := r.db.Model(&models.Complaint{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

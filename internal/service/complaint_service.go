package service

import (
	"strings"
	"time"

	"github.com/complaint-desk/internal/logger"
	"github.com/complaint-desk/internal/models"
	"github.com/complaint-desk/internal/repository"
)

// 分页默认值
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// CreateComplaintInput 提交投诉参数
type CreateComplaintInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
}

// ListComplaintsInput 投诉列表查询参数
type ListComplaintsInput struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

// ComplaintService 投诉服务
type ComplaintService struct {
	complaintRepo repository.ComplaintRepository
	notifier      Notifier
	now           func() time.Time
}

// NewComplaintService 创建投诉服务
func NewComplaintService(complaintRepo repository.ComplaintRepository, notifier Notifier) *ComplaintService {
	return &ComplaintService{
		complaintRepo: complaintRepo,
		notifier:      notifier,
		now:           time.Now,
	}
}

// Create 提交投诉，状态强制为 Pending
func (s *ComplaintService) Create(input CreateComplaintInput) (*models.Complaint, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	rawCategory := strings.TrimSpace(input.Category)
	rawPriority := strings.TrimSpace(input.Priority)
	if title == "" || description == "" || rawCategory == "" || rawPriority == "" {
		return nil, ErrComplaintFieldRequired
	}
	category, ok := models.ParseComplaintCategory(rawCategory)
	if !ok {
		return nil, ErrComplaintCategoryInvalid
	}
	priority, ok := models.ParseComplaintPriority(rawPriority)
	if !ok {
		return nil, ErrComplaintPriorityInvalid
	}

	complaint := &models.Complaint{
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
		Status:      models.ComplaintStatusPending,
		CreatedAt:   s.now(),
	}
	if err := s.complaintRepo.Create(complaint); err != nil {
		return nil, wrapDependency("create complaint", err)
	}
	logger.Infow("complaint_created",
		"complaint_id", complaint.ID,
		"category", complaint.Category,
		"priority", complaint.Priority,
	)

	s.notify(func(n Notifier) error {
		return n.ComplaintCreated(complaint)
	}, complaint.ID)
	return complaint, nil
}

// Get 获取投诉详情
func (s *ComplaintService) Get(id uint) (*models.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(id)
	if err != nil {
		return nil, wrapDependency("load complaint", err)
	}
	if complaint == nil {
		return nil, ErrComplaintNotFound
	}
	return complaint, nil
}

// List 分页获取投诉摘要
func (s *ComplaintService) List(input ListComplaintsInput) ([]models.ComplaintSummary, int64, error) {
	filter := repository.ComplaintListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Search:   strings.TrimSpace(input.Search),
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = DefaultPageSize
	}
	if filter.PageSize > MaxPageSize {
		filter.PageSize = MaxPageSize
	}
	if raw := strings.TrimSpace(input.Status); raw != "" {
		status, ok := models.ParseComplaintStatus(raw)
		if !ok {
			return nil, 0, ErrComplaintStatusInvalid
		}
		filter.Status = status
	}

	items, total, err := s.complaintRepo.List(filter)
	if err != nil {
		return nil, 0, wrapDependency("list complaints", err)
	}
	return items, total, nil
}

// notify 尽力通知，失败仅记录日志
func (s *ComplaintService) notify(send func(Notifier) error, complaintID uint) {
	if s.notifier == nil {
		return
	}
	if err := send(s.notifier); err != nil {
		logger.Warnw("complaint_notify_failed", "complaint_id", complaintID, "error", err)
	}
}

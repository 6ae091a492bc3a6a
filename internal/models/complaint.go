package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/complaint-desk/internal/constants"
)

// ErrInvalidEnumValue 枚举值非法
var ErrInvalidEnumValue = errors.New("invalid enum value")

// ComplaintStatus 投诉状态
type ComplaintStatus string

// 投诉状态取值
const (
	ComplaintStatusPending    ComplaintStatus = constants.ComplaintStatusPending
	ComplaintStatusInProgress ComplaintStatus = constants.ComplaintStatusInProgress
	ComplaintStatusResolved   ComplaintStatus = constants.ComplaintStatusResolved
)

// ComplaintStatuses 全部合法状态
var ComplaintStatuses = []ComplaintStatus{
	ComplaintStatusPending,
	ComplaintStatusInProgress,
	ComplaintStatusResolved,
}

// ParseComplaintStatus 严格解析状态字面量（区分大小写）
func ParseComplaintStatus(raw string) (ComplaintStatus, bool) {
	status := ComplaintStatus(raw)
	return status, status.Valid()
}

// Valid 是否为合法状态
func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusInProgress, ComplaintStatusResolved:
		return true
	}
	return false
}

// Value 写库前校验
func (s ComplaintStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidEnumValue, string(s))
	}
	return string(s), nil
}

// Scan 读库时校验
func (s *ComplaintStatus) Scan(src interface{}) error {
	raw, err := scanEnumString(src)
	if err != nil {
		return err
	}
	parsed, ok := ParseComplaintStatus(raw)
	if !ok {
		return fmt.Errorf("%w: status %q", ErrInvalidEnumValue, raw)
	}
	*s = parsed
	return nil
}

// GormDataType 列类型
func (ComplaintStatus) GormDataType() string {
	return "string"
}

// ComplaintCategory 投诉分类
type ComplaintCategory string

// 投诉分类取值
const (
	ComplaintCategoryProduct ComplaintCategory = constants.ComplaintCategoryProduct
	ComplaintCategoryService ComplaintCategory = constants.ComplaintCategoryService
	ComplaintCategorySupport ComplaintCategory = constants.ComplaintCategorySupport
)

// ParseComplaintCategory 严格解析分类字面量
func ParseComplaintCategory(raw string) (ComplaintCategory, bool) {
	category := ComplaintCategory(raw)
	return category, category.Valid()
}

// Valid 是否为合法分类
func (c ComplaintCategory) Valid() bool {
	switch c {
	case ComplaintCategoryProduct, ComplaintCategoryService, ComplaintCategorySupport:
		return true
	}
	return false
}

// Value 写库前校验
func (c ComplaintCategory) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: category %q", ErrInvalidEnumValue, string(c))
	}
	return string(c), nil
}

// Scan 读库时校验
func (c *ComplaintCategory) Scan(src interface{}) error {
	raw, err := scanEnumString(src)
	if err != nil {
		return err
	}
	parsed, ok := ParseComplaintCategory(raw)
	if !ok {
		return fmt.Errorf("%w: category %q", ErrInvalidEnumValue, raw)
	}
	*c = parsed
	return nil
}

// GormDataType 列类型
func (ComplaintCategory) GormDataType() string {
	return "string"
}

// ComplaintPriority 投诉优先级
type ComplaintPriority string

// 投诉优先级取值
const (
	ComplaintPriorityLow    ComplaintPriority = constants.ComplaintPriorityLow
	ComplaintPriorityMedium ComplaintPriority = constants.ComplaintPriorityMedium
	ComplaintPriorityHigh   ComplaintPriority = constants.ComplaintPriorityHigh
)

// ParseComplaintPriority 严格解析优先级字面量
func ParseComplaintPriority(raw string) (ComplaintPriority, bool) {
	priority := ComplaintPriority(raw)
	return priority, priority.Valid()
}

// Valid 是否为合法优先级
func (p ComplaintPriority) Valid() bool {
	switch p {
	case ComplaintPriorityLow, ComplaintPriorityMedium, ComplaintPriorityHigh:
		return true
	}
	return false
}

// Value 写库前校验
func (p ComplaintPriority) Value() (driver.Value, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: priority %q", ErrInvalidEnumValue, string(p))
	}
	return string(p), nil
}

// Scan 读库时校验
func (p *ComplaintPriority) Scan(src interface{}) error {
	raw, err := scanEnumString(src)
	if err != nil {
		return err
	}
	parsed, ok := ParseComplaintPriority(raw)
	if !ok {
		return fmt.Errorf("%w: priority %q", ErrInvalidEnumValue, raw)
	}
	*p = parsed
	return nil
}

// GormDataType 列类型
func (ComplaintPriority) GormDataType() string {
	return "string"
}

func scanEnumString(src interface{}) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", fmt.Errorf("%w: null", ErrInvalidEnumValue)
	default:
		return "", fmt.Errorf("%w: unsupported type %T", ErrInvalidEnumValue, src)
	}
}

// Complaint 投诉表
type Complaint struct {
	ID          uint              `gorm:"primarykey" json:"id"`                  // 主键
	Title       string            `gorm:"not null" json:"title"`                 // 标题
	Description string            `gorm:"type:text;not null" json:"description"` // 详细描述
	Category    ComplaintCategory `gorm:"size:32;not null" json:"category"`      // 分类
	Priority    ComplaintPriority `gorm:"size:32;not null" json:"priority"`      // 优先级
	Status      ComplaintStatus   `gorm:"size:32;not null;index" json:"status"`  // 处理状态
	CreatedAt   time.Time         `gorm:"index" json:"created_at"`               // 提交时间
}

// TableName 指定表名
func (Complaint) TableName() string {
	return "complaints"
}

// ComplaintSummary 投诉列表摘要（不含描述）
type ComplaintSummary struct {
	ID        uint              `json:"id"`
	Title     string            `json:"title"`
	Category  ComplaintCategory `json:"category"`
	Priority  ComplaintPriority `json:"priority"`
	Status    ComplaintStatus   `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

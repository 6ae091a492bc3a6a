package repository

import (
	"errors"

	"github.com/complaint-desk/internal/models"
)

// ErrDuplicate 唯一键冲突
var ErrDuplicate = errors.New("duplicate record")

// ComplaintListFilter 查询投诉列表的过滤条件
type ComplaintListFilter struct {
	Page     int
	PageSize int
	Status   models.ComplaintStatus
	Search   string
}

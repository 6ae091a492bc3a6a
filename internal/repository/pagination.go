package repository

import "gorm.io/gorm"

// Offset 计算分页偏移量，页码小于 1 视为第一页
func (f ComplaintListFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.PageSize
}

// applyPagination 应用分页参数，页大小非法时不分页。
func applyPagination(query *gorm.DB, filter ComplaintListFilter) *gorm.DB {
	if query == nil || filter.PageSize <= 0 {
		return query
	}
	return query.Limit(filter.PageSize).Offset(filter.Offset())
}

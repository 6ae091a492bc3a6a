package models

import (
	"strings"
	"time"
)

// Admin 管理员表
type Admin struct {
	ID           uint      `gorm:"primarykey" json:"id"`              // 主键
	Email        string    `gorm:"uniqueIndex;not null" json:"email"` // 登录邮箱（小写）
	PasswordHash string    `gorm:"not null" json:"-"`                 // 密码哈希（不返回给前端）
	CreatedAt    time.Time `gorm:"index" json:"created_at"`           // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                        // 更新时间
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}

// NormalizeEmail 统一邮箱格式（去空白并转小写）
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package models

import (
	"errors"
	"time"

	"github.com/complaint-desk/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureSeedAdmin 确保种子管理员存在，已存在时不修改
func EnsureSeedAdmin(db *gorm.DB, email, password string) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return false, errors.New("seed admin email and password are required")
	}

	var count int64
	if err := db.Model(&Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		logger.Infow("seed_admin_exists", "email", email)
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	admin := Admin{Email: email, PasswordHash: string(hash)}
	if err := db.Create(&admin).Error; err != nil {
		return false, err
	}
	logger.Warnw("seed_admin_created", "email", email, "password_hidden", true)
	return true, nil
}

// DemoComplaints 演示投诉数据
func DemoComplaints(now time.Time) []Complaint {
	return []Complaint{
		{
			Title:       "Printer broken",
			Description: "The office printer jams on every page.",
			Category:    ComplaintCategoryProduct,
			Priority:    ComplaintPriorityHigh,
			Status:      ComplaintStatusPending,
			CreatedAt:   now.Add(-3 * time.Hour),
		},
		{
			Title:       "Slow support response",
			Description: "Waited two days for a reply to my ticket.",
			Category:    ComplaintCategorySupport,
			Priority:    ComplaintPriorityMedium,
			Status:      ComplaintStatusInProgress,
			CreatedAt:   now.Add(-2 * time.Hour),
		},
		{
			Title:       "Missed appointment",
			Description: "The technician did not show up at the scheduled time.",
			Category:    ComplaintCategoryService,
			Priority:    ComplaintPriorityLow,
			Status:      ComplaintStatusResolved,
			CreatedAt:   now.Add(-1 * time.Hour),
		},
	}
}

package main

import (
	"os"
	"strings"
	"time"

	"github.com/complaint-desk/internal/config"
	"github.com/complaint-desk/internal/logger"
	"github.com/complaint-desk/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	log := logger.S()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		log.Fatalw("seed_database_connect_failed", "error", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(nil); err != nil {
		log.Fatalw("seed_database_migrate_failed", "error", err)
	}

	// 初始管理员（可选）
	email := strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL"))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email != "" && password != "" {
		created, err := models.EnsureSeedAdmin(models.DB, email, password)
		if err != nil {
			log.Fatalw("seed_admin_failed", "email", email, "error", err)
		}
		log.Infow("seed_admin_done", "email", models.NormalizeEmail(email), "created", created)
	} else {
		log.Infow("seed_admin_skipped", "reason", "SEED_ADMIN_EMAIL or SEED_ADMIN_PASSWORD not set")
	}

	// 示例投诉（表为空时写入）
	var count int64
	if err := models.DB.Model(&models.Complaint{}).Count(&count).Error; err != nil {
		log.Fatalw("seed_complaint_count_failed", "error", err)
	}
	if count > 0 {
		log.Infow("seed_complaints_skipped", "existing", count)
		return
	}
	demo := models.DemoComplaints(time.Now().UTC())
	if err := models.DB.Create(&demo).Error; err != nil {
		log.Fatalw("seed_complaints_failed", "error", err)
	}
	log.Infow("seed_complaints_done", "created", len(demo))
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/complaint-desk/internal/app"
	"github.com/complaint-desk/internal/config"
	"github.com/complaint-desk/internal/logger"
	"github.com/complaint-desk/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"
)

var errSecretMissing = errors.New("jwt.secret (JWT_SECRET) is not configured")

func main() {
	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	log := logger.S()
	defer func() { _ = logger.Z().Sync() }()

	weak, err := checkSessionSecret(cfg.JWT.SecretKey)
	if err != nil {
		log.Fatalw("config_session_secret_missing", "error", err)
	}
	if weak {
		if cfg.Server.IsRelease() {
			log.Fatalw("config_session_secret_weak", "hint", "use a random secret of at least 32 characters in release mode")
		}
		log.Warnw("config_session_secret_weak", "hint", "replace the session secret before going to production")
	}
	if strings.TrimSpace(cfg.Admin.RegisterSecret) == "" {
		log.Warnw("config_register_secret_missing", "hint", "admin registration is disabled until admin.register_secret is set")
	}

	mode = app.NormalizeMode(mode)
	if err := app.ValidateMode(mode); err != nil {
		log.Fatalw("app_mode_invalid", "error", err)
	}

	// 初始化数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, !cfg.Server.IsRelease()); err != nil {
		log.Fatalw("database_init_failed", "driver", cfg.Database.Driver, "error", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(nil); err != nil {
		log.Fatalw("database_migrate_failed", "error", err)
	}

	// 设置 Gin 模式
	if cfg.Server.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config: cfg,
		Logger: log,
		Mode:   mode,
	}); err != nil {
		log.Fatalw("app_run_failed", "mode", mode, "error", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiCyan + ansiBold + "Complaint Desk API" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

// checkSessionSecret 缺失返回错误，过弱返回 true
func checkSessionSecret(secret string) (bool, error) {
	if strings.TrimSpace(secret) == "" {
		return false, errSecretMissing
	}
	return isWeakSecret(secret), nil
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}

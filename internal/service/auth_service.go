package service

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/complaint-desk/internal/constants"
	"github.com/complaint-desk/internal/logger"
	"github.com/complaint-desk/internal/models"
	"github.com/complaint-desk/internal/repository"
)

// AuthService 管理员认证服务
type AuthService struct {
	adminRepo      repository.AdminRepository
	sessions       *SessionService
	registerSecret string
}

// NewAuthService 创建认证服务实例
func NewAuthService(adminRepo repository.AdminRepository, sessions *SessionService, registerSecret string) *AuthService {
	return &AuthService{
		adminRepo:      adminRepo,
		sessions:       sessions,
		registerSecret: registerSecret,
	}
}

// RegisterInput 管理员注册参数
type RegisterInput struct {
	Email     string
	Password  string
	SecretKey string
}

// LoginResult 登录结果
type LoginResult struct {
	Admin     *models.Admin
	Token     string
	ExpiresAt time.Time
}

// Register 凭注册口令创建管理员
func (s *AuthService) Register(input RegisterInput) (*models.Admin, error) {
	email := models.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrAdminFieldRequired
	}
	if !s.secretMatches(input.SecretKey) {
		logger.Warnw("admin_register_secret_rejected", "email", email)
		return nil, ErrRegisterSecretInvalid
	}

	existing, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		return nil, wrapDependency("lookup admin", err)
	}
	if existing != nil {
		return nil, ErrAdminExists
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, wrapDependency("hash password", err)
	}
	admin := &models.Admin{Email: email, PasswordHash: hash}
	if err := s.adminRepo.Create(admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAdminExists
		}
		return nil, wrapDependency("create admin", err)
	}
	InvalidateAdminEmails()
	logger.Infow("admin_registered", "admin_id", admin.ID, "email", admin.Email)
	return admin, nil
}

// Login 校验凭据并签发会话，不区分邮箱不存在与密码错误
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrAdminFieldRequired
	}

	admin, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		return nil, wrapDependency("lookup admin", err)
	}
	if admin == nil || !VerifyPassword(admin.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.sessions.Issue(admin.ID, constants.RoleAdmin)
	if err != nil {
		return nil, wrapDependency("issue session", err)
	}
	return &LoginResult{Admin: admin, Token: token, ExpiresAt: expiresAt}, nil
}

// Authorize 校验会话令牌
func (s *AuthService) Authorize(token string) Authorization {
	return s.sessions.Authorize(token)
}

func (s *AuthService) secretMatches(candidate string) bool {
	if s.registerSecret == "" || strings.TrimSpace(candidate) == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(s.registerSecret)) == 1
}

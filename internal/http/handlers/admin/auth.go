package admin

import (
	"errors"
	"net/http"
	"time"

	"github.com/complaint-desk/internal/constants"
	"github.com/complaint-desk/internal/http/response"
	"github.com/complaint-desk/internal/models"
	"github.com/complaint-desk/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 管理员注册请求
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	SecretKey string `json:"secret_key"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminView 管理员对外信息
type AdminView struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string    `json:"token"`
	Admin     AdminView `json:"admin"`
	ExpiresAt string    `json:"expires_at"`
}

func toAdminView(admin *models.Admin) AdminView {
	if admin == nil {
		return AdminView{}
	}
	return AdminView{ID: admin.ID, Email: admin.Email}
}

// AdminRegister 凭注册口令创建管理员
func (h *Handler) AdminRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	admin, err := h.AuthService.Register(service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		SecretKey: req.SecretKey,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, toAdminView(admin))
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	result, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			requestLog(c).Infow("admin_login_failed", "email", models.NormalizeEmail(req.Email), "client_ip", c.ClientIP())
		}
		respondServiceError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token)
	requestLog(c).Infow("admin_login_succeeded", "admin_id", result.Admin.ID)
	response.Success(c, LoginResponse{
		Token:     result.Token,
		Admin:     toAdminView(result.Admin),
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
	})
}

// AdminLogout 清除会话 Cookie，已签发令牌在到期前仍然有效
func (h *Handler) AdminLogout(c *gin.Context) {
	h.clearSessionCookie(c)
	response.SuccessWithMsg(c, "logged out", nil)
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.AdminSessionCookie, token, constants.AdminSessionTTLSecs, "/", "", h.secureCookie(), true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.AdminSessionCookie, "", -1, "/", "", h.secureCookie(), true)
}

func (h *Handler) secureCookie() bool {
	return h.Config != nil && h.Config.Server.IsRelease()
}

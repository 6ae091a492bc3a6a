package public

import (
	"github.com/complaint-desk/internal/constants"
	"github.com/complaint-desk/internal/http/response"
	"github.com/complaint-desk/internal/models"

	"github.com/gin-gonic/gin"
)

// PageDescriptor 页面入口描述，页面渲染由前端负责
type PageDescriptor struct {
	Page string `json:"page"`
	Path string `json:"path"`
	API  string `json:"api,omitempty"`
}

// ComplaintFormOptions 投诉表单可选值
type ComplaintFormOptions struct {
	Categories []models.ComplaintCategory `json:"categories"`
	Priorities []models.ComplaintPriority `json:"priorities"`
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

// HomePage 首页
func (h *Handler) HomePage(c *gin.Context) {
	response.Success(c, PageDescriptor{Page: "home", Path: constants.PageHome})
}

// ComplaintFormPage 投诉提交页
func (h *Handler) ComplaintFormPage(c *gin.Context) {
	response.Success(c, gin.H{
		"page":    PageDescriptor{Page: "complaint_register", Path: constants.PageComplaintNew, API: "/api/complaints"},
		"options": complaintFormOptions(),
	})
}

// AdminLoginPage 管理员登录页
func (h *Handler) AdminLoginPage(c *gin.Context) {
	response.Success(c, PageDescriptor{Page: "admin_login", Path: constants.PageAdminLogin, API: "/api/admin/login"})
}

// AdminRegisterPage 管理员注册页
func (h *Handler) AdminRegisterPage(c *gin.Context) {
	response.Success(c, PageDescriptor{Page: "admin_register", Path: constants.PageAdminRegister, API: "/api/admin/register"})
}

// AdminMainPage 后台页面
func (h *Handler) AdminMainPage(c *gin.Context) {
	response.Success(c, PageDescriptor{Page: "admin_main", Path: c.Request.URL.Path, API: "/api/admin/complaints"})
}

func complaintFormOptions() ComplaintFormOptions {
	return ComplaintFormOptions{
		Categories: []models.ComplaintCategory{
			models.ComplaintCategoryProduct,
			models.ComplaintCategoryService,
			models.ComplaintCategorySupport,
		},
		Priorities: []models.ComplaintPriority{
			models.ComplaintPriorityLow,
			models.ComplaintPriorityMedium,
			models.ComplaintPriorityHigh,
		},
	}
}

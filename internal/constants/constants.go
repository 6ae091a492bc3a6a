package constants

// 投诉状态常量
const (
	ComplaintStatusPending    = "Pending"
	ComplaintStatusInProgress = "InProgress"
	ComplaintStatusResolved   = "Resolved"
)

// 投诉分类常量
const (
	ComplaintCategoryProduct = "Product"
	ComplaintCategoryService = "Service"
	ComplaintCategorySupport = "Support"
)

// 投诉优先级常量
const (
	ComplaintPriorityLow    = "Low"
	ComplaintPriorityMedium = "Medium"
	ComplaintPriorityHigh   = "High"
)

// 管理员会话常量
const (
	RoleAdmin           = "admin"
	AdminSessionCookie  = "admin_token"
	AdminSessionTTLSecs = 3600
)

// 页面路径常量
const (
	PageHome           = "/"
	PageComplaintNew   = "/complaint/register"
	PageAdminLogin     = "/admin/login"
	PageAdminRegister  = "/admin/register"
	PageAdminMainRoot  = "/admin/main"
	PageAdminDashboard = "/admin/main/dashboard"
)

// 队列相关常量
const (
	QueueDefault = "default"

	TaskComplaintCreatedEmail = "complaint:created_email"
	TaskComplaintStatusEmail  = "complaint:status_email"
)

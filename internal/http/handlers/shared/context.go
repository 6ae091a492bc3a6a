package shared

import (
	"github.com/complaint-desk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 会话中间件写入的上下文键
const (
	ContextAdminID = "admin_id"
	ContextRole    = "admin_role"
)

// GetContextUint 从上下文读取 uint 值并统一处理错误响应。
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondErrorWithMsg(c, response.CodeUnauthorized, "unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondErrorWithMsg(c, response.CodeBadRequest, "invalid "+key, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondErrorWithMsg(c, response.CodeBadRequest, "invalid "+key, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondErrorWithMsg(c, response.CodeInternal, "invalid "+key+" type", nil)
		return 0, false
	}
}

// GetAdminID 读取当前管理员 ID
func GetAdminID(c *gin.Context) (uint, bool) {
	return GetContextUint(c, ContextAdminID)
}

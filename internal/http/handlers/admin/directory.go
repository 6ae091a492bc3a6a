package admin

import (
	"github.com/complaint-desk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetAdminEmails 管理员邮箱列表
func (h *Handler) GetAdminEmails(c *gin.Context) {
	emails, err := h.AdminDirectoryService.ListAdminEmails()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"emails": emails,
		"total":  len(emails),
	})
}

package public

import (
	handlershared "github.com/complaint-desk/internal/http/handlers/shared"
	"github.com/complaint-desk/internal/http/response"
	"github.com/complaint-desk/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateComplaintRequest 投诉提交请求
type CreateComplaintRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

// CreateComplaint 提交投诉，初始状态固定为 Pending
func (h *Handler) CreateComplaint(c *gin.Context) {
	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondErrorWithMsg(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	complaint, err := h.ComplaintService.Create(service.CreateComplaintInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if err != nil {
		handlershared.RespondServiceError(c, err)
		return
	}
	response.Created(c, complaint)
}

package admin

import (
	"strings"

	handlershared "github.com/complaint-desk/internal/http/handlers/shared"
	"github.com/complaint-desk/internal/http/response"
	"github.com/complaint-desk/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateComplaintStatusRequest 状态更新请求
type UpdateComplaintStatusRequest struct {
	Status string `json:"status"`
}

// GetAdminComplaints 投诉列表（按提交时间倒序）
func (h *Handler) GetAdminComplaints(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	summaries, total, err := h.ComplaintService.List(service.ListComplaintsInput{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("q")),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, summaries, response.NewPagination(page, pageSize, total))
}

// GetAdminComplaint 投诉详情
func (h *Handler) GetAdminComplaint(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondErrorWithMsg(c, response.CodeBadRequest, "invalid complaint id", nil)
		return
	}
	complaint, err := h.ComplaintService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, complaint)
}

// UpdateAdminComplaintStatus 变更投诉状态
func (h *Handler) UpdateAdminComplaintStatus(c *gin.Context) {
	adminID, ok := handlershared.GetAdminID(c)
	if !ok {
		return
	}
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondErrorWithMsg(c, response.CodeBadRequest, "invalid complaint id", nil)
		return
	}
	var req UpdateComplaintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithMsg(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	complaint, err := h.ComplaintService.Transition(id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_complaint_status_changed", "admin_id", adminID, "complaint_id", complaint.ID, "status", complaint.Status)
	response.Success(c, complaint)
}

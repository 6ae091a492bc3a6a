package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/complaint-desk/internal/logger"
	"github.com/complaint-desk/internal/models"
	"github.com/complaint-desk/internal/provider"
	"github.com/complaint-desk/internal/queue"
	"github.com/complaint-desk/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskComplaintCreatedEmail, c.handleComplaintCreatedEmail)
	mux.HandleFunc(queue.TaskComplaintStatusEmail, c.handleComplaintStatusEmail)
}

func (c *Consumer) handleComplaintCreatedEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_complaint_created_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ComplaintCreatedEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_complaint_created_email_unmarshal_failed", "error", err)
		return err
	}
	complaint, err := c.loadComplaint(payload.ComplaintID, "worker_complaint_created_email")
	if err != nil || complaint == nil {
		return err
	}
	if c.EmailNotifier == nil {
		logger.Warnw("worker_complaint_created_email_skip_notifier_nil", "complaint_id", complaint.ID)
		return nil
	}
	if err := c.EmailNotifier.ComplaintCreated(complaint); err != nil {
		logger.Warnw("worker_complaint_created_email_send_failed", "complaint_id", complaint.ID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleComplaintStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_complaint_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ComplaintStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_complaint_status_email_unmarshal_failed", "error", err)
		return err
	}
	complaint, err := c.loadComplaint(payload.ComplaintID, "worker_complaint_status_email")
	if err != nil || complaint == nil {
		return err
	}
	// 邮件按入队时的目标状态发送
	if status, ok := models.ParseComplaintStatus(strings.TrimSpace(payload.Status)); ok {
		complaint.Status = status
	}
	if c.EmailNotifier == nil {
		logger.Warnw("worker_complaint_status_email_skip_notifier_nil", "complaint_id", complaint.ID)
		return nil
	}
	if err := c.EmailNotifier.ComplaintStatusChanged(complaint); err != nil {
		logger.Warnw("worker_complaint_status_email_send_failed",
			"complaint_id", complaint.ID,
			"status", complaint.Status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) loadComplaint(id uint, event string) (*models.Complaint, error) {
	if id == 0 {
		logger.Debugw(event+"_skip_invalid_payload", "complaint_id", id)
		return nil, nil
	}
	if c.ComplaintService == nil {
		logger.Warnw(event+"_skip_complaint_service_nil", "complaint_id", id)
		return nil, nil
	}
	complaint, err := c.ComplaintService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			logger.Debugw(event+"_skip_complaint_not_found", "complaint_id", id)
			return nil, nil
		}
		logger.Warnw(event+"_fetch_complaint_failed", "complaint_id", id, "error", err)
		return nil, err
	}
	return complaint, nil
}

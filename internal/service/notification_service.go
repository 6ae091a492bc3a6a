package service

import (
	"github.com/complaint-desk/internal/logger"
	"github.com/complaint-desk/internal/models"
	"github.com/complaint-desk/internal/queue"

	"github.com/hibiken/asynq"
)

// Notifier 投诉事件通知
type Notifier interface {
	ComplaintCreated(complaint *models.Complaint) error
	ComplaintStatusChanged(complaint *models.Complaint) error
}

// ComplaintTaskEnqueuer 通知任务入队接口
type ComplaintTaskEnqueuer interface {
	Enabled() bool
	EnqueueComplaintCreatedEmail(payload queue.ComplaintCreatedEmailPayload, opts ...asynq.Option) error
	EnqueueComplaintStatusEmail(payload queue.ComplaintStatusEmailPayload, opts ...asynq.Option) error
}

// ComplaintMailer 投诉邮件发送接口
type ComplaintMailer interface {
	Enabled() bool
	SendComplaintCreatedEmail(to []string, complaint *models.Complaint) error
	SendComplaintStatusEmail(to []string, complaint *models.Complaint) error
}

// EmailNotifier 直接查询通讯录并发送邮件
type EmailNotifier struct {
	directory *AdminDirectoryService
	mailer    ComplaintMailer
}

// NewEmailNotifier 创建邮件通知器
func NewEmailNotifier(directory *AdminDirectoryService, mailer ComplaintMailer) *EmailNotifier {
	return &EmailNotifier{directory: directory, mailer: mailer}
}

// ComplaintCreated 向全部管理员发送新投诉邮件
func (n *EmailNotifier) ComplaintCreated(complaint *models.Complaint) error {
	return n.fanOut("created", complaint, n.mailer.SendComplaintCreatedEmail)
}

// ComplaintStatusChanged 向全部管理员发送状态变更邮件
func (n *EmailNotifier) ComplaintStatusChanged(complaint *models.Complaint) error {
	return n.fanOut("status", complaint, n.mailer.SendComplaintStatusEmail)
}

func (n *EmailNotifier) fanOut(kind string, complaint *models.Complaint, send func([]string, *models.Complaint) error) error {
	if n.mailer == nil || !n.mailer.Enabled() {
		logger.Debugw("complaint_email_skip_disabled", "kind", kind, "complaint_id", complaint.ID)
		return nil
	}
	recipients, err := n.directory.ListAdminEmails()
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		logger.Debugw("complaint_email_skip_no_admins", "kind", kind, "complaint_id", complaint.ID)
		return nil
	}
	if err := send(recipients, complaint); err != nil {
		return wrapDependency("send complaint email", err)
	}
	logger.Infow("complaint_email_sent", "kind", kind, "complaint_id", complaint.ID, "recipients", len(recipients))
	return nil
}

// QueueNotifier 将通知投递到异步队列，不重试
type QueueNotifier struct {
	queue ComplaintTaskEnqueuer
}

// NewQueueNotifier 创建队列通知器
func NewQueueNotifier(enqueuer ComplaintTaskEnqueuer) *QueueNotifier {
	return &QueueNotifier{queue: enqueuer}
}

// ComplaintCreated 入队新投诉邮件任务
func (n *QueueNotifier) ComplaintCreated(complaint *models.Complaint) error {
	payload := queue.ComplaintCreatedEmailPayload{ComplaintID: complaint.ID}
	if err := n.queue.EnqueueComplaintCreatedEmail(payload, asynq.MaxRetry(0)); err != nil {
		return wrapDependency("enqueue complaint created email", err)
	}
	return nil
}

// ComplaintStatusChanged 入队状态变更邮件任务
func (n *QueueNotifier) ComplaintStatusChanged(complaint *models.Complaint) error {
	payload := queue.ComplaintStatusEmailPayload{ComplaintID: complaint.ID, Status: string(complaint.Status)}
	if err := n.queue.EnqueueComplaintStatusEmail(payload, asynq.MaxRetry(0)); err != nil {
		return wrapDependency("enqueue complaint status email", err)
	}
	return nil
}

// NewNotifier 队列启用时走队列，否则直接发送邮件
func NewNotifier(enqueuer ComplaintTaskEnqueuer, directory *AdminDirectoryService, mailer ComplaintMailer) Notifier {
	if enqueuer != nil && enqueuer.Enabled() {
		return NewQueueNotifier(enqueuer)
	}
	return NewEmailNotifier(directory, mailer)
}

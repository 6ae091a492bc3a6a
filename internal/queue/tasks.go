package queue

import (
	"encoding/json"

	"github.com/complaint-desk/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskComplaintCreatedEmail 新投诉邮件通知任务
	TaskComplaintCreatedEmail = constants.TaskComplaintCreatedEmail
	// TaskComplaintStatusEmail 投诉状态邮件通知任务
	TaskComplaintStatusEmail = constants.TaskComplaintStatusEmail
)

// ComplaintCreatedEmailPayload 新投诉邮件任务载荷
type ComplaintCreatedEmailPayload struct {
	ComplaintID uint `json:"complaint_id"`
}

// ComplaintStatusEmailPayload 状态邮件任务载荷
type ComplaintStatusEmailPayload struct {
	ComplaintID uint   `json:"complaint_id"`
	Status      string `json:"status"`
}

// NewComplaintCreatedEmailTask 创建新投诉邮件任务
func NewComplaintCreatedEmailTask(payload ComplaintCreatedEmailPayload) (*asynq.Task, error) {
	return newJSONTask(TaskComplaintCreatedEmail, payload)
}

// NewComplaintStatusEmailTask 创建状态邮件任务
func NewComplaintStatusEmailTask(payload ComplaintStatusEmailPayload) (*asynq.Task, error) {
	return newJSONTask(TaskComplaintStatusEmail, payload)
}

func newJSONTask(typename string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(typename, body), nil
}

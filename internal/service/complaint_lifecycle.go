package service

import (
	"github.com/complaint-desk/internal/logger"
	"github.com/complaint-desk/internal/models"
)

// complaintTransitions 允许的状态迁移表（当前为全连通）
var complaintTransitions = map[models.ComplaintStatus]map[models.ComplaintStatus]struct{}{
	models.ComplaintStatusPending: {
		models.ComplaintStatusPending:    {},
		models.ComplaintStatusInProgress: {},
		models.ComplaintStatusResolved:   {},
	},
	models.ComplaintStatusInProgress: {
		models.ComplaintStatusPending:    {},
		models.ComplaintStatusInProgress: {},
		models.ComplaintStatusResolved:   {},
	},
	models.ComplaintStatusResolved: {
		models.ComplaintStatusPending:    {},
		models.ComplaintStatusInProgress: {},
		models.ComplaintStatusResolved:   {},
	},
}

// CanTransition 判断状态迁移是否合法
func CanTransition(from, to models.ComplaintStatus) bool {
	targets, ok := complaintTransitions[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// Transition 校验并执行投诉状态迁移
func (s *ComplaintService) Transition(id uint, requested string) (*models.Complaint, error) {
	status, ok := models.ParseComplaintStatus(requested)
	if !ok {
		return nil, ErrComplaintStatusInvalid
	}

	complaint, err := s.complaintRepo.GetByID(id)
	if err != nil {
		return nil, wrapDependency("load complaint", err)
	}
	if complaint == nil {
		return nil, ErrComplaintNotFound
	}
	if !CanTransition(complaint.Status, status) {
		return nil, ErrComplaintStatusInvalid
	}

	found, err := s.complaintRepo.UpdateStatus(id, status)
	if err != nil {
		return nil, wrapDependency("update complaint status", err)
	}
	if !found {
		return nil, ErrComplaintNotFound
	}
	previous := complaint.Status
	complaint.Status = status
	logger.Infow("complaint_status_updated", "complaint_id", id, "from", previous, "to", status)

	s.notify(func(n Notifier) error {
		return n.ComplaintStatusChanged(complaint)
	}, id)
	return complaint, nil
}

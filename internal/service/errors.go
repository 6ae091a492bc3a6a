package service

import (
	"errors"
	"fmt"
)

// 错误类别，处理层据此映射 HTTP 状态
var (
	ErrValidation     = errors.New("validation error")
	ErrAuthentication = errors.New("authentication error")
	ErrAuthorization  = errors.New("authorization error")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrDependency     = errors.New("dependency error")
)

type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

func newKindError(kind error, msg string) error {
	return &kindError{msg: msg, kind: kind}
}

// 业务错误
var (
	ErrComplaintFieldRequired    = newKindError(ErrValidation, "title, description, category and priority are required")
	ErrComplaintCategoryInvalid  = newKindError(ErrValidation, "invalid category")
	ErrComplaintPriorityInvalid  = newKindError(ErrValidation, "invalid priority")
	ErrComplaintStatusInvalid    = newKindError(ErrValidation, "invalid status")
	ErrComplaintNotFound         = newKindError(ErrNotFound, "complaint not found")
	ErrAdminFieldRequired        = newKindError(ErrValidation, "email and password are required")
	ErrInvalidCredentials        = newKindError(ErrAuthentication, "invalid credentials")
	ErrRegisterSecretInvalid     = newKindError(ErrAuthorization, "invalid secret key")
	ErrAdminExists               = newKindError(ErrConflict, "admin already exists")
	ErrSessionSecretMissing      = errors.New("session signing secret is not configured")
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientEmpty       = errors.New("email recipient is empty")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
	ErrInvalidEmail              = errors.New("invalid email address")
)

// dependencyError 包装存储等外部依赖错误
type dependencyError struct {
	op  string
	err error
}

func (e *dependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.op, e.err)
}

func (e *dependencyError) Unwrap() error {
	return e.err
}

func (e *dependencyError) Is(target error) bool {
	return target == ErrDependency
}

func wrapDependency(op string, err error) error {
	if err == nil {
		return nil
	}
	return &dependencyError{op: op, err: err}
}

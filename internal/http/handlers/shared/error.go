package shared

import (
	"errors"

	"github.com/complaint-desk/internal/http/response"
	"github.com/complaint-desk/internal/logger"
	"github.com/complaint-desk/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const internalErrorMessage = "internal server error"

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.With("request_id", id)
		}
	}
	return logger.S()
}

// RespondErrorWithMsg 返回错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		log := RequestLog(c)
		if appErr.Internal() {
			log.Errorw("handler_error", "code", appErr.Code, "message", appErr.Message, "error", err)
		} else {
			log.Debugw("handler_rejected", "code", appErr.Code, "message", appErr.Message, "error", err)
		}
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondServiceError 按错误类别映射响应码，依赖错误只返回通用提示。
func RespondServiceError(c *gin.Context, err error) {
	code := ServiceErrorCode(err)
	msg := internalErrorMessage
	if code != response.CodeInternal {
		msg = err.Error()
	}
	RespondErrorWithMsg(c, code, msg, err)
}

// ServiceErrorCode 错误类别对应的业务码
func ServiceErrorCode(err error) int {
	switch {
	case err == nil:
		return response.CodeOK
	case errors.Is(err, service.ErrDependency):
		return response.CodeInternal
	case errors.Is(err, service.ErrValidation):
		return response.CodeBadRequest
	case errors.Is(err, service.ErrAuthentication):
		return response.CodeUnauthorized
	case errors.Is(err, service.ErrAuthorization):
		return response.CodeForbidden
	case errors.Is(err, service.ErrNotFound):
		return response.CodeNotFound
	case errors.Is(err, service.ErrConflict):
		return response.CodeConflict
	default:
		return response.CodeInternal
	}
}

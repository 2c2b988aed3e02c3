package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-portal/internal/model"
	"campus-portal/internal/service"
	"campus-portal/internal/viewmodel"
	pkgerrors "campus-portal/pkg/errors"
	"campus-portal/pkg/response"
)

// handleError 将 Service 层错误映射为统一响应
// 错误同时挂到 c.Errors，由日志中间件输出
func handleError(c *gin.Context, err error) {
	_ = c.Error(err)

	if v, ok := pkgerrors.IsValidation(err); ok {
		status := v.Status
		if status < 400 || status > 499 {
			status = http.StatusBadRequest
		}
		response.Error(c, status, response.CodeUpstreamRejected, v.Detail)
		return
	}

	var (
		notFound  *pkgerrors.NotFoundError
		apiErr    *pkgerrors.APIError
		invariant *pkgerrors.InvariantViolation
	)
	switch {
	case errors.Is(err, pkgerrors.ErrSessionExpired):
		response.Unauthorized(c, response.CodeSessionExpired, "登录已过期，请重新登录")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, response.CodeBadCredentials, "邮箱或密码错误")
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrImportNoData),
		errors.Is(err, service.ErrImportBadHeader),
		errors.Is(err, service.ErrImportTooManyRows),
		errors.Is(err, service.ErrExportBadWeek):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "参数校验失败", err.Error())
	case errors.Is(err, service.ErrForbidden), errors.Is(err, viewmodel.ErrForbiddenView):
		response.Forbidden(c, response.CodeForbidden, "无权限访问")
	case errors.Is(err, service.ErrNoStudentProfile):
		response.Forbidden(c, response.CodeForbidden, "当前用户尚未建立学生档案")
	case errors.As(err, &notFound):
		response.NotFound(c, response.CodeNotFound, notFound.Detail)
	case pkgerrors.IsNetwork(err):
		response.BadGateway(c, response.CodeUpstreamDown, "教务服务暂不可用")
	case errors.As(err, &apiErr):
		response.BadGateway(c, response.CodeUpstreamError, apiErr.Detail)
	case errors.As(err, &invariant), errors.Is(err, model.ErrUnknownRole):
		response.ErrorWithDetails(c, http.StatusInternalServerError, response.CodeInvariant, "上游数据异常", err.Error())
	default:
		response.InternalError(c)
	}
}
